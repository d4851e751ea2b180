package queries

import (
	"context"

	"refill/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllRidersQueryHandler reads the capacity ledger for operator dashboards.
type GetAllRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllRidersQueryHandler creates a handler for ledger listings.
func NewGetAllRidersQueryHandler(db *gorm.DB) GetAllRidersQueryHandler {
	return GetAllRidersQueryHandler{db: db}
}

// Handle executes the ledger listing, busiest riders first.
func (h GetAllRidersQueryHandler) Handle(ctx context.Context, query GetAllRidersQuery) ([]RiderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			is_available,
			max_capacity_gallons,
			current_load_gallons,
			active_orders_count
		FROM riders
		ORDER BY current_load_gallons DESC, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]RiderResponse, 0)
	for rows.Next() {
		var (
			resp RiderResponse
			id   uuid.UUID
		)

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Status,
			&resp.IsAvailable,
			&resp.MaxCapacityGallons,
			&resp.CurrentLoadGallons,
			&resp.ActiveOrdersCount,
		)
		if err != nil {
			return nil, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = riderID

		riders = append(riders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
