package queries

import (
	"context"
	"database/sql"
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order projection from the database and
// enforces the caller's visibility scope after the read.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Customers may only read their own orders and
// riders their own assignments; anything else is Forbidden. A missing order
// is NotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			rider_id,
			status,
			water_quantity,
			gallon_type,
			total_centavos,
			payment_method,
			payment_status,
			eta_text
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	resp, err := scanOrderResponse(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if !canSeeOrder(query.Actor(), resp) {
		return OrderResponse{}, errs.NewForbiddenError("get order",
			"order is not visible to the caller")
	}

	return resp, nil
}

// canSeeOrder applies the role scope to one projection row.
func canSeeOrder(actor kernel.Actor, resp OrderResponse) bool {
	if actor.CanViewAllOrders() {
		return true
	}
	if actor.Owns(resp.CustomerID) {
		return true
	}
	return resp.RiderID != nil && actor.Is(*resp.RiderID)
}

// scanOrderResponse maps one projection row onto OrderResponse, converting
// the nullable rider and ETA columns.
func scanOrderResponse(scan func(dest ...any) error) (OrderResponse, error) {
	var (
		resp    OrderResponse
		id      uuid.UUID
		custID  uuid.UUID
		riderID uuid.NullUUID
		etaText sql.NullString
	)

	err := scan(
		&id,
		&custID,
		&riderID,
		&resp.Status,
		&resp.WaterQuantity,
		&resp.GallonType,
		&resp.TotalCentavos,
		&resp.PaymentMethod,
		&resp.PaymentStatus,
		&etaText,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	customerID, err := kernel.UUIDFromBytes(custID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.CustomerID = customerID

	if riderID.Valid {
		rid, ridErr := kernel.UUIDFromBytes(riderID.UUID[:])
		if ridErr != nil {
			return OrderResponse{}, ridErr
		}
		resp.RiderID = &rid
	}

	if etaText.Valid {
		resp.EtaText = etaText.String
	}

	return resp, nil
}
