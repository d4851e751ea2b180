package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists order projections scoped to the caller's role.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. The scope is applied in SQL, not after the
// read, so a large table never streams rows the caller cannot see.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
	`
	var (
		conditions []string
		args       []any
	)

	actor := query.Actor()
	switch {
	case actor.CanViewAllOrders():
		// no scope condition
	case actor.CanOperateDeliveries():
		conditions = append(conditions, "rider_id = ?")
		args = append(args, actor.ID().String())
	default:
		conditions = append(conditions, "customer_id = ?")
		args = append(args, actor.ID().String())
	}

	if query.Status() != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status().String())
	}

	for i, cond := range conditions {
		if i == 0 {
			sql += " WHERE " + cond
		} else {
			sql += " AND " + cond
		}
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderResponse(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
