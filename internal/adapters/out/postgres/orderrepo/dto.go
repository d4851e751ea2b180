// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its append-only side tables: the status history and the
// assignment audit trail.
package orderrepo

import (
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and the payment columns are stored as their string representations so
// the rows stay readable from plain SQL.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	RiderID       *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(32);index"`
	WaterQuantity int
	GallonType    string `gorm:"type:varchar(16)"`
	TotalCentavos int64
	PaymentMethod string `gorm:"type:varchar(16)"`
	PaymentStatus string `gorm:"type:varchar(16)"`
	EtaMinutesMin *int
	EtaMinutesMax *int
	EtaText       *string
	EtaComputedAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO represents one append-only row of the order status history.
type StatusChangeDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"type:varchar(32)"`
	ChangedBy uuid.UUID `gorm:"type:uuid"`
	ChangedAt time.Time
}

// TableName specifies the database table name for status history entries.
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// AssignmentDTO represents one append-only row of the rider assignment audit
// trail.
type AssignmentDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	RiderID    uuid.UUID `gorm:"type:uuid;index"`
	AssignedBy uuid.UUID `gorm:"type:uuid"`
	AssignedAt time.Time
}

// TableName specifies the database table name for assignment entries.
func (AssignmentDTO) TableName() string {
	return "order_assignments"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.AssignedRider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		RiderID:       riderID,
		Status:        aggregate.Status().String(),
		WaterQuantity: aggregate.WaterQuantity(),
		GallonType:    aggregate.GallonType().String(),
		TotalCentavos: aggregate.TotalAmount().Centavos(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
	}

	if eta := aggregate.ETA(); eta != nil {
		minMinutes := eta.MinMinutes()
		maxMinutes := eta.MaxMinutes()
		text := eta.Text()
		computedAt := eta.ComputedAt()
		dto.EtaMinutesMin = &minMinutes
		dto.EtaMinutesMax = &maxMinutes
		dto.EtaText = &text
		dto.EtaComputedAt = &computedAt
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate.
// Reconstructs the complete aggregate including payment progress, rider
// assignment and the last computed ETA using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	gallonType, err := order.GallonTypeFromString(dto.GallonType)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	totalAmount, err := kernel.NewMoney(dto.TotalCentavos)
	if err != nil {
		return nil, err
	}

	var eta *order.ETA
	if dto.EtaMinutesMin != nil && dto.EtaMinutesMax != nil &&
		dto.EtaText != nil && dto.EtaComputedAt != nil {
		restored := order.RestoreETA(*dto.EtaMinutesMin, *dto.EtaMinutesMax,
			*dto.EtaText, *dto.EtaComputedAt)
		eta = &restored
	}

	return order.RestoreOrder(id, customerID, dto.WaterQuantity, gallonType,
		totalAmount, paymentMethod, paymentStatus, status, riderID, eta)
}

// statusChangeFromDomain converts a history value to its database row.
func statusChangeFromDomain(change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID:   change.OrderID().Bytes(),
		Status:    change.Status().String(),
		ChangedBy: change.ChangedBy().Bytes(),
		ChangedAt: change.ChangedAt(),
	}
}

// assignmentFromDomain converts an assignment value to its database row.
func assignmentFromDomain(assignment order.Assignment) AssignmentDTO {
	return AssignmentDTO{
		OrderID:    assignment.OrderID().Bytes(),
		RiderID:    assignment.RiderID().Bytes(),
		AssignedBy: assignment.AssignedBy().Bytes(),
		AssignedAt: assignment.AssignedAt(),
	}
}
