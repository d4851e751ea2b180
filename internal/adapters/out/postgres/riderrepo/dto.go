// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence, including the conditional capacity ledger writes that
// arbitrate concurrent dispatch.
package riderrepo

import (
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
// The load and order-count columns form the capacity ledger updated by
// conditional writes, never by read-modify-write.
type RiderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(255)"`
	Status             string    `gorm:"type:varchar(16);index"`
	IsAvailable        bool
	MaxCapacityGallons int
	CurrentLoadGallons int
	ActiveOrdersCount  int
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:                 aggregate.ID().Bytes(),
		Name:               aggregate.Name(),
		Status:             aggregate.Status().String(),
		IsAvailable:        aggregate.IsAvailable(),
		MaxCapacityGallons: aggregate.MaxCapacityGallons(),
		CurrentLoadGallons: aggregate.CurrentLoadGallons(),
		ActiveOrdersCount:  aggregate.ActiveOrdersCount(),
	}
}

// toDomain converts a database DTO to a rider aggregate using RestoreRider.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, dto.Name, status, dto.IsAvailable,
		dto.MaxCapacityGallons, dto.CurrentLoadGallons, dto.ActiveOrdersCount)
}
