// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const numberConstraint = "idx_orders_order_number"

// OrderDTO is the row of the orders table. Status is stored by name so the
// table stays readable from SQL.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber         string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_orders_order_number"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Destination         string    `gorm:"not null"`
	MaterialCode        string    `gorm:"not null"`
	Party               string    `gorm:"not null"`
	Mill                string    `gorm:"not null"`
	Priority            int       `gorm:"not null"`
	MaterialDescription string    `gorm:"type:text;not null"`
	OrderQuantity       int       `gorm:"not null"`
	ValidUntil          time.Time `gorm:"not null"`
	DispatchQuantity    *int
	CompletionNotes     *string   `gorm:"type:text"`
	Status              string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt           time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// NumberSequenceDTO holds the last order number sequence handed out per year.
type NumberSequenceDTO struct {
	Year  int   `gorm:"primaryKey;autoIncrement:false"`
	Value int64 `gorm:"not null"`
}

func (NumberSequenceDTO) TableName() string {
	return "order_number_sequences"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	return OrderDTO{
		ID:                  o.ID().Google(),
		OrderNumber:         o.Number().String(),
		UserID:              o.OwnerID().Google(),
		Destination:         d.Destination,
		MaterialCode:        d.MaterialCode,
		Party:               d.Party,
		Mill:                d.Mill,
		Priority:            d.Priority,
		MaterialDescription: d.MaterialDescription,
		OrderQuantity:       d.OrderQuantity,
		ValidUntil:          d.ValidUntil,
		DispatchQuantity:    o.DispatchQuantity(),
		CompletionNotes:     o.CompletionNotes(),
		Status:              o.Status().String(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

// ToDomain rebuilds the aggregate from a row. Query handlers use it to share
// the mapping.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		number,
		ownerID,
		order.Details{
			Destination:         dto.Destination,
			MaterialCode:        dto.MaterialCode,
			Party:               dto.Party,
			Mill:                dto.Mill,
			Priority:            dto.Priority,
			MaterialDescription: dto.MaterialDescription,
			OrderQuantity:       dto.OrderQuantity,
			ValidUntil:          dto.ValidUntil.UTC(),
		},
		status,
		dto.DispatchQuantity,
		dto.CompletionNotes,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
