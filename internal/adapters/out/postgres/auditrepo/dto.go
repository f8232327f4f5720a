// Package auditrepo appends audit entries with GORM.
package auditrepo

import (
	"time"

	"steelorders/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// AuditLogDTO is the row of the audit_logs table. OrderID is kept after the
// order is deleted, so it carries no foreign key.
type AuditLogDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Action    string     `gorm:"type:varchar(50);not null;index"`
	Details   string     `gorm:"type:text;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"not null;index;autoCreateTime:false"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

func fromDomain(e *audit.Entry) AuditLogDTO {
	var orderID *uuid.UUID
	if id := e.RelatedOrderID(); id != nil {
		raw := id.Google()
		orderID = &raw
	}

	return AuditLogDTO{
		ID:        e.ID().Google(),
		Action:    e.Action().String(),
		Details:   e.Details(),
		UserID:    e.ActorID().Google(),
		OrderID:   orderID,
		CreatedAt: e.CreatedAt(),
	}
}
