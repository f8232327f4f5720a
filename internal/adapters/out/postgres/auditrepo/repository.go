package auditrepo

import (
	"context"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAuditLogRepository implements AuditLogRepository using GORM.
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts the entry. Entries are never updated.
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if entry == nil {
		return errs.NewValueIsRequiredError("entry")
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
