package postgres

import (
	"fmt"

	"steelorders/internal/adapters/out/postgres/auditrepo"
	"steelorders/internal/adapters/out/postgres/orderrepo"
	"steelorders/internal/adapters/out/postgres/outboxrepo"
	"steelorders/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.NumberSequenceDTO{},
		&auditrepo.AuditLogDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
