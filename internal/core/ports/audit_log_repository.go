package ports

import (
	"context"

	"steelorders/internal/core/domain/model/audit"
)

// AuditLogRepository appends entries to the audit trail. There is no way to
// change or remove an entry.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error
}
