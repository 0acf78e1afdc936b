package audit

import "context"

// AuditRepository persists audit entries. Callers record entries inside the
// same transaction as the change they describe.
type AuditRepository interface {
	Record(ctx context.Context, entry Entry) error
}
