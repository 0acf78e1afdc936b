package postgresql

import (
	"context"
	"fmt"

	"github.com/cadencehr/payroll-backend-go/internal/domain/audit"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO system_logs (actor_id, company_id, action, description, module)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query, entry.ActorID, entry.CompanyID, entry.Action, entry.Description, entry.Module)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}
