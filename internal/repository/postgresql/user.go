package postgresql

import (
	"context"
	"fmt"

	"github.com/cadencehr/payroll-backend-go/internal/domain/user"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetRole(ctx context.Context, userID string, companyID string) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT role
		FROM users
		WHERE id = $1 AND company_id = $2 AND is_active = true
	`

	var role user.Role
	err := q.QueryRow(ctx, query, userID, companyID).Scan(&role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", user.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user role: %w", err)
	}

	return role, nil
}
