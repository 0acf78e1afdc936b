package user

import "context"

// UserRepository is the identity collaborator consumed by payroll. Role
// lookups are always scoped to a company to prevent cross-company access.
type UserRepository interface {
	GetRole(ctx context.Context, userID string, companyID string) (Role, error)
}
