package salary

import "context"

// SalaryRepository defines data access for salary structures and their
// components. CreateStructure deactivates any prior structure for the
// employee and replaces the component set wholesale; callers run it inside
// a transaction. Reads take companyID to prevent cross-company access.
type SalaryRepository interface {
	CreateStructure(ctx context.Context, structure Structure, components []Component) (string, error)
	GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (Structure, error)
	GetComponents(ctx context.Context, structureID string) ([]Component, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]Structure, error)
}
