package user

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"           // Full access to company data
	RolePayrollOfficer Role = "payroll_officer" // Can manage salary structures and run payroll
	RoleEmployee       Role = "employee"        // Regular employee
)

type User struct {
	ID        string
	CompanyID string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanRunPayroll checks if the role is allowed to manage payroll operations.
func (r Role) CanRunPayroll() bool {
	return r == RoleAdmin || r == RolePayrollOfficer
}
