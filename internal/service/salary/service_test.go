package salary

import (
	"context"
	"fmt"
	"testing"

	"github.com/cadencehr/payroll-backend-go/internal/domain/audit"
	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/domain/user"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserRepo struct {
	role user.Role
}

func (m *mockUserRepo) GetRole(ctx context.Context, userID, companyID string) (user.Role, error) {
	return m.role, nil
}

type mockAuditRepo struct {
	entries []audit.Entry
}

func (m *mockAuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

type mockSalaryRepo struct {
	companyID  string
	structures map[string]salary.Structure
	components map[string][]salary.Component
	created    int
}

func newMockSalaryRepo() *mockSalaryRepo {
	return &mockSalaryRepo{
		companyID:  "company-1",
		structures: map[string]salary.Structure{},
		components: map[string][]salary.Component{},
	}
}

func (m *mockSalaryRepo) CreateStructure(ctx context.Context, structure salary.Structure, components []salary.Component) (string, error) {
	m.created++
	id := fmt.Sprintf("structure-%d", m.created)
	structure.ID = id
	// Deactivate any prior structure for the employee.
	for key, existing := range m.structures {
		if existing.EmployeeID == structure.EmployeeID {
			existing.IsActive = false
			m.structures[key] = existing
		}
	}
	m.structures[structure.EmployeeID] = structure
	m.components[id] = components
	return id, nil
}

func (m *mockSalaryRepo) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (salary.Structure, error) {
	s, ok := m.structures[employeeID]
	if !ok || !s.IsActive || companyID != m.companyID {
		return salary.Structure{}, salary.ErrStructureNotFound
	}
	return s, nil
}

func (m *mockSalaryRepo) GetComponents(ctx context.Context, structureID string) ([]salary.Component, error) {
	return m.components[structureID], nil
}

func (m *mockSalaryRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]salary.Structure, error) {
	var out []salary.Structure
	for _, s := range m.structures {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func validRequest(employeeID string) salary.UpsertStructureRequest {
	return salary.UpsertStructureRequest{
		EmployeeID:    employeeID,
		MonthlyWage:   dec("50000"),
		YearlyWage:    dec("600000"),
		EffectiveFrom: "2025-11-01",
		Components: []salary.ComponentInput{
			{Name: "Basic Salary", Type: "earning", Kind: "percentage_of_wage", Value: dec("50"), IsBasic: true},
			{Name: "HRA", Type: "earning", Kind: "percentage_of_basic", Value: dec("50")},
			{Name: "Special Allowance", Type: "earning", Kind: "fixed", Value: dec("2918")},
		},
	}
}

func newService(role user.Role) (salary.SalaryService, *mockSalaryRepo, *mockAuditRepo) {
	salaryRepo := newMockSalaryRepo()
	auditRepo := &mockAuditRepo{}
	svc := NewSalaryService(salaryRepo, &mockUserRepo{role: role}, auditRepo, fakeTransactor{})
	return svc, salaryRepo, auditRepo
}

func TestUpsertStructure(t *testing.T) {
	t.Run("creates structure and audit entry", func(t *testing.T) {
		svc, salaryRepo, auditRepo := newService(user.RolePayrollOfficer)

		resp, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")

		require.NoError(t, err)
		require.NotEmpty(t, resp.StructureID)
		assert.Len(t, salaryRepo.components[resp.StructureID], 3)

		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, audit.ActionSalaryStructureCreated, auditRepo.entries[0].Action)
	})

	t.Run("new structure supersedes the old one", func(t *testing.T) {
		svc, salaryRepo, _ := newService(user.RoleAdmin)

		first, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")
		require.NoError(t, err)
		second, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")
		require.NoError(t, err)

		assert.NotEqual(t, first.StructureID, second.StructureID)
		active, err := salaryRepo.GetActiveByEmployee(context.Background(), "emp-1", "company-1")
		require.NoError(t, err)
		assert.Equal(t, second.StructureID, active.ID)
	})

	t.Run("rejects employees", func(t *testing.T) {
		svc, _, _ := newService(user.RoleEmployee)

		_, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")

		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
	})

	t.Run("rejects missing basic flag", func(t *testing.T) {
		svc, _, _ := newService(user.RoleAdmin)
		req := validRequest("emp-1")
		req.Components[0].IsBasic = false

		_, err := svc.UpsertStructure(context.Background(), req, "actor-1", "company-1")

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap()["components"], "exactly one earning component")
	})

	t.Run("rejects two basic flags", func(t *testing.T) {
		svc, _, _ := newService(user.RoleAdmin)
		req := validRequest("emp-1")
		req.Components[1].IsBasic = true

		_, err := svc.UpsertStructure(context.Background(), req, "actor-1", "company-1")

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})

	t.Run("rejects components exceeding the wage", func(t *testing.T) {
		svc, _, _ := newService(user.RoleAdmin)
		req := validRequest("emp-1")
		req.Components = append(req.Components, salary.ComponentInput{
			Name: "Bonus", Type: "earning", Kind: "percentage_of_wage", Value: dec("60"),
		})

		_, err := svc.UpsertStructure(context.Background(), req, "actor-1", "company-1")

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap()["components"], "exceed the defined wage")
	})
}

func TestGetStructure(t *testing.T) {
	t.Run("returns active structure with components", func(t *testing.T) {
		svc, _, _ := newService(user.RoleAdmin)
		_, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")
		require.NoError(t, err)

		resp, err := svc.GetStructure(context.Background(), "emp-1", "actor-1", "company-1")

		require.NoError(t, err)
		assert.Equal(t, "emp-1", resp.EmployeeID)
		assert.True(t, resp.MonthlyWage.Equal(dec("50000")))
		require.Len(t, resp.Components, 3)
		assert.True(t, resp.Components[0].IsBasic)
	})

	t.Run("not found when none active", func(t *testing.T) {
		svc, _, _ := newService(user.RoleAdmin)

		_, err := svc.GetStructure(context.Background(), "emp-unknown", "actor-1", "company-1")

		assert.ErrorIs(t, err, salary.ErrStructureNotFound)
	})

	t.Run("not found for another company", func(t *testing.T) {
		svc, _, _ := newService(user.RoleAdmin)
		_, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")
		require.NoError(t, err)

		_, err = svc.GetStructure(context.Background(), "emp-1", "actor-1", "company-2")

		assert.ErrorIs(t, err, salary.ErrStructureNotFound)
	})

	t.Run("employee can view own structure but not others", func(t *testing.T) {
		svc, salaryRepo, auditRepo := newService(user.RoleAdmin)
		_, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")
		require.NoError(t, err)

		employeeSvc := NewSalaryService(salaryRepo, &mockUserRepo{role: user.RoleEmployee}, auditRepo, fakeTransactor{})

		resp, err := employeeSvc.GetStructure(context.Background(), "emp-1", "emp-1", "company-1")
		require.NoError(t, err)
		assert.Equal(t, "emp-1", resp.EmployeeID)

		_, err = employeeSvc.GetStructure(context.Background(), "emp-1", "someone-else", "company-1")
		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
	})
}

func TestListStructures(t *testing.T) {
	svc, _, _ := newService(user.RoleAdmin)
	_, err := svc.UpsertStructure(context.Background(), validRequest("emp-1"), "actor-1", "company-1")
	require.NoError(t, err)
	_, err = svc.UpsertStructure(context.Background(), validRequest("emp-2"), "actor-1", "company-1")
	require.NoError(t, err)

	structures, err := svc.ListStructures(context.Background(), "company-1")

	require.NoError(t, err)
	assert.Len(t, structures, 2)
}
