package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cadencehr/payroll-backend-go/internal/domain/attendance"
	"github.com/cadencehr/payroll-backend-go/internal/domain/audit"
	"github.com/cadencehr/payroll-backend-go/internal/domain/employee"
	"github.com/cadencehr/payroll-backend-go/internal/domain/payroll"
	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

// ========== MOCKS ==========

// fakeTransactor runs fn directly; services only care that everything inside
// sees the same ctx.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserRepo struct {
	role user.Role
	err  error
}

func (m *mockUserRepo) GetRole(ctx context.Context, userID, companyID string) (user.Role, error) {
	return m.role, m.err
}

type mockEmployeeRepo struct {
	employees []employee.Employee
}

func (m *mockEmployeeRepo) GetActiveWithSalaryStructure(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return m.employees, nil
}

type mockSalaryRepo struct {
	companyID  string
	structures map[string]salary.Structure   // by employee ID
	components map[string][]salary.Component // by structure ID
}

func (m *mockSalaryRepo) CreateStructure(ctx context.Context, structure salary.Structure, components []salary.Component) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (m *mockSalaryRepo) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (salary.Structure, error) {
	s, ok := m.structures[employeeID]
	if !ok || companyID != m.companyID {
		return salary.Structure{}, salary.ErrStructureNotFound
	}
	return s, nil
}

func (m *mockSalaryRepo) GetComponents(ctx context.Context, structureID string) ([]salary.Component, error) {
	return m.components[structureID], nil
}

func (m *mockSalaryRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]salary.Structure, error) {
	return nil, nil
}

type mockAttendanceRepo struct {
	summaries map[string]attendance.PeriodSummary // by employee ID
}

func (m *mockAttendanceRepo) PeriodSummary(ctx context.Context, employeeID string, from, to time.Time) (attendance.PeriodSummary, error) {
	return m.summaries[employeeID], nil
}

type mockAuditRepo struct {
	entries []audit.Entry
}

func (m *mockAuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

type mockPayrollRepo struct {
	settings    *payroll.Settings
	payruns     map[string]payroll.Payrun
	payslips    []payroll.Payslip
	lines       map[string][]payroll.PayslipLine
	lockedIDs   []string
	deletedRuns []string
	nextSlipID  int
}

func newMockPayrollRepo() *mockPayrollRepo {
	return &mockPayrollRepo{
		payruns: map[string]payroll.Payrun{},
		lines:   map[string][]payroll.PayslipLine{},
	}
}

func (m *mockPayrollRepo) GetSettings(ctx context.Context, companyID string) (payroll.Settings, error) {
	if m.settings == nil {
		return payroll.Settings{}, payroll.ErrSettingsNotFound
	}
	return *m.settings, nil
}

func (m *mockPayrollRepo) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	m.settings = &settings
	return settings, nil
}

func (m *mockPayrollRepo) CreatePayrun(ctx context.Context, payrun payroll.Payrun) (string, error) {
	id := fmt.Sprintf("payrun-%d", len(m.payruns)+1)
	payrun.ID = id
	m.payruns[id] = payrun
	return id, nil
}

func (m *mockPayrollRepo) GetPayrunByID(ctx context.Context, id, companyID string) (payroll.Payrun, error) {
	p, ok := m.payruns[id]
	if !ok || p.CompanyID != companyID {
		return payroll.Payrun{}, payroll.ErrPayrunNotFound
	}
	return p, nil
}

func (m *mockPayrollRepo) ListPayruns(ctx context.Context, companyID string, status *string) ([]payroll.Payrun, error) {
	var out []payroll.Payrun
	for _, p := range m.payruns {
		if p.CompanyID != companyID {
			continue
		}
		if status != nil && string(p.Status) != *status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPayrollRepo) UpdatePayrunStatus(ctx context.Context, id string, status payroll.PayrunStatus) error {
	p, ok := m.payruns[id]
	if !ok {
		return payroll.ErrPayrunNotFound
	}
	p.Status = status
	m.payruns[id] = p
	return nil
}

func (m *mockPayrollRepo) LockPayrun(ctx context.Context, payrunID string) error {
	m.lockedIDs = append(m.lockedIDs, payrunID)
	return nil
}

func (m *mockPayrollRepo) DeletePayslipsByPayrun(ctx context.Context, payrunID string) error {
	m.deletedRuns = append(m.deletedRuns, payrunID)
	kept := m.payslips[:0]
	for _, p := range m.payslips {
		if p.PayrunID != payrunID {
			kept = append(kept, p)
		} else {
			delete(m.lines, p.ID)
		}
	}
	m.payslips = kept
	return nil
}

func (m *mockPayrollRepo) CreatePayslip(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	m.nextSlipID++
	payslip.ID = fmt.Sprintf("payslip-%d", m.nextSlipID)
	m.payslips = append(m.payslips, payslip)
	return payslip, nil
}

func (m *mockPayrollRepo) CreatePayslipLines(ctx context.Context, payslipID string, lines []payroll.PayslipLine) error {
	m.lines[payslipID] = lines
	return nil
}

func (m *mockPayrollRepo) GetPayslipsByPayrun(ctx context.Context, payrunID, companyID string) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range m.payslips {
		if p.PayrunID == payrunID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPayrollRepo) GetPayslipsByEmployee(ctx context.Context, employeeID, companyID string) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range m.payslips {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPayrollRepo) GetPayslipByID(ctx context.Context, id, companyID string) (payroll.Payslip, error) {
	for _, p := range m.payslips {
		if p.ID == id {
			return p, nil
		}
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (m *mockPayrollRepo) GetPayslipLines(ctx context.Context, payslipID string) ([]payroll.PayslipLine, error) {
	return m.lines[payslipID], nil
}

func (m *mockPayrollRepo) UpdatePayslipStatusByPayrun(ctx context.Context, payrunID string, status payroll.PayrunStatus) error {
	for i, p := range m.payslips {
		if p.PayrunID == payrunID {
			m.payslips[i].Status = status
		}
	}
	return nil
}

// ========== HELPERS ==========

type serviceEnv struct {
	svc         payroll.PayrollService
	payrollRepo *mockPayrollRepo
	salaryRepo  *mockSalaryRepo
	empRepo     *mockEmployeeRepo
	attRepo     *mockAttendanceRepo
	userRepo    *mockUserRepo
	auditRepo   *mockAuditRepo
}

func newServiceEnv(role user.Role) *serviceEnv {
	env := &serviceEnv{
		payrollRepo: newMockPayrollRepo(),
		salaryRepo:  &mockSalaryRepo{companyID: "company-1", structures: map[string]salary.Structure{}, components: map[string][]salary.Component{}},
		empRepo:     &mockEmployeeRepo{},
		attRepo:     &mockAttendanceRepo{summaries: map[string]attendance.PeriodSummary{}},
		userRepo:    &mockUserRepo{role: role},
		auditRepo:   &mockAuditRepo{},
	}
	env.svc = NewPayrollService(
		env.payrollRepo, env.salaryRepo, env.empRepo, env.attRepo,
		env.userRepo, env.auditRepo, fakeTransactor{},
	)
	return env
}

func (e *serviceEnv) seedPayrun(t *testing.T, status payroll.PayrunStatus) string {
	t.Helper()
	id, err := e.payrollRepo.CreatePayrun(context.Background(), payroll.Payrun{
		CompanyID:   "company-1",
		Name:        "November 2025",
		PeriodStart: mustDate(t, "2025-11-01"),
		PeriodEnd:   mustDate(t, "2025-11-30"),
		CreatedBy:   "actor-1",
		Status:      status,
	})
	require.NoError(t, err)
	return id
}

func (e *serviceEnv) seedEmployee(empID, wage string, components []salary.Component) {
	e.empRepo.employees = append(e.empRepo.employees, employee.Employee{ID: empID, CompanyID: "company-1", IsActive: true})
	structureID := "structure-" + empID
	e.salaryRepo.structures[empID] = salary.Structure{ID: structureID, EmployeeID: empID, MonthlyWage: dec(wage), IsActive: true}
	e.salaryRepo.components[structureID] = components
}

func standardComponents() []salary.Component {
	return []salary.Component{
		{Name: "Basic Salary", Type: salary.ComponentTypeEarning, Kind: salary.CalculationPercentageOfWage, Value: dec("50"), IsBasic: true},
		{Name: "HRA", Type: salary.ComponentTypeEarning, Kind: salary.CalculationPercentageOfBasic, Value: dec("50")},
		{Name: "Special Allowance", Type: salary.ComponentTypeEarning, Kind: salary.CalculationFixed, Value: dec("2918")},
	}
}

// ========== TESTS ==========

func TestCreatePayrun(t *testing.T) {
	t.Run("creates draft payrun and audit entry", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)

		resp, err := env.svc.CreatePayrun(context.Background(), payroll.CreatePayrunRequest{
			Name:        "November 2025",
			PeriodStart: "2025-11-01",
			PeriodEnd:   "2025-11-30",
		}, "actor-1", "company-1")

		require.NoError(t, err)
		require.NotEmpty(t, resp.PayrunID)

		created := env.payrollRepo.payruns[resp.PayrunID]
		assert.Equal(t, payroll.PayrunStatusDraft, created.Status)
		assert.Equal(t, "actor-1", created.CreatedBy)

		require.Len(t, env.auditRepo.entries, 1)
		assert.Equal(t, audit.ActionPayrunCreated, env.auditRepo.entries[0].Action)
	})

	t.Run("rejects employees", func(t *testing.T) {
		env := newServiceEnv(user.RoleEmployee)

		_, err := env.svc.CreatePayrun(context.Background(), payroll.CreatePayrunRequest{
			Name:        "November 2025",
			PeriodStart: "2025-11-01",
			PeriodEnd:   "2025-11-30",
		}, "actor-1", "company-1")

		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)

		_, err := env.svc.CreatePayrun(context.Background(), payroll.CreatePayrunRequest{
			Name:        "November 2025",
			PeriodStart: "2025-11-30",
			PeriodEnd:   "2025-11-01",
		}, "actor-1", "company-1")

		require.Error(t, err)
	})
}

func TestComputePayroll(t *testing.T) {
	t.Run("full month with default settings", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())

		resp, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		assert.Equal(t, 1, resp.EmployeeCount)
		assert.Contains(t, env.payrollRepo.lockedIDs, payrunID)
		assert.Equal(t, payroll.PayrunStatusComputed, env.payrollRepo.payruns[payrunID].Status)

		require.Len(t, env.payrollRepo.payslips, 1)
		slip := env.payrollRepo.payslips[0]
		assert.Equal(t, 21, slip.TotalWorkingDays)
		assert.Equal(t, 21, slip.PaidDays)
		assert.True(t, slip.BasicSalary.Equal(dec("25000")), "basic: %s", slip.BasicSalary)
		assert.True(t, slip.GrossSalary.Equal(dec("40418")), "gross: %s", slip.GrossSalary)
		assert.True(t, slip.TotalDeductions.Equal(dec("3200")), "deductions: %s", slip.TotalDeductions)
		assert.True(t, slip.NetSalary.Equal(dec("37218")), "net: %s", slip.NetSalary)

		lines := env.payrollRepo.lines[slip.ID]
		require.Len(t, lines, 6)
		byName := map[string]payroll.PayslipLine{}
		for _, l := range lines {
			byName[l.Name] = l
		}
		assert.True(t, byName["Provident Fund (Employee 12%)"].Amount.Equal(dec("3000")))
		assert.True(t, byName["Provident Fund (Employer 12%)"].Amount.Equal(dec("3000")))
		assert.True(t, byName["Professional Tax"].Amount.Equal(dec("200")))
	})

	t.Run("prorates by attendance", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())
		// 14 of 21 working days present, tracked.
		env.attRepo.summaries["emp-1"] = attendance.PeriodSummary{EmployeeID: "emp-1", TotalRecords: 20, PresentDays: 14}

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		require.Len(t, env.payrollRepo.payslips, 1)
		slip := env.payrollRepo.payslips[0]
		assert.Equal(t, 14, slip.PaidDays)
		// 25000 * 14/21 = 16666.67
		assert.True(t, slip.BasicSalary.Equal(dec("16666.67")), "basic: %s", slip.BasicSalary)
		// PF on prorated basic: 16666.67 * 12% = 2000.00
		// total deductions: 2000.00 + 200 = 2200.00
		assert.True(t, slip.TotalDeductions.Equal(dec("2200")), "deductions: %s", slip.TotalDeductions)
	})

	t.Run("fully absent employee owes flat deductions", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())
		env.attRepo.summaries["emp-1"] = attendance.PeriodSummary{EmployeeID: "emp-1", TotalRecords: 21, PresentDays: 0}

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		require.Len(t, env.payrollRepo.payslips, 1)
		slip := env.payrollRepo.payslips[0]
		assert.Equal(t, 0, slip.PaidDays)
		assert.True(t, slip.GrossSalary.IsZero())
		// Professional tax is flat, so the net goes negative.
		assert.True(t, slip.NetSalary.Equal(dec("-200")), "net: %s", slip.NetSalary)
	})

	t.Run("caps paid days at working days", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())
		env.attRepo.summaries["emp-1"] = attendance.PeriodSummary{EmployeeID: "emp-1", TotalRecords: 30, PresentDays: 30}

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		require.Len(t, env.payrollRepo.payslips, 1)
		assert.Equal(t, 21, env.payrollRepo.payslips[0].PaidDays)
	})

	t.Run("recompute replaces previous payslips with identical amounts", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")
		require.NoError(t, err)
		require.Len(t, env.payrollRepo.payslips, 1)
		first := env.payrollRepo.payslips[0]
		firstLines := env.payrollRepo.lines[first.ID]

		_, err = env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")
		require.NoError(t, err)

		require.Len(t, env.payrollRepo.payslips, 1)
		assert.Len(t, env.payrollRepo.deletedRuns, 2)

		second := env.payrollRepo.payslips[0]
		assert.NotEqual(t, first.ID, second.ID)
		assert.True(t, second.BasicSalary.Equal(first.BasicSalary))
		assert.True(t, second.GrossSalary.Equal(first.GrossSalary))
		assert.True(t, second.TotalDeductions.Equal(first.TotalDeductions))
		assert.True(t, second.NetSalary.Equal(first.NetSalary))

		secondLines := env.payrollRepo.lines[second.ID]
		require.Len(t, secondLines, len(firstLines))
		for i := range firstLines {
			assert.Equal(t, firstLines[i].Name, secondLines[i].Name)
			assert.Equal(t, firstLines[i].Type, secondLines[i].Type)
			assert.True(t, secondLines[i].Amount.Equal(firstLines[i].Amount), "line %q: got %s want %s", firstLines[i].Name, secondLines[i].Amount, firstLines[i].Amount)
		}
	})

	t.Run("skips employee whose structure vanished", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())
		env.empRepo.employees = append(env.empRepo.employees, employee.Employee{ID: "emp-2", CompanyID: "company-1", IsActive: true})

		resp, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		assert.Equal(t, 1, resp.EmployeeCount)
		assert.Len(t, env.payrollRepo.payslips, 1)
	})

	t.Run("rejects employees and leaves existing payslips untouched", func(t *testing.T) {
		env := newServiceEnv(user.RoleEmployee)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusComputed)
		existing, err := env.payrollRepo.CreatePayslip(context.Background(), payroll.Payslip{
			PayrunID:   payrunID,
			EmployeeID: "emp-1",
			NetSalary:  dec("37218"),
			Status:     payroll.PayrunStatusComputed,
		})
		require.NoError(t, err)

		_, err = env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
		assert.Empty(t, env.payrollRepo.deletedRuns)
		require.Len(t, env.payrollRepo.payslips, 1)
		assert.Equal(t, existing.ID, env.payrollRepo.payslips[0].ID)
		assert.True(t, env.payrollRepo.payslips[0].NetSalary.Equal(dec("37218")))
	})

	t.Run("rejects validated payrun", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusValidated)

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		assert.ErrorIs(t, err, payroll.ErrPayrunValidated)
	})

	t.Run("rejects missing payrun", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)

		_, err := env.svc.ComputePayroll(context.Background(), "nope", "actor-1", "company-1")

		assert.ErrorIs(t, err, payroll.ErrPayrunNotFound)
	})

	t.Run("rejects cross-company payrun", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-other")

		assert.ErrorIs(t, err, payroll.ErrPayrunNotFound)
	})

	t.Run("uses stored settings over defaults", func(t *testing.T) {
		env := newServiceEnv(user.RolePayrollOfficer)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())
		env.payrollRepo.settings = &payroll.Settings{
			CompanyID:       "company-1",
			PFRateEmployee:  dec("10"),
			PFRateEmployer:  dec("10"),
			ProfessionalTax: dec("150"),
		}

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		slip := env.payrollRepo.payslips[0]
		// 25000 * 10% + 150 = 2650
		assert.True(t, slip.TotalDeductions.Equal(dec("2650")), "deductions: %s", slip.TotalDeductions)
	})
}

func TestValidatePayrun(t *testing.T) {
	t.Run("marks payrun and payslips validated", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")
		require.NoError(t, err)

		err = env.svc.ValidatePayrun(context.Background(), payrunID, "actor-1", "company-1")

		require.NoError(t, err)
		assert.Equal(t, payroll.PayrunStatusValidated, env.payrollRepo.payruns[payrunID].Status)
		assert.Equal(t, payroll.PayrunStatusValidated, env.payrollRepo.payslips[0].Status)
	})

	t.Run("rejects draft payrun", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)

		err := env.svc.ValidatePayrun(context.Background(), payrunID, "actor-1", "company-1")

		assert.ErrorIs(t, err, payroll.ErrPayrunNotComputed)
	})

	t.Run("rejects already validated payrun", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusValidated)

		err := env.svc.ValidatePayrun(context.Background(), payrunID, "actor-1", "company-1")

		assert.ErrorIs(t, err, payroll.ErrPayrunValidated)
	})

	t.Run("rejects employees", func(t *testing.T) {
		env := newServiceEnv(user.RoleEmployee)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusComputed)

		err := env.svc.ValidatePayrun(context.Background(), payrunID, "actor-1", "company-1")

		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
	})
}

func TestGetPayslips(t *testing.T) {
	t.Run("payslips for payrun", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")
		require.NoError(t, err)

		slips, err := env.svc.GetPayslipsForPayrun(context.Background(), payrunID, "company-1")
		require.NoError(t, err)
		require.Len(t, slips, 1)
		assert.Equal(t, "emp-1", slips[0].EmployeeID)
	})

	t.Run("payslip detail includes lines", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())

		_, err := env.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")
		require.NoError(t, err)

		detail, err := env.svc.GetPayslipDetail(context.Background(), env.payrollRepo.payslips[0].ID, "company-1")
		require.NoError(t, err)
		assert.Len(t, detail.Lines, 6)
	})

	t.Run("employee can view own payslips", func(t *testing.T) {
		env := newServiceEnv(user.RoleEmployee)
		payrunID := env.seedPayrun(t, payroll.PayrunStatusDraft)
		env.seedEmployee("emp-1", "50000", standardComponents())

		// Seed through an officer-backed env sharing the same repo.
		officer := *env
		officer.userRepo = &mockUserRepo{role: user.RolePayrollOfficer}
		officer.svc = NewPayrollService(
			env.payrollRepo, env.salaryRepo, env.empRepo, env.attRepo,
			officer.userRepo, env.auditRepo, fakeTransactor{},
		)
		_, err := officer.svc.ComputePayroll(context.Background(), payrunID, "actor-1", "company-1")
		require.NoError(t, err)

		slips, err := env.svc.GetPayslipsForEmployee(context.Background(), "emp-1", "emp-1", "company-1")
		require.NoError(t, err)
		assert.Len(t, slips, 1)

		_, err = env.svc.GetPayslipsForEmployee(context.Background(), "emp-1", "someone-else", "company-1")
		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
	})
}

func TestSettings(t *testing.T) {
	t.Run("defaults when no row exists", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)

		resp, err := env.svc.GetSettings(context.Background(), "company-1")

		require.NoError(t, err)
		assert.True(t, resp.PFRateEmployee.Equal(dec("12")))
		assert.True(t, resp.PFRateEmployer.Equal(dec("12")))
		assert.True(t, resp.ProfessionalTax.Equal(dec("200")))
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		pt := dec("250")

		resp, err := env.svc.UpdateSettings(context.Background(), payroll.UpdateSettingsRequest{
			ProfessionalTax: &pt,
		}, "actor-1", "company-1")

		require.NoError(t, err)
		assert.True(t, resp.ProfessionalTax.Equal(dec("250")))
		assert.True(t, resp.PFRateEmployee.Equal(dec("12")))

		require.Len(t, env.auditRepo.entries, 1)
		assert.Equal(t, audit.ActionPayrollSettingsUpdated, env.auditRepo.entries[0].Action)
	})

	t.Run("rejects out-of-range rate", func(t *testing.T) {
		env := newServiceEnv(user.RoleAdmin)
		rate := dec("120")

		_, err := env.svc.UpdateSettings(context.Background(), payroll.UpdateSettingsRequest{
			PFRateEmployee: &rate,
		}, "actor-1", "company-1")

		require.Error(t, err)
	})

	t.Run("rejects employees", func(t *testing.T) {
		env := newServiceEnv(user.RoleEmployee)
		rate := dec("10")

		_, err := env.svc.UpdateSettings(context.Background(), payroll.UpdateSettingsRequest{
			PFRateEmployee: &rate,
		}, "actor-1", "company-1")

		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)
	})
}
