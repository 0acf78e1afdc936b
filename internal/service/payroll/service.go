package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cadencehr/payroll-backend-go/internal/domain/attendance"
	"github.com/cadencehr/payroll-backend-go/internal/domain/audit"
	"github.com/cadencehr/payroll-backend-go/internal/domain/employee"
	"github.com/cadencehr/payroll-backend-go/internal/domain/payroll"
	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/domain/user"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	salaryRepo     salary.SalaryRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	auditRepo      audit.AuditRepository
	transactor     database.Transactor
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	auditRepo audit.AuditRepository,
	transactor database.Transactor,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		salaryRepo:     salaryRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		transactor:     transactor,
	}
}

func (s *PayrollServiceImpl) requirePayrollRole(ctx context.Context, actorID, companyID string) error {
	role, err := s.userRepo.GetRole(ctx, actorID, companyID)
	if err != nil {
		return err
	}
	if !role.CanRunPayroll() {
		return user.ErrPayrollAccessRequired
	}
	return nil
}

// ========== PAYRUNS ==========

func (s *PayrollServiceImpl) CreatePayrun(ctx context.Context, req payroll.CreatePayrunRequest, actorID, companyID string) (payroll.CreatePayrunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CreatePayrunResponse{}, err
	}

	if err := s.requirePayrollRole(ctx, actorID, companyID); err != nil {
		return payroll.CreatePayrunResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	var payrunID string
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		id, err := s.payrollRepo.CreatePayrun(ctx, payroll.Payrun{
			CompanyID:   companyID,
			Name:        req.Name,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			CreatedBy:   actorID,
			Status:      payroll.PayrunStatusDraft,
		})
		if err != nil {
			return err
		}
		payrunID = id

		return s.auditRepo.Record(ctx, audit.Entry{
			ActorID:     actorID,
			CompanyID:   companyID,
			Action:      audit.ActionPayrunCreated,
			Description: fmt.Sprintf("Created payrun '%s' (%s to %s)", req.Name, req.PeriodStart, req.PeriodEnd),
			Module:      audit.ModulePayroll,
		})
	})
	if err != nil {
		return payroll.CreatePayrunResponse{}, err
	}

	return payroll.CreatePayrunResponse{PayrunID: payrunID}, nil
}

func (s *PayrollServiceImpl) ListPayruns(ctx context.Context, companyID string, status *string) ([]payroll.PayrunResponse, error) {
	payruns, err := s.payrollRepo.ListPayruns(ctx, companyID, status)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrunResponse, 0, len(payruns))
	for _, p := range payruns {
		responses = append(responses, toPayrunResponse(p))
	}
	return responses, nil
}

// ComputePayroll runs the full computation for every active employee with an
// active salary structure, replacing any payslips from a previous pass. The
// whole pass is one transaction, serialized per payrun by an advisory lock so
// concurrent calls queue instead of interleaving the regenerate.
func (s *PayrollServiceImpl) ComputePayroll(ctx context.Context, payrunID, actorID, companyID string) (payroll.ComputePayrollResponse, error) {
	if err := s.requirePayrollRole(ctx, actorID, companyID); err != nil {
		return payroll.ComputePayrollResponse{}, err
	}

	var employeeCount int
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payrollRepo.LockPayrun(ctx, payrunID); err != nil {
			return err
		}

		payrun, err := s.payrollRepo.GetPayrunByID(ctx, payrunID, companyID)
		if err != nil {
			return err
		}
		if !payrun.Status.CanCompute() {
			return payroll.ErrPayrunValidated
		}

		settings, err := s.payrollRepo.GetSettings(ctx, companyID)
		if err != nil {
			if !errors.Is(err, payroll.ErrSettingsNotFound) {
				return err
			}
			settings = payroll.DefaultSettings(companyID)
		}

		if err := s.payrollRepo.DeletePayslipsByPayrun(ctx, payrunID); err != nil {
			return err
		}

		employees, err := s.employeeRepo.GetActiveWithSalaryStructure(ctx, companyID)
		if err != nil {
			return err
		}

		totalWorkingDays := workingDaysInPeriod(payrun.PeriodStart, payrun.PeriodEnd)

		for _, emp := range employees {
			created, err := s.computeEmployee(ctx, payrun, settings, emp, totalWorkingDays)
			if err != nil {
				return err
			}
			if created {
				employeeCount++
			}
		}

		if err := s.payrollRepo.UpdatePayrunStatus(ctx, payrunID, payroll.PayrunStatusComputed); err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, audit.Entry{
			ActorID:     actorID,
			CompanyID:   companyID,
			Action:      audit.ActionPayrollComputed,
			Description: fmt.Sprintf("Computed payroll for payrun '%s' (%d employees)", payrun.Name, employeeCount),
			Module:      audit.ModulePayroll,
		})
	})
	if err != nil {
		return payroll.ComputePayrollResponse{}, err
	}

	slog.Info("payroll computed", "payrun_id", payrunID, "company_id", companyID, "employee_count", employeeCount)

	return payroll.ComputePayrollResponse{EmployeeCount: employeeCount}, nil
}

// computeEmployee builds and stores one payslip. Returns false without error
// when the employee turns out to have no active structure; a structure can
// disappear between the employee listing and here only through a concurrent
// edit, and skipping matches treating the employee as not payroll-eligible.
func (s *PayrollServiceImpl) computeEmployee(ctx context.Context, payrun payroll.Payrun, settings payroll.Settings, emp employee.Employee, totalWorkingDays int) (bool, error) {
	structure, err := s.salaryRepo.GetActiveByEmployee(ctx, emp.ID, payrun.CompanyID)
	if err != nil {
		if errors.Is(err, salary.ErrStructureNotFound) {
			return false, nil
		}
		return false, err
	}

	components, err := s.salaryRepo.GetComponents(ctx, structure.ID)
	if err != nil {
		return false, err
	}

	resolution := ResolveComponents(structure.MonthlyWage, components)

	summary, err := s.attendanceRepo.PeriodSummary(ctx, emp.ID, payrun.PeriodStart, payrun.PeriodEnd)
	if err != nil {
		return false, err
	}

	// No attendance tracked at all means full presence, not zero pay.
	presentDays := summary.PresentDays
	if summary.TotalRecords == 0 {
		presentDays = totalWorkingDays
	}
	paidDays := presentDays
	if paidDays > totalWorkingDays {
		paidDays = totalWorkingDays
	}

	ratio := decimal.Zero
	if totalWorkingDays > 0 {
		ratio = decimal.NewFromInt(int64(paidDays)).Div(decimal.NewFromInt(int64(totalWorkingDays)))
	}

	proratedBasic := resolution.BasicSalary.Mul(ratio).Round(2)
	proratedGross := resolution.GrossSalary.Mul(ratio).Round(2)

	pfEmployee := proratedBasic.Mul(settings.PFRateEmployee).Div(hundred).Round(2)
	pfEmployer := proratedBasic.Mul(settings.PFRateEmployer).Div(hundred).Round(2)
	professionalTax := settings.ProfessionalTax.Round(2)

	totalDeductions := resolution.TotalDeductions.Mul(ratio).Round(2).Add(pfEmployee).Add(professionalTax)
	netSalary := proratedGross.Sub(totalDeductions)

	payslip, err := s.payrollRepo.CreatePayslip(ctx, payroll.Payslip{
		PayrunID:         payrun.ID,
		EmployeeID:       emp.ID,
		TotalWorkingDays: totalWorkingDays,
		PaidDays:         paidDays,
		BasicSalary:      proratedBasic,
		GrossSalary:      proratedGross,
		TotalDeductions:  totalDeductions,
		NetSalary:        netSalary,
		Status:           payroll.PayrunStatusComputed,
	})
	if err != nil {
		return false, err
	}

	lines := make([]payroll.PayslipLine, 0, len(resolution.Earnings)+len(resolution.Deductions)+3)
	for _, e := range resolution.Earnings {
		lines = append(lines, payroll.PayslipLine{
			Name:   e.Name,
			Amount: e.Amount.Mul(ratio).Round(2),
			Type:   payroll.LineTypeEarning,
		})
	}
	for _, d := range resolution.Deductions {
		lines = append(lines, payroll.PayslipLine{
			Name:   d.Name,
			Amount: d.Amount.Mul(ratio).Round(2),
			Type:   payroll.LineTypeDeduction,
		})
	}
	lines = append(lines,
		payroll.PayslipLine{
			Name:   fmt.Sprintf("Provident Fund (Employee %s%%)", settings.PFRateEmployee.String()),
			Amount: pfEmployee,
			Type:   payroll.LineTypeDeduction,
		},
		// Employer PF is informational: shown as a line, excluded from
		// total_deductions and net salary.
		payroll.PayslipLine{
			Name:   fmt.Sprintf("Provident Fund (Employer %s%%)", settings.PFRateEmployer.String()),
			Amount: pfEmployer,
			Type:   payroll.LineTypeDeduction,
		},
		payroll.PayslipLine{
			Name:   "Professional Tax",
			Amount: professionalTax,
			Type:   payroll.LineTypeDeduction,
		},
	)

	if err := s.payrollRepo.CreatePayslipLines(ctx, payslip.ID, lines); err != nil {
		return false, err
	}

	return true, nil
}

func (s *PayrollServiceImpl) ValidatePayrun(ctx context.Context, payrunID, actorID, companyID string) error {
	if err := s.requirePayrollRole(ctx, actorID, companyID); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		payrun, err := s.payrollRepo.GetPayrunByID(ctx, payrunID, companyID)
		if err != nil {
			return err
		}
		if !payrun.Status.CanValidate() {
			if payrun.Status == payroll.PayrunStatusValidated {
				return payroll.ErrPayrunValidated
			}
			return payroll.ErrPayrunNotComputed
		}

		if err := s.payrollRepo.UpdatePayrunStatus(ctx, payrunID, payroll.PayrunStatusValidated); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePayslipStatusByPayrun(ctx, payrunID, payroll.PayrunStatusValidated); err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, audit.Entry{
			ActorID:     actorID,
			CompanyID:   companyID,
			Action:      audit.ActionPayrollValidated,
			Description: fmt.Sprintf("Validated payrun '%s'", payrun.Name),
			Module:      audit.ModulePayroll,
		})
	})
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslipsForPayrun(ctx context.Context, payrunID, companyID string) ([]payroll.PayslipResponse, error) {
	if _, err := s.payrollRepo.GetPayrunByID(ctx, payrunID, companyID); err != nil {
		return nil, err
	}

	payslips, err := s.payrollRepo.GetPayslipsByPayrun(ctx, payrunID, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, toPayslipResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetPayslipDetail(ctx context.Context, payslipID, companyID string) (payroll.PayslipDetailResponse, error) {
	payslip, err := s.payrollRepo.GetPayslipByID(ctx, payslipID, companyID)
	if err != nil {
		return payroll.PayslipDetailResponse{}, err
	}

	lines, err := s.payrollRepo.GetPayslipLines(ctx, payslip.ID)
	if err != nil {
		return payroll.PayslipDetailResponse{}, err
	}

	lineResponses := make([]payroll.PayslipLineResponse, 0, len(lines))
	for _, l := range lines {
		lineResponses = append(lineResponses, payroll.PayslipLineResponse{
			ID:     l.ID,
			Name:   l.Name,
			Amount: l.Amount,
			Type:   string(l.Type),
		})
	}

	return payroll.PayslipDetailResponse{
		Payslip: toPayslipResponse(payslip),
		Lines:   lineResponses,
	}, nil
}

func (s *PayrollServiceImpl) GetPayslipsForEmployee(ctx context.Context, employeeID, actorID, companyID string) ([]payroll.PayslipResponse, error) {
	// Employees may view their own payslips; anyone else's require payroll
	// access.
	if actorID != employeeID {
		if err := s.requirePayrollRole(ctx, actorID, companyID); err != nil {
			return nil, err
		}
	}

	payslips, err := s.payrollRepo.GetPayslipsByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, toPayslipResponse(p))
	}
	return responses, nil
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context, companyID string) (payroll.SettingsResponse, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return toSettingsResponse(payroll.DefaultSettings(companyID)), nil
		}
		return payroll.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest, actorID, companyID string) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	if err := s.requirePayrollRole(ctx, actorID, companyID); err != nil {
		return payroll.SettingsResponse{}, err
	}

	current, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil {
		if !errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.SettingsResponse{}, err
		}
		current = payroll.DefaultSettings(companyID)
	}

	if req.PFRateEmployee != nil {
		current.PFRateEmployee = *req.PFRateEmployee
	}
	if req.PFRateEmployer != nil {
		current.PFRateEmployer = *req.PFRateEmployer
	}
	if req.ProfessionalTax != nil {
		current.ProfessionalTax = *req.ProfessionalTax
	}

	var updated payroll.Settings
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		updated, err = s.payrollRepo.UpsertSettings(ctx, current)
		if err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, audit.Entry{
			ActorID:     actorID,
			CompanyID:   companyID,
			Action:      audit.ActionPayrollSettingsUpdated,
			Description: "Updated payroll settings",
			Module:      audit.ModulePayroll,
		})
	})
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	return toSettingsResponse(updated), nil
}

// ========== HELPERS ==========

// workingDaysInPeriod approximates working days as 5/7 of the inclusive
// calendar day count, truncated. November 2025 (30 days) yields 21.
func workingDaysInPeriod(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	return days * 5 / 7
}

func toPayrunResponse(p payroll.Payrun) payroll.PayrunResponse {
	return payroll.PayrunResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		Name:           p.Name,
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
		CreatedBy:      p.CreatedBy,
		CreatorName:    p.CreatorName,
		Status:         string(p.Status),
		EmployeeCount:  p.EmployeeCount,
		TotalNetSalary: p.TotalNetSalary,
	}
}

func toPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:               p.ID,
		PayrunID:         p.PayrunID,
		EmployeeID:       p.EmployeeID,
		EmployeeName:     p.EmployeeName,
		EmployeeEmail:    p.EmployeeEmail,
		PayrunName:       p.PayrunName,
		TotalWorkingDays: p.TotalWorkingDays,
		PaidDays:         p.PaidDays,
		BasicSalary:      p.BasicSalary,
		GrossSalary:      p.GrossSalary,
		TotalDeductions:  p.TotalDeductions,
		NetSalary:        p.NetSalary,
		Status:           string(p.Status),
	}
	if p.PeriodStart != nil {
		start := p.PeriodStart.Format("2006-01-02")
		resp.PeriodStart = &start
	}
	if p.PeriodEnd != nil {
		end := p.PeriodEnd.Format("2006-01-02")
		resp.PeriodEnd = &end
	}
	return resp
}

func toSettingsResponse(s payroll.Settings) payroll.SettingsResponse {
	return payroll.SettingsResponse{
		CompanyID:       s.CompanyID,
		PFRateEmployee:  s.PFRateEmployee,
		PFRateEmployer:  s.PFRateEmployer,
		ProfessionalTax: s.ProfessionalTax,
	}
}
