package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/cadencehr/payroll-backend-go/internal/domain/audit"
	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/domain/user"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	salaryRepo salary.SalaryRepository
	userRepo   user.UserRepository
	auditRepo  audit.AuditRepository
	transactor database.Transactor
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	userRepo user.UserRepository,
	auditRepo audit.AuditRepository,
	transactor database.Transactor,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo: salaryRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		transactor: transactor,
	}
}

// UpsertStructure replaces the employee's active salary structure. The old
// structure is deactivated, never deleted, so existing payslips keep their
// historical basis.
func (s *SalaryServiceImpl) UpsertStructure(ctx context.Context, req salary.UpsertStructureRequest, actorID, companyID string) (salary.UpsertStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.UpsertStructureResponse{}, err
	}

	role, err := s.userRepo.GetRole(ctx, actorID, companyID)
	if err != nil {
		return salary.UpsertStructureResponse{}, err
	}
	if !role.CanRunPayroll() {
		return salary.UpsertStructureResponse{}, user.ErrPayrollAccessRequired
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)

	workingDays := 5
	if req.WorkingDaysPerWeek != nil {
		workingDays = *req.WorkingDaysPerWeek
	}
	breakTime := decimal.NewFromInt(1)
	if req.BreakTimeHours != nil {
		breakTime = *req.BreakTimeHours
	}

	structure := salary.Structure{
		EmployeeID:         req.EmployeeID,
		MonthlyWage:        req.MonthlyWage,
		YearlyWage:         req.YearlyWage,
		WorkingDaysPerWeek: workingDays,
		BreakTimeHours:     breakTime,
		EffectiveFrom:      effectiveFrom,
		IsActive:           true,
	}

	components := make([]salary.Component, 0, len(req.Components))
	for _, c := range req.Components {
		components = append(components, salary.Component{
			Name:    c.Name,
			Type:    salary.ComponentType(c.Type),
			Kind:    salary.CalculationKind(c.Kind),
			Value:   c.Value,
			IsBasic: c.IsBasic,
		})
	}

	var structureID string
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		id, err := s.salaryRepo.CreateStructure(ctx, structure, components)
		if err != nil {
			return err
		}
		structureID = id

		return s.auditRepo.Record(ctx, audit.Entry{
			ActorID:     actorID,
			CompanyID:   companyID,
			Action:      audit.ActionSalaryStructureCreated,
			Description: fmt.Sprintf("Created salary structure for employee %s", req.EmployeeID),
			Module:      audit.ModulePayroll,
		})
	})
	if err != nil {
		return salary.UpsertStructureResponse{}, err
	}

	return salary.UpsertStructureResponse{StructureID: structureID}, nil
}

func (s *SalaryServiceImpl) GetStructure(ctx context.Context, employeeID, actorID, companyID string) (salary.StructureResponse, error) {
	// Employees may view their own structure; anyone else's requires payroll
	// access.
	if actorID != employeeID {
		role, err := s.userRepo.GetRole(ctx, actorID, companyID)
		if err != nil {
			return salary.StructureResponse{}, err
		}
		if !role.CanRunPayroll() {
			return salary.StructureResponse{}, user.ErrPayrollAccessRequired
		}
	}

	structure, err := s.salaryRepo.GetActiveByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	components, err := s.salaryRepo.GetComponents(ctx, structure.ID)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	return toStructureResponse(structure, components), nil
}

func (s *SalaryServiceImpl) ListStructures(ctx context.Context, companyID string) ([]salary.StructureResponse, error) {
	structures, err := s.salaryRepo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]salary.StructureResponse, 0, len(structures))
	for _, st := range structures {
		components, err := s.salaryRepo.GetComponents(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toStructureResponse(st, components))
	}
	return responses, nil
}

func toStructureResponse(st salary.Structure, components []salary.Component) salary.StructureResponse {
	componentResponses := make([]salary.ComponentResponse, 0, len(components))
	for _, c := range components {
		componentResponses = append(componentResponses, salary.ComponentResponse{
			ID:      c.ID,
			Name:    c.Name,
			Type:    string(c.Type),
			Kind:    string(c.Kind),
			Value:   c.Value,
			IsBasic: c.IsBasic,
		})
	}

	return salary.StructureResponse{
		ID:                 st.ID,
		EmployeeID:         st.EmployeeID,
		EmployeeName:       st.EmployeeName,
		EmployeeEmail:      st.EmployeeEmail,
		MonthlyWage:        st.MonthlyWage,
		YearlyWage:         st.YearlyWage,
		WorkingDaysPerWeek: st.WorkingDaysPerWeek,
		BreakTimeHours:     st.BreakTimeHours,
		EffectiveFrom:      st.EffectiveFrom.Format("2006-01-02"),
		IsActive:           st.IsActive,
		Components:         componentResponses,
	}
}
