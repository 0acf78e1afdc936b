package salary

import "context"

type SalaryService interface {
	UpsertStructure(ctx context.Context, req UpsertStructureRequest, actorID, companyID string) (UpsertStructureResponse, error)
	GetStructure(ctx context.Context, employeeID, actorID, companyID string) (StructureResponse, error)
	ListStructures(ctx context.Context, companyID string) ([]StructureResponse, error)
}
