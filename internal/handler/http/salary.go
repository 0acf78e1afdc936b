package http

import (
	"encoding/json"
	"net/http"

	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	UpsertStructure(w http.ResponseWriter, r *http.Request)
	GetStructure(w http.ResponseWriter, r *http.Request)
	ListStructures(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) UpsertStructure(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req salary.UpsertStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	employeeID, err := uuidParam(r, "employeeId")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.salaryService.UpsertStructure(r.Context(), req, userID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary structure created", result)
}

func (h *salaryHandlerImpl) GetStructure(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID, err := uuidParam(r, "employeeId")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.salaryService.GetStructure(r.Context(), employeeID, userID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListStructures(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.salaryService.ListStructures(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
