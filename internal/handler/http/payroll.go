package http

import (
	"encoding/json"
	"net/http"

	"github.com/cadencehr/payroll-backend-go/internal/domain/payroll"
	"github.com/cadencehr/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Payruns
	CreatePayrun(w http.ResponseWriter, r *http.Request)
	ListPayruns(w http.ResponseWriter, r *http.Request)
	ComputePayroll(w http.ResponseWriter, r *http.Request)
	ValidatePayrun(w http.ResponseWriter, r *http.Request)

	// Payslips
	GetPayrunPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	GetEmployeePayslips(w http.ResponseWriter, r *http.Request)

	// Settings
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PAYRUNS ==========

func (h *payrollHandlerImpl) CreatePayrun(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CreatePayrunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayrun(r.Context(), req, userID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payrun created", result)
}

func (h *payrollHandlerImpl) ListPayruns(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.payrollService.ListPayruns(r.Context(), companyID, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ComputePayroll(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	payrunID, err := uuidParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.ComputePayroll(r.Context(), payrunID, userID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll computed", result)
}

func (h *payrollHandlerImpl) ValidatePayrun(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	payrunID, err := uuidParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	if err := h.payrollService.ValidatePayrun(r.Context(), payrunID, userID, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payrun validated", nil)
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) GetPayrunPayslips(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	payrunID, err := uuidParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.GetPayslipsForPayrun(r.Context(), payrunID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	payslipID, err := uuidParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.GetPayslipDetail(r.Context(), payslipID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetEmployeePayslips(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.payrollService.GetPayslipsForEmployee(r.Context(), employeeID, userID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SETTINGS ==========

func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.payrollService.GetSettings(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateSettings(r.Context(), req, userID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll settings updated", result)
}
