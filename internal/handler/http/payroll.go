package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ComputePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	GetWorkedDays(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	CreateRun(w http.ResponseWriter, r *http.Request)
	ComputeRun(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payslipService payroll.PayslipService
}

func NewPayrollHandler(payslipService payroll.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{
		payslipService: payslipService,
	}
}

// ComputePayslip implements PayrollHandler.
func (h *payrollHandlerImpl) ComputePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payslipService.ComputePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip computed", result)
}

// GetPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payslipService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWorkedDays implements PayrollHandler.
func (h *payrollHandlerImpl) GetWorkedDays(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payslipService.GetWorkedDays(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayslipFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		RunID:      r.URL.Query().Get("run_id"),
		State:      r.URL.Query().Get("state"),
	}

	if v := r.URL.Query().Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &t
		}
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	payslips, total, err := h.payslipService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	response.SuccessWithMeta(w, payslips, &response.Meta{
		Page:       filter.Page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// CreateRun implements PayrollHandler.
func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payslipService.CreateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip run created", result)
}

// ComputeRun implements PayrollHandler.
func (h *payrollHandlerImpl) ComputeRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payslipService.ComputeRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip run computed", result)
}
