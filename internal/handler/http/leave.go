package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Refuse(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	GenerateAllocations(w http.ResponseWriter, r *http.Request)
	ListAllocations(w http.ResponseWriter, r *http.Request)
	Liquidate(w http.ResponseWriter, r *http.Request)
	LiquidateAll(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	requestService    leave.RequestService
	allocationService leave.AllocationService
}

func NewLeaveHandler(requestService leave.RequestService, allocationService leave.AllocationService) LeaveHandler {
	return &leaveHandlerImpl{
		requestService:    requestService,
		allocationService: allocationService,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get JSON data from 'data' field
	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Attachment is optional
	file, fileHeader, err := r.FormFile("attachment")
	if err == nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	if req.EmployeeID == "" {
		req.EmployeeID = employeeIDFromRequest(r)
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.requestService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Refuse implements LeaveHandler.
func (h *leaveHandlerImpl) Refuse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.requestService.Refuse(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request refused", result)
}

// History implements LeaveHandler.
func (h *leaveHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := leave.HistoryFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Search:     r.URL.Query().Get("search"),
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

	result, err := h.requestService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Balance implements LeaveHandler.
func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = employeeIDFromRequest(r)
	}

	result, err := h.requestService.Balance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateAllocations implements LeaveHandler.
func (h *leaveHandlerImpl) GenerateAllocations(w http.ResponseWriter, r *http.Request) {
	var req leave.GenerateAllocationsRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.allocationService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allocations generated", result)
}

// ListAllocations implements LeaveHandler.
func (h *leaveHandlerImpl) ListAllocations(w http.ResponseWriter, r *http.Request) {
	result, err := h.allocationService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Liquidate implements LeaveHandler.
func (h *leaveHandlerImpl) Liquidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.allocationService.Liquidate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allocation liquidated", result)
}

// LiquidateAll implements LeaveHandler.
func (h *leaveHandlerImpl) LiquidateAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.allocationService.LiquidateAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Liquidation pass completed", result)
}
