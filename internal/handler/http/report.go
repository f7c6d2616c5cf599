package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/report"
	"github.com/nominapy/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	IPSText(w http.ResponseWriter, r *http.Request)
	BankTransferText(w http.ResponseWriter, r *http.Request)
	PayslipPivot(w http.ResponseWriter, r *http.Request)
	MonthlyGrid(w http.ResponseWriter, r *http.Request)
	AnnualSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) serveExport(w http.ResponseWriter, export report.Export, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, export.Filename, export.ContentType, export.Content)
}

// IPSText implements ReportHandler.
func (h *reportHandlerImpl) IPSText(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	export, err := h.reportService.IPSText(r.Context(), runID)
	h.serveExport(w, export, err)
}

// BankTransferText implements ReportHandler.
func (h *reportHandlerImpl) BankTransferText(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	export, err := h.reportService.BankTransferText(r.Context(), runID)
	h.serveExport(w, export, err)
}

// PayslipPivot implements ReportHandler.
func (h *reportHandlerImpl) PayslipPivot(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	export, err := h.reportService.PayslipPivot(r.Context(), runID)
	h.serveExport(w, export, err)
}

// MonthlyGrid implements ReportHandler.
func (h *reportHandlerImpl) MonthlyGrid(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	export, err := h.reportService.MonthlyGrid(r.Context(), runID)
	h.serveExport(w, export, err)
}

// AnnualSummary implements ReportHandler.
func (h *reportHandlerImpl) AnnualSummary(w http.ResponseWriter, r *http.Request) {
	var req report.AnnualSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	export, err := h.reportService.AnnualSummary(r.Context(), req)
	h.serveExport(w, export, err)
}
