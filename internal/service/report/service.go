package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/report"
)

// ReportServiceImpl assembles statutory exports from computed payslip data.
// It has no storage of its own: every export is a pure rendering over the
// payroll, employee and company repositories.
type ReportServiceImpl struct {
	payslips    payroll.PayslipRepository
	workEntries payroll.WorkEntryRepository
	employees   employee.EmployeeRepository
	companies   company.CompanyRepository
}

func NewReportService(
	payslips payroll.PayslipRepository,
	workEntries payroll.WorkEntryRepository,
	employees employee.EmployeeRepository,
	companies company.CompanyRepository,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		payslips:    payslips,
		workEntries: workEntries,
		employees:   employees,
		companies:   companies,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// runRows loads a run's slips with their worked-day lines and employees.
func (s *ReportServiceImpl) runRows(ctx context.Context, runID, companyID string, withEntries bool) (payroll.PayslipRun, []slipExportRow, error) {
	run, err := s.payslips.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.PayslipRun{}, nil, err
	}

	slips, err := s.payslips.ListPayslipsByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.PayslipRun{}, nil, err
	}
	if len(slips) == 0 {
		return payroll.PayslipRun{}, nil, report.ErrNoPayslips
	}

	rows := make([]slipExportRow, 0, len(slips))
	for _, slip := range slips {
		emp, err := s.employees.GetByID(ctx, slip.EmployeeID, companyID)
		if err != nil {
			return payroll.PayslipRun{}, nil, fmt.Errorf("failed to load employee for payslip %s: %w", slip.Number, err)
		}

		lines, err := s.payslips.GetWorkedDays(ctx, slip.ID, companyID)
		if err != nil {
			return payroll.PayslipRun{}, nil, fmt.Errorf("failed to load worked days for payslip %s: %w", slip.Number, err)
		}

		row := slipExportRow{Employee: emp, Slip: slip, Lines: lines}
		if withEntries {
			entries, err := s.workEntries.ListOverlapping(ctx, slip.ContractID, slip.DateFrom, slip.DateTo, companyID)
			if err != nil {
				return payroll.PayslipRun{}, nil, fmt.Errorf("failed to load work entries for payslip %s: %w", slip.Number, err)
			}
			row.Entries = entries
		}
		rows = append(rows, row)
	}

	return run, rows, nil
}

func (s *ReportServiceImpl) IPSText(ctx context.Context, runID string) (report.Export, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return report.Export{}, err
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return report.Export{}, err
	}
	ipsNumber, mtessNumber, err := employerNumbers(comp)
	if err != nil {
		return report.Export{}, err
	}

	run, rows, err := s.runRows(ctx, runID, companyID, false)
	if err != nil {
		return report.Export{}, err
	}

	var b strings.Builder
	for _, r := range rows {
		line, err := ipsLine(ipsNumber, mtessNumber, r.Employee, r.Slip)
		if err != nil {
			return report.Export{}, err
		}
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	return report.Export{
		Filename:    fmt.Sprintf("ips_%02d%04d.txt", run.DateTo.Month(), run.DateTo.Year()),
		ContentType: "text/plain",
		Content:     []byte(b.String()),
	}, nil
}

func (s *ReportServiceImpl) BankTransferText(ctx context.Context, runID string) (report.Export, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return report.Export{}, err
	}

	run, rows, err := s.runRows(ctx, runID, companyID, false)
	if err != nil {
		return report.Export{}, err
	}

	var b strings.Builder
	for _, r := range rows {
		line, err := bankTransferLine(r.Employee, r.Slip, run.DateTo)
		if err != nil {
			return report.Export{}, err
		}
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	return report.Export{
		Filename:    "txt_banco.txt",
		ContentType: "text/plain",
		Content:     []byte(b.String()),
	}, nil
}

func (s *ReportServiceImpl) PayslipPivot(ctx context.Context, runID string) (report.Export, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return report.Export{}, err
	}

	run, rows, err := s.runRows(ctx, runID, companyID, false)
	if err != nil {
		return report.Export{}, err
	}

	content, err := buildPivotCSV(rows)
	if err != nil {
		return report.Export{}, err
	}

	return report.Export{
		Filename:    fmt.Sprintf("nominas_%02d%04d.csv", run.DateTo.Month(), run.DateTo.Year()),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) MonthlyGrid(ctx context.Context, runID string) (report.Export, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return report.Export{}, err
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return report.Export{}, err
	}

	run, rows, err := s.runRows(ctx, runID, companyID, true)
	if err != nil {
		return report.Export{}, err
	}

	content, err := buildMonthlyGridCSV(comp, run.DateFrom, run.DateTo, rows)
	if err != nil {
		return report.Export{}, err
	}

	return report.Export{
		Filename:    fmt.Sprintf("planilla_%02d%04d.csv", run.DateTo.Month(), run.DateTo.Year()),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) AnnualSummary(ctx context.Context, req report.AnnualSummaryRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return report.Export{}, err
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return report.Export{}, err
	}
	ipsNumber, _, err := employerNumbers(comp)
	if err != nil {
		return report.Export{}, err
	}

	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(req.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	filter := payroll.PayslipFilter{
		DateFrom: &from,
		DateTo:   &to,
		Limit:    10000,
	}
	slips, _, err := s.payslips.ListPayslips(ctx, filter, companyID)
	if err != nil {
		return report.Export{}, err
	}
	if len(slips) == 0 {
		return report.Export{}, report.ErrNoPayslips
	}

	rows := make([]slipExportRow, 0, len(slips))
	for _, slip := range slips {
		emp, err := s.employees.GetByID(ctx, slip.EmployeeID, companyID)
		if err != nil {
			return report.Export{}, fmt.Errorf("failed to load employee for payslip %s: %w", slip.Number, err)
		}
		lines, err := s.payslips.GetWorkedDays(ctx, slip.ID, companyID)
		if err != nil {
			return report.Export{}, fmt.Errorf("failed to load worked days for payslip %s: %w", slip.Number, err)
		}
		rows = append(rows, slipExportRow{Employee: emp, Slip: slip, Lines: lines})
	}

	content, err := buildAnnualSummaryCSV(ipsNumber, req.Year, rows)
	if err != nil {
		return report.Export{}, err
	}

	return report.Export{
		Filename:    fmt.Sprintf("resumen_anual_%d.csv", req.Year),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}
