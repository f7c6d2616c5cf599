package report

import "context"

// ReportService generates the statutory exports off a computed payslip run.
type ReportService interface {
	// IPSText renders the fixed-width IPS declaration file.
	IPSText(ctx context.Context, runID string) (Export, error)

	// BankTransferText renders the salary credit file for the bank.
	BankTransferText(ctx context.Context, runID string) (Export, error)

	// PayslipPivot renders one row per slip with a column pair per concept.
	PayslipPivot(ctx context.Context, runID string) (Export, error)

	// MonthlyGrid renders the monthly planilla: one column per calendar day
	// plus salary, overtime and benefit blocks.
	MonthlyGrid(ctx context.Context, runID string) (Export, error)

	// AnnualSummary renders the occupied-persons summary by job category
	// and gender for one year.
	AnnualSummary(ctx context.Context, req AnnualSummaryRequest) (Export, error)
}
