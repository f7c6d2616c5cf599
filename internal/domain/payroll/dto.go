package payroll

import (
	"time"

	"github.com/nominapy/payroll-backend-go/internal/pkg/validator"
)

type ComputePayslipRequest struct {
	EmployeeID string `json:"employee_id"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	RunID      string `json:"run_id,omitempty"`
}

func (r *ComputePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, err := time.Parse("2006-01-02", r.DateFrom); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}

	if _, err := time.Parse("2006-01-02", r.DateTo); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateRunRequest struct {
	Name     string `json:"name"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	from, errFrom := time.Parse("2006-01-02", r.DateFrom)
	if errFrom != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}

	to, errTo := time.Parse("2006-01-02", r.DateTo)
	if errTo != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be a valid date (YYYY-MM-DD)",
		})
	}

	if errFrom == nil && errTo == nil && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipFilter struct {
	EmployeeID string
	RunID      string
	State      string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type WorkedDayLineResponse struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	NumberOfDays  float64 `json:"number_of_days"`
	NumberOfHours float64 `json:"number_of_hours"`
	Amount        string  `json:"amount"`
}

type PayslipResponse struct {
	ID           string                  `json:"id"`
	Number       string                  `json:"number"`
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name,omitempty"`
	DateFrom     string                  `json:"date_from"`
	DateTo       string                  `json:"date_to"`
	State        string                  `json:"state"`
	Gross        string                  `json:"gross"`
	Net          string                  `json:"net"`
	WorkedDays   []WorkedDayLineResponse `json:"worked_days,omitempty"`
}

type PayslipRunResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	State    string `json:"state"`
}

func ToPayslipResponse(slip Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:         slip.ID,
		Number:     slip.Number,
		EmployeeID: slip.EmployeeID,
		DateFrom:   slip.DateFrom.Format("2006-01-02"),
		DateTo:     slip.DateTo.Format("2006-01-02"),
		State:      string(slip.State),
		Gross:      slip.Gross.StringFixed(0),
		Net:        slip.Net.StringFixed(0),
	}
	if slip.EmployeeName != nil {
		resp.EmployeeName = *slip.EmployeeName
	}
	for _, line := range slip.WorkedDays {
		resp.WorkedDays = append(resp.WorkedDays, ToWorkedDayLineResponse(line))
	}
	return resp
}

func ToWorkedDayLineResponse(line WorkedDayLine) WorkedDayLineResponse {
	return WorkedDayLineResponse{
		Code:          line.Code,
		Name:          line.Name,
		Category:      line.Category.String(),
		NumberOfDays:  line.NumberOfDays,
		NumberOfHours: line.NumberOfHours,
		Amount:        line.Amount.StringFixed(0),
	}
}

func ToPayslipRunResponse(run PayslipRun) PayslipRunResponse {
	return PayslipRunResponse{
		ID:       run.ID,
		Name:     run.Name,
		DateFrom: run.DateFrom.Format("2006-01-02"),
		DateTo:   run.DateTo.Format("2006-01-02"),
		State:    string(run.State),
	}
}
