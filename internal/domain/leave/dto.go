package leave

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID            string                `json:"-"`
	LeaveTypeID           string                `json:"leave_type_id"`
	DateFrom              string                `json:"date_from"`
	DateTo                string                `json:"date_to"`
	RequestUnitHours      bool                  `json:"request_unit_hours"`
	HourFrom              *float64              `json:"hour_from,omitempty"`
	HourTo                *float64              `json:"hour_to,omitempty"`
	ReplacementEmployeeID *string               `json:"replacement_employee_id,omitempty"`
	Reason                *string               `json:"reason,omitempty"`
	AttachmentURL         *string               `json:"-"`
	File                  multipart.File        `json:"-"`
	FileHeader            *multipart.FileHeader `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
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

	if r.RequestUnitHours {
		if r.HourFrom == nil || r.HourTo == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "hour_from",
				Message: "hour_from and hour_to are required for hourly requests",
			})
		} else if *r.HourTo <= *r.HourFrom {
			errs = append(errs, validator.ValidationError{
				Field:   "hour_to",
				Message: "hour_to must be after hour_from",
			})
		}
	}

	if r.FileHeader != nil {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".pdf" {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png, pdf allowed",
			})
		} else if r.FileHeader.Size > 10<<20 {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "file size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	EmployeeID string
	Search     string
	State      string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type LeaveResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name,omitempty"`
	LeaveTypeID   string   `json:"leave_type_id"`
	LeaveTypeName string   `json:"leave_type_name,omitempty"`
	DateFrom      string   `json:"date_from"`
	DateTo        string   `json:"date_to"`
	HourFrom      *float64 `json:"hour_from,omitempty"`
	HourTo        *float64 `json:"hour_to,omitempty"`
	NumberOfDays  float64  `json:"number_of_days"`
	State         string   `json:"state"`
	Reason        *string  `json:"reason,omitempty"`
	AttachmentURL *string  `json:"attachment_url,omitempty"`
}

type ListLeaveResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
	Total  int64           `json:"total"`
}

type BalanceResponse struct {
	LeaveTypeID      string  `json:"leave_type_id"`
	LeaveTypeName    string  `json:"leave_type_name"`
	Unlimited        bool    `json:"unlimited"`
	MaxLeaves        float64 `json:"max_leaves"`
	LeavesTaken      float64 `json:"leaves_taken"`
	VirtualRemaining float64 `json:"virtual_remaining"`
}

type AllocationResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	NumberOfDays    float64 `json:"number_of_days"`
	CarriedOverDays float64 `json:"carried_over_days"`
	LiquidatedDays  float64 `json:"liquidated_days"`
	LeavesTaken     float64 `json:"leaves_taken"`
	DateFrom        string  `json:"date_from"`
	DateTo          string  `json:"date_to"`
	LiquidationDate string  `json:"liquidation_date"`
	State           string  `json:"state"`
}

type GenerateAllocationsRequest struct {
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

type BulkLiquidationResult struct {
	Liquidated int                    `json:"liquidated"`
	Skipped    int                    `json:"skipped"`
	Errors     []BulkLiquidationError `json:"errors,omitempty"`
}

type BulkLiquidationError struct {
	AllocationID string `json:"allocation_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Message      string `json:"message"`
}

func ToLeaveResponse(r Request) LeaveResponse {
	resp := LeaveResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		LeaveTypeID:   r.LeaveTypeID,
		DateFrom:      r.DateFrom.Format("2006-01-02"),
		DateTo:        r.DateTo.Format("2006-01-02"),
		HourFrom:      r.HourFrom,
		HourTo:        r.HourTo,
		NumberOfDays:  r.NumberOfDays,
		State:         string(r.State),
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.LeaveTypeName != nil {
		resp.LeaveTypeName = *r.LeaveTypeName
	}
	return resp
}

func ToAllocationResponse(a Allocation) AllocationResponse {
	resp := AllocationResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		LeaveTypeID:     a.LeaveTypeID,
		NumberOfDays:    a.NumberOfDays,
		CarriedOverDays: a.CarriedOverDays,
		LiquidatedDays:  a.LiquidatedDays,
		LeavesTaken:     a.LeavesTaken,
		DateFrom:        a.DateFrom.Format("2006-01-02"),
		DateTo:          a.DateTo.Format("2006-01-02"),
		LiquidationDate: a.LiquidationDate.Format("2006-01-02"),
		State:           string(a.State),
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	return resp
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		LeaveTypeID:      b.LeaveTypeID,
		LeaveTypeName:    b.LeaveTypeName,
		Unlimited:        b.Unlimited,
		MaxLeaves:        b.MaxLeaves,
		LeavesTaken:      b.LeavesTaken,
		VirtualRemaining: b.VirtualRemaining,
	}
}
