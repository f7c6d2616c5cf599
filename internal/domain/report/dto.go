package report

import (
	"fmt"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/pkg/validator"
)

// Export is a generated file ready to stream to the client.
type Export struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

type AnnualSummaryRequest struct {
	Year int `json:"year"`
}

func (r *AnnualSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
