package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// slipExportRow bundles everything the exports need for one payslip.
type slipExportRow struct {
	Employee employee.Employee
	Slip     payroll.Payslip
	Lines    []payroll.WorkedDayLine
	Entries  []payroll.WorkEntry
}

func (r slipExportRow) line(code string) (payroll.WorkedDayLine, bool) {
	for _, l := range r.Lines {
		if l.Code == code {
			return l, true
		}
	}
	return payroll.WorkedDayLine{}, false
}

func (r slipExportRow) amount(code string) decimal.Decimal {
	if l, ok := r.line(code); ok {
		return l.Amount
	}
	return decimal.Zero
}

func (r slipExportRow) hours(code string) float64 {
	if l, ok := r.line(code); ok {
		return l.NumberOfHours
	}
	return 0
}

func formatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func formatQty(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// buildPivotCSV renders one row per slip with a value/amount column pair per
// worked-day concept, concepts ordered by sequence across the whole run.
func buildPivotCSV(rows []slipExportRow) ([]byte, error) {
	type concept struct {
		Code     string
		Name     string
		Sequence int
	}
	seen := map[string]concept{}
	for _, r := range rows {
		for _, l := range r.Lines {
			if _, ok := seen[l.Code]; !ok {
				seen[l.Code] = concept{Code: l.Code, Name: l.Name, Sequence: l.Sequence}
			}
		}
	}
	concepts := make([]concept, 0, len(seen))
	for _, c := range seen {
		concepts = append(concepts, c)
	}
	sort.Slice(concepts, func(i, j int) bool {
		if concepts[i].Sequence != concepts[j].Sequence {
			return concepts[i].Sequence < concepts[j].Sequence
		}
		return concepts[i].Code < concepts[j].Code
	})

	header := []string{"Empleado", "N° Recibo", "Fecha Desde", "Fecha Hasta"}
	for _, c := range concepts {
		header = append(header, c.Name+" (Valor)", c.Name+" (Monto)")
	}
	header = append(header, "Total Neto", "Estado")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.Employee.FullName(),
			r.Slip.Number,
			r.Slip.DateFrom.Format("2006-01-02"),
			r.Slip.DateTo.Format("2006-01-02"),
		}
		for _, c := range concepts {
			l, ok := r.line(c.Code)
			if !ok {
				record = append(record, "", "")
				continue
			}
			value := l.NumberOfDays
			if value == 0 {
				value = l.NumberOfHours
			}
			record = append(record, formatQty(value), formatAmount(l.Amount))
		}
		record = append(record, r.Slip.Net.StringFixed(2), string(r.Slip.State))
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// dayCode classifies one calendar day of an employee for the monthly
// planilla: 8 worked, V paid leave, P unpaid leave, D Sunday, blank absent.
func dayCode(entries []payroll.WorkEntry, day time.Time) string {
	for _, e := range entries {
		if e.DateStart.Year() != day.Year() || e.DateStart.YearDay() != day.YearDay() {
			continue
		}
		if e.TypeCategory == nil {
			continue
		}
		switch *e.TypeCategory {
		case payroll.CategoryPaidLeave:
			return "V"
		case payroll.CategoryUnpaidLeave:
			return "P"
		case payroll.CategoryAttendance:
			return "8"
		}
	}
	if day.Weekday() == time.Sunday {
		return "D"
	}
	return ""
}

// buildMonthlyGridCSV renders the monthly planilla: company header, one
// column per calendar day, then the salary, overtime and benefit blocks.
func buildMonthlyGridCSV(comp company.Company, dateFrom, dateTo time.Time, rows []slipExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	ruc := ""
	if comp.RUC != nil {
		ruc = *comp.RUC
	}
	preamble := [][]string{
		{"Razon Social: " + comp.Name, "RUC: " + ruc},
		{"Año: " + strconv.Itoa(dateFrom.Year()), "Mes: " + dateFrom.Format("January")},
	}
	for _, row := range preamble {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	daysInMonth := dateTo.Day()
	header := []string{"Nro. Orden", "C.I.", "Apellidos y Nombre"}
	for d := 1; d <= daysInMonth; d++ {
		header = append(header, strconv.Itoa(d))
	}
	header = append(header,
		"Forma pago", "Importe Unitario", "Días Trab.", "Hora Trab.", "Importe",
		"Cant. 50%", "Cant. 100%", "Cant. 130%",
		"Imp. 50%", "Imp. 100%", "Imp. 130%",
		"Vacación", "Aguinaldo", "Otros", "Total",
	)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for idx, r := range rows {
		nationalID := ""
		if r.Employee.NationalID != nil {
			nationalID = *r.Employee.NationalID
		}
		record := []string{strconv.Itoa(idx + 1), nationalID, r.Employee.FullName()}

		for d := 1; d <= daysInMonth; d++ {
			day := time.Date(dateFrom.Year(), dateFrom.Month(), d, 0, 0, 0, 0, time.UTC)
			record = append(record, dayCode(r.Entries, day))
		}

		workedDays := 0.0
		if l, ok := r.line(payroll.CodeWork100); ok {
			workedDays = l.NumberOfDays
		}

		dailyRate := decimal.Zero
		if workedDays > 0 {
			dailyRate = r.amount(payroll.CodeWork100).Div(decimal.NewFromFloat(workedDays))
		}

		vacationAmount := decimal.Zero
		otherAmount := decimal.Zero
		for _, l := range r.Lines {
			if l.Category == payroll.CategoryPaidLeave {
				vacationAmount = vacationAmount.Add(l.Amount)
			}
			if l.Category == payroll.CategoryNightSurcharge || l.Category == payroll.CategoryGuardDay || l.Category == payroll.CategoryGuardNight {
				otherAmount = otherAmount.Add(l.Amount)
			}
		}

		record = append(record,
			"M",
			formatAmount(dailyRate),
			formatQty(workedDays),
			formatQty(workedDays*8),
			formatAmount(r.amount(payroll.CodeWork100)),
			formatQty(r.hours(payroll.CodeOvertimeDay)),
			formatQty(r.hours(payroll.CodeOvertimeNight)),
			"",
			formatAmount(r.amount(payroll.CodeOvertimeDay)),
			formatAmount(r.amount(payroll.CodeOvertimeNight)),
			"",
			formatAmount(vacationAmount),
			"",
			formatAmount(otherAmount),
			r.Slip.Net.StringFixed(2),
		)
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// summaryBucket indexes the annual summary columns: job category × gender.
func summaryBucket(emp employee.Employee) string {
	boss := emp.JobCategory == employee.JobCategoryChief || emp.JobCategory == employee.JobCategorySubChief
	female := emp.Gender == employee.GenderFemale
	switch {
	case boss && female:
		return "SUBJEFES MUJERES"
	case boss:
		return "SUBJEFES VARONES"
	case female:
		return "EMPLEADOS MUJERES"
	default:
		return "EMPLEADOS VARONES"
	}
}

var summaryColumns = []string{
	"SUBJEFES VARONES", "SUBJEFES MUJERES",
	"EMPLEADOS VARONES", "EMPLEADOS MUJERES",
}

// buildAnnualSummaryCSV renders the occupied-persons summary: one row per
// metric, one column per category/gender bucket.
func buildAnnualSummaryCSV(ipsNumber string, year int, rows []slipExportRow) ([]byte, error) {
	type bucket struct {
		People  map[string]bool
		Hours   float64
		Paid    decimal.Decimal
		Entries int
	}
	buckets := map[string]*bucket{}
	for _, col := range summaryColumns {
		buckets[col] = &bucket{People: map[string]bool{}, Paid: decimal.Zero}
	}

	for _, r := range rows {
		b := buckets[summaryBucket(r.Employee)]
		if !b.People[r.Employee.ID] {
			b.People[r.Employee.ID] = true
			if r.Employee.HireDate.Year() == year {
				b.Entries++
			}
		}
		if l, ok := r.line(payroll.CodeWork100); ok {
			b.Hours += l.NumberOfDays * 8
		}
		b.Paid = b.Paid.Add(r.Slip.Net)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"NRO_PATRONAL", "ANHO",
		"SUBJEFESVARONES", "SUBJEFESMUJERES",
		"EMPLEADOSVARONES", "EMPLEADOSMUJERES",
		"ORDEN", "DESCRIPCION"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	metrics := []struct {
		Order int
		Desc  string
		Value func(*bucket) string
	}{
		{1, "Cantidad de personas", func(b *bucket) string { return strconv.Itoa(len(b.People)) }},
		{2, "Cantidad horas trabajadas", func(b *bucket) string { return formatQty(b.Hours) }},
		{3, "Cantidad monetaria pagada", func(b *bucket) string { return formatAmount(b.Paid) }},
		{4, "Cantidad de personas ingresadas", func(b *bucket) string { return strconv.Itoa(b.Entries) }},
		{5, "Cantidad de salidas de personas", func(b *bucket) string { return "0" }},
	}

	for _, m := range metrics {
		record := []string{ipsNumber, strconv.Itoa(year)}
		for _, col := range summaryColumns {
			record = append(record, m.Value(buckets[col]))
		}
		record = append(record, strconv.Itoa(m.Order), m.Desc)
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
