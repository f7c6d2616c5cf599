package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSV(t *testing.T, content []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func catPtr(c payroll.Category) *payroll.Category { return &c }

func exportRow() slipExportRow {
	return slipExportRow{
		Employee: exportEmployee(),
		Slip:     exportSlip(),
		Lines: []payroll.WorkedDayLine{
			{
				Code: payroll.CodeWork100, Name: "Attendance", Category: payroll.CategoryAttendance,
				Sequence: 10, NumberOfDays: 28, NumberOfHours: 224,
				Amount: decimal.NewFromInt(2333333),
			},
			{
				Code: payroll.CodeOvertimeDay, Name: "Overtime (day)", Category: payroll.CategoryOvertimeDay,
				Sequence: 20, NumberOfHours: 4,
				Amount: decimal.NewFromInt(62500),
			},
			{
				Code: payroll.CodeLate, Name: "Late arrival", Category: payroll.CategoryLate,
				Sequence: 70, NumberOfHours: 1.5,
				Amount: decimal.NewFromInt(-15625),
			},
		},
	}
}

func TestBuildPivotCSVHeaderOrderedBySequence(t *testing.T) {
	content, err := buildPivotCSV([]slipExportRow{exportRow()})
	require.NoError(t, err)

	records := parseCSV(t, content)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Empleado", "N° Recibo", "Fecha Desde", "Fecha Hasta",
		"Attendance (Valor)", "Attendance (Monto)",
		"Overtime (day) (Valor)", "Overtime (day) (Monto)",
		"Late arrival (Valor)", "Late arrival (Monto)",
		"Total Neto", "Estado",
	}, records[0])
}

func TestBuildPivotCSVRow(t *testing.T) {
	content, err := buildPivotCSV([]slipExportRow{exportRow()})
	require.NoError(t, err)

	row := parseCSV(t, content)[1]
	assert.Equal(t, "Juan González", row[0])
	assert.Equal(t, "SLIP/2025/0042", row[1])
	assert.Equal(t, "2025-06-01", row[2])
	assert.Equal(t, "2025-06-30", row[3])
	// Day-based concept reports days, hour-based concepts fall back to hours.
	assert.Equal(t, "28", row[4])
	assert.Equal(t, "2333333.00", row[5])
	assert.Equal(t, "4", row[6])
	assert.Equal(t, "62500.00", row[7])
	assert.Equal(t, "1.5", row[8])
	assert.Equal(t, "-15625.00", row[9])
	assert.Equal(t, "2350000.00", row[10])
	assert.Equal(t, "done", row[11])
}

func TestBuildPivotCSVFillsMissingConcepts(t *testing.T) {
	full := exportRow()
	sparse := exportRow()
	sparse.Slip.Number = "SLIP/2025/0043"
	sparse.Lines = sparse.Lines[:1]

	content, err := buildPivotCSV([]slipExportRow{full, sparse})
	require.NoError(t, err)

	records := parseCSV(t, content)
	require.Len(t, records, 3)
	assert.Equal(t, "", records[2][6])
	assert.Equal(t, "", records[2][7])
}

func TestDayCode(t *testing.T) {
	entries := []payroll.WorkEntry{
		{
			DateStart:    time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),
			TypeCategory: catPtr(payroll.CategoryAttendance),
		},
		{
			DateStart:    time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
			TypeCategory: catPtr(payroll.CategoryPaidLeave),
		},
		{
			DateStart:    time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
			TypeCategory: catPtr(payroll.CategoryUnpaidLeave),
		},
	}

	day := func(d int) time.Time {
		return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, "8", dayCode(entries, day(2)))
	assert.Equal(t, "V", dayCode(entries, day(3)))
	assert.Equal(t, "P", dayCode(entries, day(4)))
	// 2025-06-08 is a Sunday without entries.
	assert.Equal(t, "D", dayCode(entries, day(8)))
	assert.Equal(t, "", dayCode(entries, day(5)))
}

func TestBuildMonthlyGridCSV(t *testing.T) {
	comp := company.Company{
		Name: "Acme Paraguay S.A.",
		RUC:  strPtr("80012345-6"),
	}
	row := exportRow()
	row.Entries = []payroll.WorkEntry{
		{
			DateStart:    time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),
			TypeCategory: catPtr(payroll.CategoryAttendance),
		},
	}

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	content, err := buildMonthlyGridCSV(comp, from, to, []slipExportRow{row})
	require.NoError(t, err)

	records := parseCSV(t, content)
	require.Len(t, records, 4)

	assert.Equal(t, "Razon Social: Acme Paraguay S.A.", records[0][0])
	assert.Equal(t, "RUC: 80012345-6", records[0][1])

	header := records[2]
	// 3 identity columns, 30 day columns, 15 block columns.
	require.Len(t, header, 3+30+15)
	assert.Equal(t, "1", header[3])
	assert.Equal(t, "30", header[32])

	data := records[3]
	assert.Equal(t, "1", data[0])
	assert.Equal(t, "1234567", data[1])
	assert.Equal(t, "Juan González", data[2])
	assert.Equal(t, "D", data[3])  // June 1 is a Sunday
	assert.Equal(t, "8", data[4])  // worked June 2
	assert.Equal(t, "", data[5])   // no entry June 3
	assert.Equal(t, "M", data[33]) // payment form, monthly
	assert.Equal(t, "28", data[35])
	assert.Equal(t, "224", data[36])
	assert.Equal(t, "2333333.00", data[37])
	assert.Equal(t, "2350000.00", data[len(data)-1])
}

func TestBuildAnnualSummaryCSV(t *testing.T) {
	male := exportRow()

	female := exportRow()
	female.Employee.ID = "emp-2"
	female.Employee.FirstName = "María"
	female.Employee.Gender = employee.GenderFemale
	female.Employee.JobCategory = employee.JobCategorySubChief
	female.Employee.HireDate = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	female.Slip.Number = "SLIP/2025/0044"

	// Same employee twice: two slips, one person.
	content, err := buildAnnualSummaryCSV("8000123456", 2025, []slipExportRow{male, male, female})
	require.NoError(t, err)

	records := parseCSV(t, content)
	require.Len(t, records, 6)

	assert.Equal(t, []string{
		"NRO_PATRONAL", "ANHO",
		"SUBJEFESVARONES", "SUBJEFESMUJERES",
		"EMPLEADOSVARONES", "EMPLEADOSMUJERES",
		"ORDEN", "DESCRIPCION",
	}, records[0])

	people := records[1]
	assert.Equal(t, "8000123456", people[0])
	assert.Equal(t, "2025", people[1])
	assert.Equal(t, "0", people[2]) // no male sub-chiefs
	assert.Equal(t, "1", people[3])
	assert.Equal(t, "1", people[4])
	assert.Equal(t, "1", people[6])
	assert.Equal(t, "Cantidad de personas", people[7])

	hours := records[2]
	assert.Equal(t, "224", hours[3])       // one slip, 28 days × 8
	assert.Equal(t, "448", hours[4])       // two slips of the same person
	assert.Equal(t, "2350000.00", records[3][3])
	assert.Equal(t, "4700000.00", records[3][4])

	entries := records[4]
	assert.Equal(t, "1", entries[3]) // hired in 2025
	assert.Equal(t, "0", entries[4]) // hired in 2023
}
