package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestNetSalary(t *testing.T) {
	assert.True(t, d("3050").Equal(NetSalary(d("3000"), d("200"), d("150"))))
	assert.True(t, d("-50").Equal(NetSalary(d("0"), d("0"), d("50"))))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, Month("2024-03"), m)
	assert.Equal(t, 2024, m.Year())
	assert.Equal(t, "202403", m.Compact())

	_, err = ParseMonth("2024-3")
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = ParseMonth("March 2024")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestPayslipID(t *testing.T) {
	assert.Equal(t, "PS-12-202403", PayslipID(12, "2024-03"))
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.TotalEmployees)
	assert.True(t, stats.AverageSalary.IsZero())
	assert.True(t, stats.TotalNetSalary.IsZero())
}

func TestComputeStats(t *testing.T) {
	records := []PayrollRecord{
		{BasicSalary: d("3000"), Allowances: d("200"), Deductions: d("150"), OvertimePay: d("100"), TaxDeduction: d("300"), NetSalary: d("3050")},
		{BasicSalary: d("4000"), Allowances: d("0"), Deductions: d("500"), OvertimePay: d("0"), TaxDeduction: d("400"), NetSalary: d("3500")},
		{BasicSalary: d("1000"), Allowances: d("0"), Deductions: d("0"), NetSalary: d("1000")},
	}
	stats := ComputeStats(records)

	assert.Equal(t, 3, stats.TotalEmployees)
	assert.True(t, d("8200").Equal(stats.TotalGrossSalary), stats.TotalGrossSalary.String())
	assert.True(t, d("7550").Equal(stats.TotalNetSalary))
	assert.True(t, d("650").Equal(stats.TotalDeductions))
	assert.True(t, d("100").Equal(stats.TotalOvertime))
	assert.True(t, d("700").Equal(stats.TotalTax))
	assert.True(t, d("2516.67").Equal(stats.AverageSalary), stats.AverageSalary.String())
}

func TestDistinctMonths(t *testing.T) {
	records := []PayrollRecord{{Month: "2024-01"}, {Month: "2024-03"}, {Month: "2023-12"}, {Month: "2024-03"}}
	assert.Equal(t, []Month{"2024-03", "2024-01", "2023-12"}, DistinctMonths(records))
	assert.Empty(t, DistinctMonths(nil))
}

func TestUpdatePayrollRecordRequest_Apply(t *testing.T) {
	base := func() PayrollRecord {
		r := PayrollRecord{BasicSalary: d("3000"), Allowances: d("200"), Deductions: d("150")}
		r.Recalculate()
		return r
	}

	t.Run("recomputes with merged values", func(t *testing.T) {
		r := base()
		allowances := d("500")
		(&UpdatePayrollRecordRequest{Allowances: &allowances}).Apply(&r)
		assert.True(t, d("3350").Equal(r.NetSalary))
	})

	t.Run("explicit zero is honoured", func(t *testing.T) {
		r := base()
		zero := decimal.Zero
		(&UpdatePayrollRecordRequest{Deductions: &zero}).Apply(&r)
		assert.True(t, d("3200").Equal(r.NetSalary))
	})

	t.Run("unrelated field keeps net", func(t *testing.T) {
		r := base()
		tax := d("99")
		(&UpdatePayrollRecordRequest{TaxDeduction: &tax}).Apply(&r)
		assert.True(t, d("3050").Equal(r.NetSalary))
		assert.True(t, d("99").Equal(r.TaxDeduction))
	})
}

func TestCreatePayrollRecordRequest_ValidateAndDefaults(t *testing.T) {
	basic := d("3000")
	req := CreatePayrollRecordRequest{EmployeeID: 1, Month: "2024-03", BasicSalary: &basic}
	require.NoError(t, req.Validate())

	record := req.ToRecord()
	assert.True(t, record.Allowances.IsZero())
	assert.True(t, record.Deductions.IsZero())
	assert.True(t, d("3000").Equal(record.NetSalary))

	negative := d("-1")
	bad := CreatePayrollRecordRequest{Month: "03-2024", Deductions: &negative}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee_id")
	assert.Contains(t, err.Error(), "month")
	assert.Contains(t, err.Error(), "basic_salary")
	assert.Contains(t, err.Error(), "deductions")
}
