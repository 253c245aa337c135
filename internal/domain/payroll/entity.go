package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord is one employee's compensation for one month
type PayrollRecord struct {
	ID                 int64
	EmployeeID         int64
	Month              Month
	BasicSalary        decimal.Decimal
	Allowances         decimal.Decimal
	Deductions         decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimePay        decimal.Decimal
	TaxDeduction       decimal.Decimal
	InsuranceDeduction decimal.Decimal
	ProvidentFund      decimal.Decimal
	NetSalary          decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Gross is basic salary plus allowances.
func (r PayrollRecord) Gross() decimal.Decimal {
	return r.BasicSalary.Add(r.Allowances)
}

// Recalculate restores the net salary invariant.
func (r *PayrollRecord) Recalculate() {
	r.NetSalary = NetSalary(r.BasicSalary, r.Allowances, r.Deductions)
}

func NetSalary(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions)
}

// Month is a year-month key in YYYY-MM form.
type Month string

const monthLayout = "2006-01"

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month(t.Format(monthLayout)), nil
}

// MonthOf returns the month key containing t.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

func (m Month) String() string {
	return string(m)
}

// Year returns the calendar year, or 0 for a malformed key.
func (m Month) Year() int {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return 0
	}
	return t.Year()
}

// Compact drops the separator, e.g. 202403.
func (m Month) Compact() string {
	return strings.ReplaceAll(string(m), "-", "")
}
