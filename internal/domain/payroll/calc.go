package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Stats struct {
	TotalEmployees   int             `json:"total_employees"`
	TotalGrossSalary decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary   decimal.Decimal `json:"total_net_salary"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalOvertime    decimal.Decimal `json:"total_overtime"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	AverageSalary    decimal.Decimal `json:"average_salary"`
}

func ComputeStats(records []PayrollRecord) Stats {
	stats := Stats{
		TotalGrossSalary: decimal.Zero,
		TotalNetSalary:   decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalOvertime:    decimal.Zero,
		TotalTax:         decimal.Zero,
		AverageSalary:    decimal.Zero,
	}
	for _, r := range records {
		stats.TotalEmployees++
		stats.TotalGrossSalary = stats.TotalGrossSalary.Add(r.Gross())
		stats.TotalNetSalary = stats.TotalNetSalary.Add(r.NetSalary)
		stats.TotalDeductions = stats.TotalDeductions.Add(r.Deductions)
		stats.TotalOvertime = stats.TotalOvertime.Add(r.OvertimePay)
		stats.TotalTax = stats.TotalTax.Add(r.TaxDeduction)
	}
	if stats.TotalEmployees > 0 {
		stats.AverageSalary = stats.TotalNetSalary.Div(decimal.NewFromInt(int64(stats.TotalEmployees))).Round(2)
	}
	return stats
}

// DistinctMonths returns the month keys present in records, most recent first.
func DistinctMonths(records []PayrollRecord) []Month {
	seen := make(map[Month]struct{})
	months := make([]Month, 0)
	for _, r := range records {
		if _, ok := seen[r.Month]; ok {
			continue
		}
		seen[r.Month] = struct{}{}
		months = append(months, r.Month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })
	return months
}
