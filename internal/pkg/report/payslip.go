package report

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// WritePayslipPDF renders a one-page A4 payslip.
func WritePayslipPDF(p payroll.Payslip, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.PayslipID, true)
	pdf.SetCreationDate(p.GeneratedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := [][2]string{
		{"Payslip ID", p.PayslipID},
		{"Period", p.Month.String()},
		{"Employee", fmt.Sprintf("%s (%s)", p.Employee.FullName(), p.Employee.EmployeeCode)},
		{"Department", p.Employee.Department},
		{"Role", p.Employee.Role},
		{"Generated", p.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")},
	}
	for _, line := range header {
		pdf.CellFormat(45, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	r := p.Record
	earnings := [][2]interface{}{
		{"Basic salary", r.BasicSalary},
		{"Allowances", r.Allowances},
		{fmt.Sprintf("Overtime (%s h)", r.OvertimeHours.StringFixed(2)), r.OvertimePay},
	}
	deductions := [][2]interface{}{
		{"Deductions", r.Deductions},
		{"Tax", r.TaxDeduction},
		{"Insurance", r.InsuranceDeduction},
		{"Provident fund", r.ProvidentFund},
	}

	section(pdf, "Earnings", earnings)
	section(pdf, "Deductions", deductions)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 9, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, r.NetSalary.StringFixed(2), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string, rows [][2]interface{}) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(221, 235, 247)
	pdf.CellFormat(180, 8, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		label, _ := row[0].(string)
		amount, _ := row[1].(decimal.Decimal)
		pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
