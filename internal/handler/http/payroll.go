package http

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const contentTypePDF = "application/pdf"

type PayrollHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetSalaryHistory(w http.ResponseWriter, r *http.Request)
	GetCurrentMonth(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetAvailableMonths(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// optionalMonth reads ?month=YYYY-MM; empty means every month.
func optionalMonth(r *http.Request) (*payroll.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return nil, nil
	}
	month, err := payroll.ParseMonth(raw)
	if err != nil {
		return nil, validator.FieldError("month", "month must be in YYYY-MM format")
	}
	return &month, nil
}

func pathMonth(r *http.Request) (payroll.Month, error) {
	month, err := payroll.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		return "", validator.FieldError("month", "month must be in YYYY-MM format")
	}
	return month, nil
}

func writeRecords(w http.ResponseWriter, records []payroll.PayrollRecordWithEmployee, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, payroll.ToResponses(records), &response.Meta{TotalItems: len(records)})
}

// List handles GET /payroll, narrowed by ?employee_id= and ?year=
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("employee_id")
	if raw == "" {
		records, err := h.payrollService.List(r.Context())
		writeRecords(w, records, err)
		return
	}

	employeeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || employeeID <= 0 {
		response.HandleError(w, validator.FieldError("employee_id", "employee_id must be a positive integer"))
		return
	}

	var year *int
	if y := q.Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed <= 0 {
			response.HandleError(w, validator.FieldError("year", "year must be a positive integer"))
			return
		}
		year = &parsed
	}

	records, err := h.payrollService.GetByEmployeeID(r.Context(), employeeID, year)
	writeRecords(w, records, err)
}

// Get handles GET /payroll/{id}
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResponse(record.PayrollRecord, record.Employee))
}

// Create handles POST /payroll
func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.payrollService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created", payroll.ToResponse(created, nil))
}

// Update handles PUT /payroll/{id}
func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.UpdatePayrollRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.payrollService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record updated", payroll.ToResponse(updated, nil))
}

// Delete handles DELETE /payroll/{id}
func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

// GetSalaryHistory handles GET /payroll/history/{employeeID}
func (h *payrollHandlerImpl) GetSalaryHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, err := urlID(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.payrollService.GetSalaryHistory(r.Context(), employeeID)
	writeRecords(w, records, err)
}

// GetCurrentMonth handles GET /payroll/current
func (h *payrollHandlerImpl) GetCurrentMonth(w http.ResponseWriter, r *http.Request) {
	records, err := h.payrollService.GetCurrentMonthPayroll(r.Context())
	writeRecords(w, records, err)
}

// GetStats handles GET /payroll/stats?month=
func (h *payrollHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.payrollService.GetPayrollStats(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetAvailableMonths handles GET /payroll/months
func (h *payrollHandlerImpl) GetAvailableMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.payrollService.GetAvailableMonths(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, months)
}

// GetPayslip handles GET /payroll/payslips/{employeeID}/{month}
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID, err := urlID(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, err := pathMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payslip, err := h.payrollService.GeneratePayslip(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToPayslipResponse(payslip))
}

// DownloadPayslip handles GET /payroll/payslips/{employeeID}/{month}/pdf
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID, err := urlID(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, err := pathMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.payrollService.RenderPayslipPDF(r.Context(), employeeID, month, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := payroll.PayslipFilename(employeeID, month)
	response.Attachment(w, contentTypePDF, filename, buf.Bytes())
}

// Export handles GET /payroll/export?month=
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.payrollService.ExportXLSX(r.Context(), month, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, contentTypeXLSX, "payroll.xlsx", buf.Bytes())
}
