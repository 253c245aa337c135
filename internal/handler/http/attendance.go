package http

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	RecordBreak(w http.ResponseWriter, r *http.Request)
	GetCurrentStatus(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkAbsences(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
}

// NewAttendanceHandler reads date-only query values as days in location.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, location *time.Location) AttendanceHandler {
	if location == nil {
		location = time.UTC
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		location:          location,
	}
}

type clockInRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

func dateRange(r *http.Request) attendance.DateRangeRequest {
	return attendance.DateRangeRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}

// ClockIn handles POST /attendance/clock-in
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req clockInRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	if req.EmployeeID <= 0 {
		response.HandleError(w, validator.FieldError("employee_id", "employee_id is required"))
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", attendance.ToResponse(result, nil))
}

// ClockOut handles POST /attendance/clock-out
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", attendance.ToResponse(result, nil))
}

// RecordBreak handles POST /attendance/break
func (h *attendanceHandlerImpl) RecordBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.BreakRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RecordBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break recorded", attendance.ToResponse(result, nil))
}

// GetCurrentStatus handles GET /attendance/status/{employeeID}
func (h *attendanceHandlerImpl) GetCurrentStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, err := urlID(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.attendanceService.GetCurrentStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetToday handles GET /attendance/today
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetTodayAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, attendance.ToResponses(records), &response.Meta{TotalItems: len(records)})
}

// GetStats handles GET /attendance/stats?start_date=&end_date=
func (h *attendanceHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r).Parse()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.attendanceService.GetStats(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// List handles GET /attendance, narrowed to one employee by ?employee_id=
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("employee_id")
	if raw == "" {
		records, err := h.attendanceService.List(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMeta(w, attendance.ToResponses(records), &response.Meta{TotalItems: len(records)})
		return
	}

	employeeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || employeeID <= 0 {
		response.HandleError(w, validator.FieldError("employee_id", "employee_id must be a positive integer"))
		return
	}
	from, to, err := dateRange(r).Parse()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetByEmployeeID(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, attendance.ToResponse(a, nil))
	}
	response.SuccessWithMeta(w, out, &response.Meta{TotalItems: len(out)})
}

// Get handles GET /attendance/{id}
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponse(record.Attendance, record.Employee))
}

// MarkAbsences handles POST /attendance/absences?date=YYYY-MM-DD
func (h *attendanceHandlerImpl) MarkAbsences(w http.ResponseWriter, r *http.Request) {
	date, err := time.ParseInLocation(validator.DateLayout, r.URL.Query().Get("date"), h.location)
	if err != nil {
		response.HandleError(w, validator.FieldError("date", "date must be in YYYY-MM-DD format"))
		return
	}

	report, err := h.attendanceService.MarkAbsences(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// Export handles GET /attendance/export?start_date=&end_date=
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r).Parse()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.attendanceService.ExportXLSX(r.Context(), from, to, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, contentTypeXLSX, "attendance.xlsx", buf.Bytes())
}
