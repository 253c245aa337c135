package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
)

const maxAvatarForm = 6 << 20

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	SearchEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetDepartments(w http.ResponseWriter, r *http.Request)
	GetRoles(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListEmployees handles GET /employees
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, employee.ToResponses(employees), &response.Meta{TotalItems: len(employees)})
}

// SearchEmployees handles GET /employees/search?q=&department=&status=&role=
func (h *employeeHandlerImpl) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		query = q.Get("query")
	}

	filter := employee.SearchFilter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Role:       q.Get("role"),
	}

	employees, err := h.employeeService.Search(r.Context(), query, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, employee.ToResponses(employees), &response.Meta{TotalItems: len(employees)})
}

// GetEmployee handles GET /employees/{id}
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(result))
}

// CreateEmployee handles POST /employees
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employee.ToResponse(result))
}

// UpdateEmployee handles PUT /employees/{id}
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", employee.ToResponse(result))
}

// DeleteEmployee handles DELETE /employees/{id}
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// GetStats handles GET /employees/stats
func (h *employeeHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.employeeService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetDepartments handles GET /employees/departments
func (h *employeeHandlerImpl) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.employeeService.GetDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// GetRoles handles GET /employees/roles
func (h *employeeHandlerImpl) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.employeeService.GetRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}

// UploadAvatar handles POST /employees/{id}/avatar (multipart, field "avatar")
func (h *employeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarForm); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Field 'avatar' is required", nil)
		return
	}
	defer file.Close()

	result, err := h.employeeService.UploadAvatar(r.Context(), id, file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Avatar uploaded successfully", employee.ToResponse(result))
}
