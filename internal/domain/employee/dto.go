package employee

import (
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Department       string           `json:"department"`
	Role             string           `json:"role"`
	Salary           *decimal.Decimal `json:"salary,omitempty"`
	Address          string           `json:"address"`
	EmergencyContact string           `json:"emergency_contact"`
	ManagerID        *int64           `json:"manager_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	// First name
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	// Last name
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Phone
	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	// Salary
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest carries a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	FirstName        *string          `json:"first_name,omitempty"`
	LastName         *string          `json:"last_name,omitempty"`
	Email            *string          `json:"email,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Department       *string          `json:"department,omitempty"`
	Role             *string          `json:"role,omitempty"`
	Status           *string          `json:"status,omitempty"`
	Salary           *decimal.Decimal `json:"salary,omitempty"`
	Address          *string          `json:"address,omitempty"`
	EmergencyContact *string          `json:"emergency_contact,omitempty"`
	ManagerID        *int64           `json:"manager_id,omitempty"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}
	if r.Status != nil {
		if _, err := ParseStatus(*r.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of Active, On Leave, Inactive",
			})
		}
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the provided fields into e.
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.FirstName != nil {
		e.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		e.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.Email != nil {
		e.Email = strings.TrimSpace(*r.Email)
	}
	if r.Phone != nil {
		e.Phone = *r.Phone
	}
	if r.Department != nil {
		e.Department = *r.Department
	}
	if r.Role != nil {
		e.Role = *r.Role
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	if r.Salary != nil {
		e.Salary = *r.Salary
	}
	if r.Address != nil {
		e.Address = *r.Address
	}
	if r.EmergencyContact != nil {
		e.EmergencyContact = *r.EmergencyContact
	}
	if r.ManagerID != nil {
		e.ManagerID = r.ManagerID
	}
	if r.AvatarURL != nil {
		e.AvatarURL = r.AvatarURL
	}
}

// SearchFilter holds the directory's optional exact-match narrowing;
// "" and "all" disable a filter.
type SearchFilter struct {
	Department string `json:"department"`
	Status     string `json:"status"`
	Role       string `json:"role"`
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "all")
}

// ToFilter combines the free-text query with the exact filters.
func (f SearchFilter) ToFilter(query string) (Filter, error) {
	filter := Filter{Query: query}
	if !isAll(f.Department) {
		filter.Department = f.Department
	}
	if !isAll(f.Role) {
		filter.Role = f.Role
	}
	if !isAll(f.Status) {
		status, err := ParseStatus(f.Status)
		if err != nil {
			return Filter{}, validator.FieldError("status", "status must be one of Active, On Leave, Inactive")
		}
		filter.Status = &status
	}
	return filter, nil
}

type EmployeeStats struct {
	Total        int            `json:"total"`
	Active       int            `json:"active"`
	OnLeave      int            `json:"on_leave"`
	Inactive     int            `json:"inactive"`
	ByDepartment map[string]int `json:"by_department"`
}

// ComputeStats tallies a roster by status and department.
func ComputeStats(employees []Employee) EmployeeStats {
	stats := EmployeeStats{ByDepartment: make(map[string]int)}
	for _, e := range employees {
		stats.Total++
		switch e.Status {
		case StatusActive:
			stats.Active++
		case StatusOnLeave:
			stats.OnLeave++
		case StatusInactive:
			stats.Inactive++
		}
		if e.Department != "" {
			stats.ByDepartment[e.Department]++
		}
	}
	return stats
}

type EmployeeResponse struct {
	ID               int64           `json:"id"`
	EmployeeCode     string          `json:"employee_code"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Department       string          `json:"department"`
	Role             string          `json:"role"`
	JoinDate         string          `json:"join_date"`
	Status           Status          `json:"status"`
	Salary           decimal.Decimal `json:"salary"`
	Address          string          `json:"address"`
	EmergencyContact string          `json:"emergency_contact"`
	ManagerID        *int64          `json:"manager_id"`
	AvatarURL        *string         `json:"avatar_url"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		FullName:         e.FullName(),
		Email:            e.Email,
		Phone:            e.Phone,
		Department:       e.Department,
		Role:             e.Role,
		JoinDate:         e.JoinDate.Format(validator.DateLayout),
		Status:           e.Status,
		Salary:           e.Salary,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		ManagerID:        e.ManagerID,
		AvatarURL:        e.AvatarURL,
	}
}

// ToResponsePtr converts an optional joined employee.
func ToResponsePtr(e *Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	resp := ToResponse(*e)
	return &resp
}

func ToResponses(employees []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToResponse(e))
	}
	return out
}
