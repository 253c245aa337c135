package validator

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no field failed, so callers can `return errs.Err()`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// FieldError builds a single-field ValidationErrors value.
func FieldError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// AsValidationErrors unwraps err into ValidationErrors when it carries one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

// IsValidPhoneNumber accepts international style numbers with spaces, dashes and parentheses.
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidMonth checks a "YYYY-MM" month key.
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := time.Parse(MonthLayout, monthStr)
	return month, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
