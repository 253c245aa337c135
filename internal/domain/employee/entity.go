package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               int64
	EmployeeCode     string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Department       string
	Role             string
	JoinDate         time.Time
	Status           Status
	Salary           decimal.Decimal
	Address          string
	EmergencyContact string
	ManagerID        *int64
	AvatarURL        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// FormatCode renders the human employee code for an id, e.g. EMP003.
func FormatCode(id int64) string {
	return fmt.Sprintf("EMP%03d", id)
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusOnLeave  Status = "On Leave"
	StatusInactive Status = "Inactive"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusOnLeave, StatusInactive:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}
