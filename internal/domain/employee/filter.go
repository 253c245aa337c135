package employee

import "strings"

// Filter narrows a roster listing. Query is an OR group over first name,
// last name, email and employee code (case-insensitive contains); the
// remaining fields are exact matches ANDed with it. Zero values mean no filter.
type Filter struct {
	Query      string
	Department string
	Role       string
	Status     *Status
	IDs        []int64
}

func (f Filter) Matches(e Employee) bool {
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	if f.Role != "" && e.Role != f.Role {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == e.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{e.FirstName, e.LastName, e.Email, e.EmployeeCode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
