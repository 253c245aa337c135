package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidStatus    = errors.New("status must be Active, On Leave or Inactive")
	ErrManagerNotFound  = errors.New("manager not found")
	ErrSelfManager      = errors.New("employee cannot manage themselves")
)
