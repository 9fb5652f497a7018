package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee ID already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrManagerNotFound    = errors.New("manager not found")
	ErrManagerCycle       = errors.New("manager chain would form a cycle")
)
