package validator

import (
	"regexp"
	"strings"
	"time"
)

// Violation codes carried alongside every validation error. Codes are part of
// the API contract and must stay stable; messages are free to change.
const (
	CodeRequired    = "required"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodePattern     = "invalid_format"
	CodeOutOfRange  = "out_of_range"
	CodeInvalidEnum = "invalid_enum"
	CodeCrossField  = "cross_field"
	CodeImmutable   = "immutable_field"
	CodeDuplicate   = "duplicate"
)

type ValidationError struct {
	Field   string
	Code    string
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

// Add appends a violation and returns the extended list.
func (v ValidationErrors) Add(field, code, message string) ValidationErrors {
	return append(v, ValidationError{Field: field, Code: code, Message: message})
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

// Employee code: 3-10 uppercase letters and digits.
var employeeCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}

// Phone numbers are loosely checked: optional leading +, then digits, spaces,
// dashes and parentheses, 10-20 characters total.
var phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

func IsValidPhoneNumber(phone string) bool {
	if len(phone) < 10 || len(phone) > 20 {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
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
