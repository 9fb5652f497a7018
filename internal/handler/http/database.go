package http

import (
	"net/http"

	"github.com/staffdir/employee-backend-go/internal/domain/employee"
	"github.com/staffdir/employee-backend-go/internal/handler/http/response"
)

// DatabaseHandler exposes admin-only database management: seeding sample
// employees and wiping the table.
type DatabaseHandler interface {
	SeedSampleData(w http.ResponseWriter, r *http.Request)
	ResetDatabase(w http.ResponseWriter, r *http.Request)
}

type databaseHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewDatabaseHandler(employeeService employee.EmployeeService) DatabaseHandler {
	return &databaseHandlerImpl{employeeService: employeeService}
}

// SeedSampleData implements DatabaseHandler
func (h *databaseHandlerImpl) SeedSampleData(w http.ResponseWriter, r *http.Request) {
	created, err := h.employeeService.SeedSampleData(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sample data seeded", map[string]int{"created": created})
}

// ResetDatabase implements DatabaseHandler
func (h *databaseHandlerImpl) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.ResetDatabase(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee table reset", nil)
}
