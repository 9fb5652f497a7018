package http

import (
	"net/http"

	"github.com/staffdir/employee-backend-go/internal/domain/employee"
	"github.com/staffdir/employee-backend-go/internal/handler/http/response"
)

type StatsHandler interface {
	GetDepartmentStats(w http.ResponseWriter, r *http.Request)
	GetSalaryStats(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewStatsHandler(employeeService employee.EmployeeService) StatsHandler {
	return &statsHandlerImpl{employeeService: employeeService}
}

// GetDepartmentStats implements StatsHandler
func (h *statsHandlerImpl) GetDepartmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.employeeService.GetDepartmentStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetSalaryStats implements StatsHandler
func (h *statsHandlerImpl) GetSalaryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.employeeService.GetSalaryStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
