package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/internal/services"
)

// EmployeeHandler serves the admin employee routes.
type EmployeeHandler struct {
	employees   *services.EmployeeService
	departments *services.DepartmentService
	log         *slog.Logger
}

func NewEmployeeHandler(employees *services.EmployeeService, departments *services.DepartmentService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, departments: departments, log: log}
}

// List handles GET /api/employees?department=&status=&position=&q=.
// The response also carries the department rollup used by the filter UI.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.employees.Find(r.Context(), services.Filter{
		Role:         gate.RoleEmployee,
		DepartmentID: q.Get("department"),
		Status:       models.EmployeeStatus(q.Get("status")),
		Position:     q.Get("position"),
		Query:        q.Get("q"),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	deps, err := h.departments.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if list == nil {
		list = []models.Employee{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"employees": list, "departments": deps})
}

// Get handles GET /api/employees/{id}.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.employees.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"employee": e})
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.EmployeePatch
	if err := httpx.Decode(r, &patch); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	e, err := h.employees.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"employee": e})
}
