package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/services"
)

type DepartmentHandler struct {
	departments *services.DepartmentService
	log         *slog.Logger
}

func NewDepartmentHandler(departments *services.DepartmentService, log *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, log: log}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.departments.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"departments": list})
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.DepartmentInput
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	d, err := h.departments.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"department": d})
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.DepartmentInput
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	d, err := h.departments.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"department": d})
}

// Delete removes a department. Employees keep their reference to it.
func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.departments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
