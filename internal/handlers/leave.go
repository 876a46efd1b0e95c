package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/internal/services"
)

type LeaveHandler struct {
	leave *services.LeaveService
	log   *slog.Logger
}

func NewLeaveHandler(leave *services.LeaveService, log *slog.Logger) *LeaveHandler {
	return &LeaveHandler{leave: leave, log: log}
}

// Create files a leave request for the caller.
func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	var in services.LeaveInput
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	lr, err := h.leave.Create(r.Context(), p, p.ID, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"leaveRequest": lr})
}

type transitionRequest struct {
	Status models.LeaveStatus `json:"status"`
}

// Transition handles PATCH /api/employees/leave-requests/{employeeId}/{leaveRequestId}.
func (h *LeaveHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var in transitionRequest
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	lr, err := h.leave.Transition(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "leaveRequestId"), in.Status)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "leave request decided",
		"employee_id", lr.EmployeeID, "leave_request_id", lr.ID, "status", lr.Status)
	httpx.JSON(w, http.StatusOK, map[string]any{"leaveRequest": lr})
}

// List handles GET /api/employees/leave-requests/{employeeId}.
func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.leave.List(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listing)
}
