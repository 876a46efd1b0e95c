package handlers

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/services"
)

// UserHandler serves registration, login and self-service profile routes.
type UserHandler struct {
	accounts  *services.AccountService
	employees *services.EmployeeService
	log       *slog.Logger
}

func NewUserHandler(accounts *services.AccountService, employees *services.EmployeeService, log *slog.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, employees: employees, log: log}
}

// RegisterAdmin handles POST /api/users/register-admin.
func (h *UserHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var in services.Credentials
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	sess, err := h.accounts.RegisterAdmin(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "admin registered", "employee_id", sess.User.ID)
	httpx.JSON(w, http.StatusCreated, sess)
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.Credentials
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	sess, err := h.accounts.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sess)
}

// CreateEmployee handles POST /api/users/create-employee.
func (h *UserHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in services.EmployeeInput
	if err := httpx.Decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	e, err := h.accounts.CreateEmployee(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"employee": e})
}

// Profile returns the caller's own record.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	e, err := h.employees.Profile(r.Context(), p)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	var patch services.ProfilePatch
	if err := httpx.Decode(r, &patch); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	e, err := h.employees.UpdateOwnProfile(r.Context(), p, patch)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}
