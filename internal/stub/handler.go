// Package stub serves the POS employee endpoints from memory, for local
// development and for end-to-end tests of the client.
package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const StatusError = "error"

type Handler struct {
	log      logging.Logger
	validate *validator.Validate

	mu        sync.RWMutex
	employees []domain.Employee
	passwords map[string]string

	Mux *chi.Mux
}

func NewHandler(seed []domain.Employee, log logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{
		log:       log,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		employees: append(make([]domain.Employee, 0, len(seed)), seed...),
		passwords: make(map[string]string),
		Mux:       chi.NewRouter(),
	}
}

// LoadSeed reads a JSON array of employees.
func LoadSeed(path string) ([]domain.Employee, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stub: read seed: %w", err)
	}
	var out []domain.Employee
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("stub: parse seed: %w", err)
	}
	for i, e := range out {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("stub: seed record %d: %w", i, err)
		}
	}
	return out, nil
}

func (h *Handler) RegisterRoutes(listPath, updatePath string) {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get(listPath, h.ListEmployees)
		r.Put(updatePath, h.UpdateEmployee)
	})
}

// Employees returns a copy of the current records, never nil so an empty
// directory is sent as [].
func (h *Handler) Employees() []domain.Employee {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append(make([]domain.Employee, 0, len(h.employees)), h.employees...)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, h.Employees())
}

type updateInput struct {
	EmployeesTag string `json:"employees_tag" validate:"required"`
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	Password     string `json:"password"`
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := h.readJSON(r, &in); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&in); err != nil {
		h.errorResponse(w, r, http.StatusOK, validationMessage(err))
		return
	}

	h.mu.Lock()
	idx := -1
	for i, e := range h.employees {
		if e.EmployeeTag == in.EmployeesTag {
			idx = i
			break
		}
	}
	if idx < 0 {
		h.mu.Unlock()
		h.errorResponse(w, r, http.StatusOK, "Employee not found")
		return
	}
	h.employees[idx].Username = in.Username
	h.employees[idx].Email = in.Email
	h.employees[idx].PhoneNumber = in.PhoneNumber
	if in.Password != "" {
		h.passwords[in.EmployeesTag] = in.Password
	}
	updated := h.employees[idx]
	h.mu.Unlock()

	h.log.Info(r.Context(), "employee updated", "employee_tag", in.EmployeesTag, "password_changed", in.Password != "")
	h.successResponse(w, r, updated)
}

// PasswordChanged reports whether an update set a password for tag.
func (h *Handler) PasswordChanged(tag string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.passwords[tag]
	return ok
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Tag() == "email" {
		return "Invalid email address"
	}
	return fmt.Sprintf("Field %s is required", fe.Field())
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

type response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")

	if !acceptsBrotli(r) {
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.log.Error(r.Context(), "write response", "path", r.URL.Path, "error", err)
		}
		return
	}

	w.Header().Set("Content-Encoding", "br")
	w.Header().Add("Vary", "Accept-Encoding")
	w.WriteHeader(status)
	bw := brotli.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(v); err != nil {
		h.log.Error(r.Context(), "write response", "path", r.URL.Path, "error", err)
	}
	if err := bw.Close(); err != nil {
		h.log.Error(r.Context(), "flush response", "path", r.URL.Path, "error", err)
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, data any) {
	h.writeJSON(w, r, http.StatusOK, response{Status: domain.StatusSuccess, Data: data})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, response{Status: StatusError, Message: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.log.Info(r.Context(), "request handled",
			"status", rw.StatusCode,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-Id"),
			"duration", time.Since(start),
		)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.log.Error(r.Context(), "panic", "error", err, "stack", string(debug.Stack()))
				h.errorResponse(w, r, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			h.errorResponse(w, r, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
