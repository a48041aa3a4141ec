/*
handlers.go - HTTP API handlers for the benefits engine

PURPOSE:
  Exposes the paycheck engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the benefits services.

ENDPOINTS (base /api/v1):
  Employees:
    GET    /employees                  List valid employees
    POST   /employees                  Create or replace an employee
    GET    /employees/{id}             Get employee with dependents
    DELETE /employees/{id}             Delete employee and dependents
    GET    /employees/{id}/paychecks   Per-paycheck deduction breakdown

  Dependents:
    GET    /dependents                 List all dependents
    GET    /dependents/{id}            Get one dependent

  Configuration:
    GET    /paycheck-configuration     Active configuration and version
    PUT    /paycheck-configuration     Store a new configuration version

  Pay runs:
    GET    /payruns                    List pay runs (?status=)
    POST   /payruns                    Run payroll for every employee now
    GET    /payruns/{id}               Pay run with per-employee items

  Scenarios:
    GET    /scenarios                  List demo scenarios
    GET    /scenarios/current          Currently loaded scenario
    POST   /scenarios/load             Load a demo scenario
    POST   /scenarios/reset            Clear the database

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Employees / Paychecks: benefits services reading from Store
  - Configurations: JSON to PaycheckConfiguration conversion
  - Payruns: pay run executor shared with the scheduler

ERROR HANDLING:
  Service results map to HTTP status via writeResult:
  - StatusSuccess     -> 200
  - StatusNotFound    -> 404
  - StatusInvalidData -> 500 with the result message
  Request validation failures return 400.

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - payrun.go: Pay run execution and scheduling
  - server.go: Router setup and middleware
*/
package api

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/warp/benefits-engine/benefits"
	"github.com/warp/benefits-engine/factory"
	"github.com/warp/benefits-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store          *sqlite.Store
	Employees      *benefits.EmployeeService
	Paychecks      *benefits.PaycheckService
	Configurations *factory.ConfigurationFactory
	Payruns        *PayrunScheduler

	// Track currently loaded scenario
	mu              sync.RWMutex
	currentScenario string
}

// NewHandler creates a new handler with the given store. The store serves
// as both the employee and configuration provider.
func NewHandler(store *sqlite.Store) *Handler {
	employees := benefits.NewEmployeeService(store)
	paychecks := benefits.NewPaycheckService(store, employees)
	return &Handler{
		Store:          store,
		Employees:      employees,
		Paychecks:      paychecks,
		Configurations: factory.NewConfigurationFactory(),
		Payruns:        NewPayrunScheduler(store, paychecks),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all valid employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	res := h.Employees.ListEmployees(r.Context())
	if !res.OK() {
		writeResultError(w, res.Status, res.Message, "Employees not found")
		return
	}

	dtos := make([]EmployeeDTO, len(res.Data))
	for i, e := range res.Data {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: dtos, Success: true})
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	res := h.Employees.GetEmployee(r.Context(), id)
	if !res.OK() {
		writeResultError(w, res.Status, res.Message, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: toEmployeeDTO(res.Data), Success: true})
}

// CreateEmployee creates or replaces an employee with its dependents.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := req.toEmployee()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// The partner rule is enforced on write as well as on read
	if err := benefits.ValidateEmployee(emp); err != nil {
		writeError(w, http.StatusBadRequest, benefits.TooManyPartnersMessage(emp), err)
		return
	}

	ctx := r.Context()
	id, err := h.Store.SaveEmployee(ctx, emp)
	if err != nil {
		if benefits.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid employee", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}

	saved, err := h.Store.GetEmployee(ctx, id)
	if err != nil || saved == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload employee", err)
		return
	}

	log.Printf("[Employees] Saved employee %d (%s) with %d dependents", id, saved.FullName(), len(saved.Dependents))
	writeJSON(w, http.StatusCreated, APIResponse{Data: toEmployeeDTO(*saved), Success: true})
}

// DeleteEmployee removes an employee and its dependents.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		if benefits.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: fmt.Sprintf("Employee %d deleted", id)})
}

// GetPaycheck returns the per-paycheck deduction breakdown for an employee.
func (h *Handler) GetPaycheck(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	res := h.Paychecks.ComputePaycheck(r.Context(), id)
	if !res.OK() {
		writeResultError(w, res.Status, res.Message, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: toPaycheckDTO(id, res.Data), Success: true})
}

// =============================================================================
// DEPENDENT HANDLERS
// =============================================================================

// ListDependents returns all dependents.
func (h *Handler) ListDependents(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListDependents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list dependents", err)
		return
	}

	dtos := make([]DependentDTO, len(records))
	for i, d := range records {
		dtos[i] = toDependentDTO(d.Dependent)
		dtos[i].EmployeeID = int(d.EmployeeID)
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: dtos, Success: true})
}

// GetDependent returns a single dependent.
func (h *Handler) GetDependent(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dependent id", err)
		return
	}

	rec, err := h.Store.GetDependent(r.Context(), benefits.DependentID(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get dependent", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Dependent not found", nil)
		return
	}

	dto := toDependentDTO(rec.Dependent)
	dto.EmployeeID = int(rec.EmployeeID)
	writeJSON(w, http.StatusOK, APIResponse{Data: dto, Success: true})
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// GetConfiguration returns the active paycheck configuration.
func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, version, err := h.Store.GetPaycheckConfigurationVersion(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load paycheck configuration", err)
		return
	}
	if cfg == nil {
		writeError(w, http.StatusNotFound, "Paycheck configuration not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Data:    ConfigurationDTO{Version: version, ConfigurationJSON: h.Configurations.ToJSON(*cfg)},
		Success: true,
	})
}

// UpdateConfiguration stores a new configuration version. The whole
// configuration is required; there are no partial updates.
func (h *Handler) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	cfg, err := h.Configurations.ParseConfiguration(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paycheck configuration", err)
		return
	}

	version, err := h.Store.SavePaycheckConfiguration(r.Context(), *cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save paycheck configuration", err)
		return
	}

	log.Printf("[Configuration] Stored paycheck configuration v%d", version)
	writeJSON(w, http.StatusOK, APIResponse{
		Data:    ConfigurationDTO{Version: version, ConfigurationJSON: h.Configurations.ToJSON(*cfg)},
		Success: true,
	})
}

// =============================================================================
// PAY RUN HANDLERS
// =============================================================================

// ListPayruns returns recorded pay runs, newest first.
func (h *Handler) ListPayruns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListPayruns(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pay runs", err)
		return
	}

	dtos := make([]PayrunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toPayrunDTO(run)
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: dtos, Success: true})
}

// TriggerPayrun runs payroll for every employee and returns the record.
func (h *Handler) TriggerPayrun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Payruns.Run(r.Context(), TriggerManual)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record pay run", err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Data: toPayrunDTO(run), Success: true})
}

// GetPayrun returns a pay run with its items.
func (h *Handler) GetPayrun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Store.GetPayrun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get pay run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Pay run not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: toPayrunDTO(*run), Success: true})
}

// =============================================================================
// HELPERS
// =============================================================================

func employeeIDParam(w http.ResponseWriter, r *http.Request) (benefits.EmployeeID, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return 0, false
	}
	return benefits.EmployeeID(id), true
}

// statusCode maps a service Status to its HTTP status code.
func statusCode(s benefits.Status) int {
	switch s {
	case benefits.StatusSuccess:
		return http.StatusOK
	case benefits.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeResultError writes a failed service result. NotFound results carry
// no message of their own, so notFound is used instead.
func writeResultError(w http.ResponseWriter, status benefits.Status, message, notFound string) {
	if status == benefits.StatusNotFound && message == "" {
		message = notFound
	}
	writeJSON(w, statusCode(status), ErrorResponse{Error: message, Details: status.String()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
