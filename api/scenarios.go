/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with a known
	roster and configuration. Each scenario demonstrates one behavior of
	the paycheck engine.

AVAILABLE SCENARIOS:

	default-roster:   Three employees, standard configuration
	invalid-partners: Default roster plus an employee claiming two partners
	no-configuration: Default roster with no paycheck configuration

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Save the standard configuration via the factory (unless excluded)
 3. Save employees and their dependents

USAGE VIA API:

	POST /api/v1/scenarios/load
	{"scenario_id": "default-roster"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Router-facing handlers
  - factory/configuration.go: StandardConfigurationJSON
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/warp/benefits-engine/benefits"
	"github.com/warp/benefits-engine/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

const (
	ScenarioDefaultRoster   = "default-roster"
	ScenarioInvalidPartners = "invalid-partners"
	ScenarioNoConfiguration = "no-configuration"
)

var scenarios = []ScenarioDTO{
	{
		ID:          ScenarioDefaultRoster,
		Name:        "Default Roster",
		Description: "Three employees covering no dependents, three young dependents, and an aged domestic partner with a high salary",
	},
	{
		ID:          ScenarioInvalidPartners,
		Name:        "Invalid Partners",
		Description: "Default roster plus an employee claiming both a spouse and a domestic partner",
	},
	{
		ID:          ScenarioNoConfiguration,
		Name:        "No Configuration",
		Description: "Default roster without a paycheck configuration; paycheck requests fail",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Data: scenarios, Success: true})
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, APIResponse{Data: s, Success: true})
			return
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Data: nil, Success: true})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.LoadScenarioByID(r.Context(), req.ScenarioID); err != nil {
		if errors.Is(err, errUnknownScenario) {
			writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Data:    map[string]string{"status": "loaded", "scenario": req.ScenarioID},
		Success: true,
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.setCurrentScenario("")
	writeJSON(w, http.StatusOK, APIResponse{Data: map[string]string{"status": "reset"}, Success: true})
}

var errUnknownScenario = errors.New("unknown scenario")

// LoadScenarioByID resets the database and loads the named scenario.
// cmd/server uses it to seed an empty database at startup.
func (h *Handler) LoadScenarioByID(ctx context.Context, id string) error {
	var loader func(context.Context) error
	switch id {
	case ScenarioDefaultRoster:
		loader = h.loadDefaultRosterScenario
	case ScenarioInvalidPartners:
		loader = h.loadInvalidPartnersScenario
	case ScenarioNoConfiguration:
		loader = h.loadNoConfigurationScenario
	default:
		return errUnknownScenario
	}

	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	h.setCurrentScenario("")

	if err := loader(ctx); err != nil {
		return err
	}

	h.setCurrentScenario(id)
	log.Printf("[Scenarios] Loaded %s", id)
	return nil
}

func (h *Handler) setCurrentScenario(id string) {
	h.mu.Lock()
	h.currentScenario = id
	h.mu.Unlock()
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadDefaultRosterScenario(ctx context.Context) error {
	if err := h.saveStandardConfiguration(ctx); err != nil {
		return err
	}
	return h.saveEmployees(ctx, defaultRoster())
}

func (h *Handler) loadInvalidPartnersScenario(ctx context.Context) error {
	if err := h.saveStandardConfiguration(ctx); err != nil {
		return err
	}

	// Saved directly so the write-side partner check in CreateEmployee
	// does not reject it.
	roster := append(defaultRoster(), benefits.Employee{
		ID:          4,
		FirstName:   "Kevin",
		LastName:    "Durant",
		Salary:      decimal.RequireFromString("101010.10"),
		DateOfBirth: day(1988, time.September, 29),
		Dependents: []benefits.Dependent{
			{ID: 5, FirstName: "Spouse", LastName: "Durant", Relationship: benefits.RelationshipSpouse, DateOfBirth: day(1990, time.April, 1)},
			{ID: 6, FirstName: "DP", LastName: "Durant", Relationship: benefits.RelationshipDomesticPartner, DateOfBirth: day(1989, time.June, 15)},
		},
	})
	return h.saveEmployees(ctx, roster)
}

func (h *Handler) loadNoConfigurationScenario(ctx context.Context) error {
	return h.saveEmployees(ctx, defaultRoster())
}

func (h *Handler) saveStandardConfiguration(ctx context.Context) error {
	cfg, err := h.Configurations.ParseConfiguration(factory.StandardConfigurationJSON())
	if err != nil {
		return fmt.Errorf("failed to parse standard configuration: %w", err)
	}
	if _, err := h.Store.SavePaycheckConfiguration(ctx, *cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

func (h *Handler) saveEmployees(ctx context.Context, employees []benefits.Employee) error {
	for _, emp := range employees {
		if _, err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return fmt.Errorf("failed to create employee %s: %w", emp.FullName(), err)
		}
	}
	return nil
}

// defaultRoster returns the three demo employees:
//   - LeBron James: no dependents, below the high wage threshold
//   - Ja Morant: spouse and two children, all under 50
//   - Michael Jordan: domestic partner over 50, above the threshold
func defaultRoster() []benefits.Employee {
	return []benefits.Employee{
		{
			ID:          1,
			FirstName:   "LeBron",
			LastName:    "James",
			Salary:      decimal.RequireFromString("75420.99"),
			DateOfBirth: day(1984, time.December, 30),
		},
		{
			ID:          2,
			FirstName:   "Ja",
			LastName:    "Morant",
			Salary:      decimal.RequireFromString("92365.22"),
			DateOfBirth: day(1999, time.August, 10),
			Dependents: []benefits.Dependent{
				{ID: 1, FirstName: "Spouse", LastName: "Morant", Relationship: benefits.RelationshipSpouse, DateOfBirth: day(1998, time.March, 3)},
				{ID: 2, FirstName: "Child1", LastName: "Morant", Relationship: benefits.RelationshipChild, DateOfBirth: day(2020, time.June, 23)},
				{ID: 3, FirstName: "Child2", LastName: "Morant", Relationship: benefits.RelationshipChild, DateOfBirth: day(2021, time.May, 18)},
			},
		},
		{
			ID:          3,
			FirstName:   "Michael",
			LastName:    "Jordan",
			Salary:      decimal.RequireFromString("143211.12"),
			DateOfBirth: day(1963, time.February, 17),
			Dependents: []benefits.Dependent{
				{ID: 4, FirstName: "DP", LastName: "Jordan", Relationship: benefits.RelationshipDomesticPartner, DateOfBirth: day(1974, time.January, 2)},
			},
		},
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
