package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/benefits-engine/benefits"
	"github.com/warp/benefits-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func morant() benefits.Employee {
	return benefits.Employee{
		ID: 2, FirstName: "Ja", LastName: "Morant",
		Salary: decimal.RequireFromString("92365.22"), DateOfBirth: day(1999, time.August, 10),
		Dependents: []benefits.Dependent{
			{ID: 1, FirstName: "Spouse", LastName: "Morant", Relationship: benefits.RelationshipSpouse, DateOfBirth: day(1998, time.March, 3)},
			{ID: 2, FirstName: "Child1", LastName: "Morant", Relationship: benefits.RelationshipChild, DateOfBirth: day(2020, time.June, 23)},
			{ID: 3, FirstName: "Child2", LastName: "Morant", Relationship: benefits.RelationshipChild, DateOfBirth: day(2021, time.May, 18)},
		},
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestSaveEmployee_RoundTrip(t *testing.T) {
	// GIVEN: An employee with three dependents
	store := newTestStore(t)
	ctx := context.Background()

	// WHEN
	id, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)

	// THEN: Every field, including exact salary digits, survives storage
	assert.Equal(t, benefits.EmployeeID(2), id)
	got, err := store.GetEmployee(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ja Morant", got.FullName())
	assert.Equal(t, "92365.22", got.Salary.StringFixed(2))
	assert.True(t, got.DateOfBirth.Equal(day(1999, time.August, 10)))
	require.Len(t, got.Dependents, 3)
	assert.Equal(t, benefits.RelationshipSpouse, got.Dependents[0].Relationship)
	assert.Equal(t, "Child2", got.Dependents[2].FirstName)
	assert.True(t, got.Dependents[2].DateOfBirth.Equal(day(2021, time.May, 18)))
}

func TestSaveEmployee_AssignsIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp := morant()
	emp.ID = 0
	for i := range emp.Dependents {
		emp.Dependents[i].ID = 0
	}

	id, err := store.SaveEmployee(ctx, emp)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := store.GetEmployee(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Dependents, 3)
	for _, d := range got.Dependents {
		assert.NotZero(t, d.ID)
	}
}

func TestSaveEmployee_ReplacesDependents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)

	// WHEN: Saving again with only the spouse and a raise
	emp := morant()
	emp.Salary = decimal.RequireFromString("100000.00")
	emp.Dependents = emp.Dependents[:1]
	_, err = store.SaveEmployee(ctx, emp)
	require.NoError(t, err)

	// THEN
	got, err := store.GetEmployee(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "100000", got.Salary.String())
	assert.Len(t, got.Dependents, 1)

	dep, err := store.GetDependent(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, dep)
}

func TestSaveEmployee_DependentOwnedByAnotherEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)

	other := benefits.Employee{
		ID: 9, FirstName: "Other", LastName: "Person",
		Salary: decimal.NewFromInt(50000), DateOfBirth: day(1990, time.January, 1),
		Dependents: []benefits.Dependent{
			{ID: 1, FirstName: "Stolen", Relationship: benefits.RelationshipChild, DateOfBirth: day(2015, time.January, 1)},
		},
	}
	_, err = store.SaveEmployee(ctx, other)
	require.Error(t, err)
	assert.ErrorIs(t, err, benefits.ErrDependentConflict)
	assert.True(t, benefits.IsClientError(err))

	// The failed save is rolled back
	got, err := store.GetEmployee(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetEmployee_Unknown(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetEmployee(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestListEmployees_OrderedWithDependents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	lebron := benefits.Employee{
		ID: 1, FirstName: "LeBron", LastName: "James",
		Salary: decimal.RequireFromString("75420.99"), DateOfBirth: day(1984, time.December, 30),
	}
	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)
	_, err = store.SaveEmployee(ctx, lebron)
	require.NoError(t, err)

	employees, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, benefits.EmployeeID(1), employees[0].ID)
	assert.Empty(t, employees[0].Dependents)
	assert.Equal(t, benefits.EmployeeID(2), employees[1].ID)
	assert.Len(t, employees[1].Dependents, 3)
}

func TestDeleteEmployee_CascadesToDependents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)

	require.NoError(t, store.DeleteEmployee(ctx, 2))

	deps, err := store.ListDependents(ctx)
	require.NoError(t, err)
	assert.Empty(t, deps)

	assert.ErrorIs(t, store.DeleteEmployee(ctx, 2), benefits.ErrEmployeeNotFound)
}

// =============================================================================
// DEPENDENTS
// =============================================================================

func TestDependents_CarryOwningEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)

	dep, err := store.GetDependent(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, dep)
	assert.Equal(t, benefits.EmployeeID(2), dep.EmployeeID)
	assert.Equal(t, "Child1", dep.FirstName)

	all, err := store.ListDependents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, benefits.DependentID(1), all[0].ID)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func TestPaycheckConfiguration_AbsentUntilSaved(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.GetPaycheckConfiguration(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestPaycheckConfiguration_LatestVersionIsActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v1, err := store.SavePaycheckConfiguration(ctx, benefits.StandardConfiguration())
	require.NoError(t, err)

	monthly := benefits.StandardConfiguration()
	monthly.ChecksPerYear = 12
	monthly.HighWageEarnerAnnualDeductionRate = decimal.RequireFromString("0.025")
	v2, err := store.SavePaycheckConfiguration(ctx, monthly)
	require.NoError(t, err)
	assert.Greater(t, v2, v1)

	cfg, version, err := store.GetPaycheckConfigurationVersion(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, v2, version)
	assert.Equal(t, 12, cfg.ChecksPerYear)
	assert.Equal(t, "0.025", cfg.HighWageEarnerAnnualDeductionRate.String())
	assert.True(t, cfg.BaseMonthlyBenefitsCost.Equal(decimal.NewFromInt(1000)))
}

func TestStore_DrivesPaycheckService(t *testing.T) {
	// GIVEN: The SQLite store wired as both providers
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)
	_, err = store.SavePaycheckConfiguration(ctx, benefits.StandardConfiguration())
	require.NoError(t, err)

	svc := benefits.NewPaycheckService(store, benefits.NewEmployeeService(store))
	svc.Now = func() time.Time { return day(2025, time.June, 1) }

	// WHEN
	res := svc.ComputePaycheck(ctx, 2)

	// THEN
	require.Equal(t, benefits.StatusSuccess, res.Status)
	assert.Equal(t, "2189.15", res.Data.NetPaycheckSalary().StringFixed(2))
}

func TestCorruptDateOfBirth_IsReported(t *testing.T) {
	// GIVEN: A file-backed store whose rows are damaged outside the store
	path := filepath.Join(t.TempDir(), "benefits.db")
	store, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	_, err = store.SaveEmployee(ctx, morant())
	require.NoError(t, err)
	_, err = store.SavePaycheckConfiguration(ctx, benefits.StandardConfiguration())
	require.NoError(t, err)

	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()

	// WHEN: A dependent's date of birth is unreadable
	_, err = raw.ExecContext(ctx, "UPDATE dependents SET date_of_birth = 'soon' WHERE id = 1")
	require.NoError(t, err)

	// THEN: Reads fail instead of treating the dependent as born in year 1
	_, err = store.GetEmployee(ctx, 2)
	assert.ErrorContains(t, err, `dependent 1 has malformed date_of_birth "soon"`)
	_, err = store.ListDependents(ctx)
	assert.Error(t, err)

	svc := benefits.NewPaycheckService(store, benefits.NewEmployeeService(store))
	res := svc.ComputePaycheck(ctx, 2)
	assert.Equal(t, benefits.StatusInvalidData, res.Status)

	// WHEN: The employee's own date of birth is unreadable
	_, err = raw.ExecContext(ctx, "UPDATE employees SET date_of_birth = '' WHERE id = 2")
	require.NoError(t, err)

	// THEN
	_, err = store.GetEmployee(ctx, 2)
	assert.ErrorContains(t, err, "employee 2 has malformed date_of_birth")
}

// =============================================================================
// PAY RUNS
// =============================================================================

func TestPayrun_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	run := sqlite.PayrunRecord{
		ID:        "run-1",
		Trigger:   "manual",
		Status:    "running",
		StartedAt: started,
	}
	require.NoError(t, store.SavePayrun(ctx, run))

	// WHEN: The run completes with one success and one failure
	completed := started.Add(2 * time.Second)
	run.Status = "completed"
	run.EmployeeCount = 2
	run.FailedCount = 1
	run.TotalGross = decimal.RequireFromString("3552.51")
	run.TotalDeductions = decimal.RequireFromString("1363.36")
	run.TotalNet = decimal.RequireFromString("2189.15")
	run.CompletedAt = &completed
	run.Items = []sqlite.PayrunItem{
		{EmployeeID: 4, EmployeeName: "Too Many", Status: "invalid_data", Message: "too many partners"},
		{
			EmployeeID: 2, EmployeeName: "Ja Morant", Status: "success",
			Gross:                   decimal.RequireFromString("3552.51"),
			BaseDeduction:           decimal.RequireFromString("461.54"),
			DependentsDeduction:     decimal.RequireFromString("830.77"),
			HighWageEarnerDeduction: decimal.RequireFromString("71.05"),
			Net:                     decimal.RequireFromString("2189.15"),
		},
	}
	require.NoError(t, store.SavePayrun(ctx, run))

	// THEN
	got, err := store.GetPayrun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, "manual", got.Trigger)
	assert.Equal(t, 1, got.FailedCount)
	assert.Equal(t, "2189.15", got.TotalNet.StringFixed(2))
	assert.True(t, got.StartedAt.Equal(started))
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completed))

	require.Len(t, got.Items, 2)
	assert.Equal(t, benefits.EmployeeID(2), got.Items[0].EmployeeID)
	assert.Equal(t, "830.77", got.Items[0].DependentsDeduction.StringFixed(2))
	assert.Equal(t, "too many partners", got.Items[1].Message)
	assert.True(t, got.Items[1].Net.IsZero())
}

func TestPayrun_ListNewestFirstAndByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{"completed", "failed", "completed"} {
		require.NoError(t, store.SavePayrun(ctx, sqlite.PayrunRecord{
			ID:        []string{"a", "b", "c"}[i],
			Trigger:   "scheduled",
			Status:    status,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := store.ListPayruns(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	completed, err := store.ListPayruns(ctx, "completed")
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	missing, err := store.GetPayrun(ctx, "zzz")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReset_ClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveEmployee(ctx, morant())
	require.NoError(t, err)
	_, err = store.SavePaycheckConfiguration(ctx, benefits.StandardConfiguration())
	require.NoError(t, err)
	require.NoError(t, store.SavePayrun(ctx, sqlite.PayrunRecord{ID: "r", Trigger: "manual", Status: "completed", StartedAt: time.Now()}))

	require.NoError(t, store.Reset(ctx))

	employees, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
	cfg, err := store.GetPaycheckConfiguration(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)
	runs, err := store.ListPayruns(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, runs)
}
