/*
Package sqlite provides a SQLite-backed implementation of the benefits providers.

PURPOSE:
  Persists employees, their dependents, the paycheck configuration, and
  pay run history. Implements the two interfaces the engine consumes:

    benefits.EmployeeProvider:      GetEmployee, ListEmployees
    benefits.ConfigurationProvider: GetPaycheckConfiguration

KEY TABLES:
  employees:                Employee records (salary stored as decimal text)
  dependents:               One row per dependent, owned by an employee
  paycheck_configurations:  Versioned configuration; the highest version is active
  payruns / payrun_items:   Recorded pay runs and per-employee outcomes

MONEY:
  Amounts are stored as TEXT produced by decimal.String() and parsed back
  with decimal.NewFromString, so no value passes through float64.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, as SQLite allows a single writer.

USAGE:
  store, err := sqlite.New("./data/benefits.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := benefits.NewPaycheckService(store, benefits.NewEmployeeService(store))

SEE ALSO:
  - benefits/provider.go: Interface definitions
  - benefits/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/benefits-engine/benefits"
)

const dateLayout = "2006-01-02"

// Store implements the benefits providers using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		salary TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dependents (
		id INTEGER PRIMARY KEY,
		employee_id INTEGER NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		relationship TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_dependents_employee
		ON dependents(employee_id, position);

	-- Configuration is versioned; reads use the highest version
	CREATE TABLE IF NOT EXISTS paycheck_configurations (
		version INTEGER PRIMARY KEY AUTOINCREMENT,
		base_monthly_benefits_cost TEXT NOT NULL,
		monthly_cost_per_dependent TEXT NOT NULL,
		high_wage_earner_salary_threshold TEXT NOT NULL,
		high_wage_earner_deduction_rate TEXT NOT NULL,
		aged_dependent_monthly_cost TEXT NOT NULL,
		dependent_age_threshold INTEGER NOT NULL,
		checks_per_year INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payruns (
		id TEXT PRIMARY KEY,
		triggered_by TEXT NOT NULL,
		status TEXT NOT NULL,
		employee_count INTEGER NOT NULL DEFAULT 0,
		failed_count INTEGER NOT NULL DEFAULT 0,
		total_gross TEXT NOT NULL DEFAULT '0',
		total_deductions TEXT NOT NULL DEFAULT '0',
		total_net TEXT NOT NULL DEFAULT '0',
		error TEXT,
		started_at TEXT NOT NULL,
		completed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_payruns_started
		ON payruns(started_at DESC);

	CREATE TABLE IF NOT EXISTS payrun_items (
		payrun_id TEXT NOT NULL REFERENCES payruns(id) ON DELETE CASCADE,
		employee_id INTEGER NOT NULL,
		employee_name TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT,
		gross TEXT,
		base_deduction TEXT,
		dependents_deduction TEXT,
		high_wage_earner_deduction TEXT,
		net TEXT,
		PRIMARY KEY (payrun_id, employee_id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE (benefits.EmployeeProvider)
// =============================================================================

// SaveEmployee inserts or replaces an employee and its dependents atomically
// and returns the employee id. Zero ids (employee or dependent) are
// assigned by the database. Dependents not present in emp are removed.
func (s *Store) SaveEmployee(ctx context.Context, emp benefits.Employee) (benefits.EmployeeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := sqlTx.ExecContext(ctx, `
		INSERT INTO employees (id, first_name, last_name, salary, date_of_birth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			salary = excluded.salary,
			date_of_birth = excluded.date_of_birth,
			updated_at = excluded.updated_at
	`,
		nullID(int64(emp.ID)), emp.FirstName, emp.LastName, emp.Salary.String(),
		emp.DateOfBirth.Format(dateLayout), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save employee: %w", err)
	}

	id := emp.ID
	if id == 0 {
		lastID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read employee id: %w", err)
		}
		id = benefits.EmployeeID(lastID)
	}

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM dependents WHERE employee_id = ?", id); err != nil {
		return 0, fmt.Errorf("failed to clear dependents: %w", err)
	}

	for i, d := range emp.Dependents {
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO dependents (id, employee_id, first_name, last_name, relationship, date_of_birth, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			nullID(int64(d.ID)), id, d.FirstName, d.LastName, string(d.Relationship),
			d.DateOfBirth.Format(dateLayout), i,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return 0, fmt.Errorf("%w: dependent %d: %w", benefits.ErrDependentConflict, d.ID, err)
			}
			return 0, fmt.Errorf("failed to save dependent: %w", err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetEmployee retrieves an employee with its dependents. Returns (nil, nil)
// when the id is unknown.
func (s *Store) GetEmployee(ctx context.Context, id benefits.EmployeeID) (*benefits.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, salary, date_of_birth FROM employees WHERE id = ?",
		id,
	)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	deps, err := s.queryDependents(ctx,
		`SELECT id, first_name, last_name, relationship, date_of_birth, employee_id
		 FROM dependents WHERE employee_id = ? ORDER BY position, id`, id)
	if err != nil {
		return nil, err
	}
	for _, d := range deps {
		emp.Dependents = append(emp.Dependents, d.Dependent)
	}
	return &emp, nil
}

// ListEmployees returns all employees ordered by id, with dependents.
func (s *Store) ListEmployees(ctx context.Context) ([]benefits.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, salary, date_of_birth FROM employees ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []benefits.Employee
	index := make(map[benefits.EmployeeID]int)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		index[emp.ID] = len(employees)
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	deps, err := s.queryDependents(ctx,
		`SELECT id, first_name, last_name, relationship, date_of_birth, employee_id
		 FROM dependents ORDER BY employee_id, position, id`)
	if err != nil {
		return nil, err
	}
	for _, d := range deps {
		if i, ok := index[d.EmployeeID]; ok {
			employees[i].Dependents = append(employees[i].Dependents, d.Dependent)
		}
	}

	return employees, nil
}

// DeleteEmployee removes an employee and its dependents. Returns
// benefits.ErrEmployeeNotFound if nothing was deleted.
func (s *Store) DeleteEmployee(ctx context.Context, id benefits.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return benefits.ErrEmployeeNotFound
	}
	return nil
}

// =============================================================================
// DEPENDENT STORE
// =============================================================================

// DependentRecord is a dependent with its owning employee.
type DependentRecord struct {
	benefits.Dependent
	EmployeeID benefits.EmployeeID
}

// GetDependent retrieves a dependent by id. Returns (nil, nil) when unknown.
func (s *Store) GetDependent(ctx context.Context, id benefits.DependentID) (*DependentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deps, err := s.queryDependents(ctx,
		`SELECT id, first_name, last_name, relationship, date_of_birth, employee_id
		 FROM dependents WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(deps) == 0 {
		return nil, nil
	}
	return &deps[0], nil
}

// ListDependents returns all dependents ordered by id.
func (s *Store) ListDependents(ctx context.Context) ([]DependentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryDependents(ctx,
		`SELECT id, first_name, last_name, relationship, date_of_birth, employee_id
		 FROM dependents ORDER BY id`)
}

func (s *Store) queryDependents(ctx context.Context, query string, args ...any) ([]DependentRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dependents: %w", err)
	}
	defer rows.Close()

	var deps []DependentRecord
	for rows.Next() {
		var (
			d            DependentRecord
			relationship string
			dob          string
		)
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &relationship, &dob, &d.EmployeeID); err != nil {
			return nil, fmt.Errorf("failed to scan dependent: %w", err)
		}
		d.Relationship = benefits.Relationship(relationship)
		var err error
		if d.DateOfBirth, err = time.Parse(dateLayout, dob); err != nil {
			return nil, fmt.Errorf("dependent %d has malformed date_of_birth %q: %w", d.ID, dob, err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (benefits.Employee, error) {
	var (
		emp    benefits.Employee
		salary string
		dob    string
	)
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &salary, &dob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emp, err
		}
		return emp, fmt.Errorf("failed to scan employee: %w", err)
	}

	var err error
	if emp.Salary, err = decimal.NewFromString(salary); err != nil {
		return emp, fmt.Errorf("employee %d has malformed salary %q: %w", emp.ID, salary, err)
	}
	if emp.DateOfBirth, err = time.Parse(dateLayout, dob); err != nil {
		return emp, fmt.Errorf("employee %d has malformed date_of_birth %q: %w", emp.ID, dob, err)
	}
	return emp, nil
}

// =============================================================================
// CONFIGURATION STORE (benefits.ConfigurationProvider)
// =============================================================================

// SavePaycheckConfiguration stores cfg as a new version and returns it.
// The new version becomes active immediately.
func (s *Store) SavePaycheckConfiguration(ctx context.Context, cfg benefits.PaycheckConfiguration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO paycheck_configurations
		(base_monthly_benefits_cost, monthly_cost_per_dependent, high_wage_earner_salary_threshold,
		 high_wage_earner_deduction_rate, aged_dependent_monthly_cost, dependent_age_threshold,
		 checks_per_year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		cfg.BaseMonthlyBenefitsCost.String(),
		cfg.MonthlyCostPerDependent.String(),
		cfg.HighWageEarnerAnnualSalaryThreshold.String(),
		cfg.HighWageEarnerAnnualDeductionRate.String(),
		cfg.AdditionalMonthlyCostPerAgedDependent.String(),
		cfg.DependentAgeThreshold,
		cfg.ChecksPerYear,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save paycheck configuration: %w", err)
	}
	version, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(version), nil
}

// GetPaycheckConfiguration returns the active configuration, or (nil, nil)
// when none has been saved.
func (s *Store) GetPaycheckConfiguration(ctx context.Context) (*benefits.PaycheckConfiguration, error) {
	cfg, _, err := s.GetPaycheckConfigurationVersion(ctx)
	return cfg, err
}

// GetPaycheckConfigurationVersion is GetPaycheckConfiguration plus the
// active version number.
func (s *Store) GetPaycheckConfigurationVersion(ctx context.Context) (*benefits.PaycheckConfiguration, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		cfg     benefits.PaycheckConfiguration
		version int
		base, perDependent, threshold, rate, aged string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT version, base_monthly_benefits_cost, monthly_cost_per_dependent,
		       high_wage_earner_salary_threshold, high_wage_earner_deduction_rate,
		       aged_dependent_monthly_cost, dependent_age_threshold, checks_per_year
		FROM paycheck_configurations
		ORDER BY version DESC
		LIMIT 1
	`).Scan(&version, &base, &perDependent, &threshold, &rate, &aged,
		&cfg.DependentAgeThreshold, &cfg.ChecksPerYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load paycheck configuration: %w", err)
	}

	fields := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{base, &cfg.BaseMonthlyBenefitsCost},
		{perDependent, &cfg.MonthlyCostPerDependent},
		{threshold, &cfg.HighWageEarnerAnnualSalaryThreshold},
		{rate, &cfg.HighWageEarnerAnnualDeductionRate},
		{aged, &cfg.AdditionalMonthlyCostPerAgedDependent},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return nil, 0, fmt.Errorf("paycheck configuration v%d has malformed amount %q: %w", version, f.raw, err)
		}
		*f.dst = d
	}

	return &cfg, version, nil
}

// =============================================================================
// PAY RUN STORE
// =============================================================================

// PayrunRecord is a recorded pay run.
type PayrunRecord struct {
	ID              string
	Trigger         string // "manual" or "scheduled"
	Status          string // "running", "completed", "failed"
	EmployeeCount   int
	FailedCount     int
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	Error           string
	StartedAt       time.Time
	CompletedAt     *time.Time
	Items           []PayrunItem
}

// PayrunItem is one employee's outcome within a pay run. Amounts are
// zero unless Status is benefits.StatusSuccess.
type PayrunItem struct {
	EmployeeID              benefits.EmployeeID
	EmployeeName            string
	Status                  string
	Message                 string
	Gross                   decimal.Decimal
	BaseDeduction           decimal.Decimal
	DependentsDeduction     decimal.Decimal
	HighWageEarnerDeduction decimal.Decimal
	Net                     decimal.Decimal
}

// SavePayrun inserts or replaces a pay run and its items atomically.
func (s *Store) SavePayrun(ctx context.Context, r PayrunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	var completedAt *string
	if r.CompletedAt != nil {
		ca := r.CompletedAt.UTC().Format(time.RFC3339)
		completedAt = &ca
	}

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO payruns (id, triggered_by, status, employee_count, failed_count,
		                     total_gross, total_deductions, total_net, error, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			employee_count = excluded.employee_count,
			failed_count = excluded.failed_count,
			total_gross = excluded.total_gross,
			total_deductions = excluded.total_deductions,
			total_net = excluded.total_net,
			error = excluded.error,
			completed_at = excluded.completed_at
	`,
		r.ID, r.Trigger, r.Status, r.EmployeeCount, r.FailedCount,
		r.TotalGross.String(), r.TotalDeductions.String(), r.TotalNet.String(),
		nullString(r.Error), r.StartedAt.UTC().Format(time.RFC3339), completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save pay run: %w", err)
	}

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM payrun_items WHERE payrun_id = ?", r.ID); err != nil {
		return fmt.Errorf("failed to clear pay run items: %w", err)
	}
	for _, it := range r.Items {
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO payrun_items (payrun_id, employee_id, employee_name, status, message,
			                          gross, base_deduction, dependents_deduction,
			                          high_wage_earner_deduction, net)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.ID, it.EmployeeID, it.EmployeeName, it.Status, nullString(it.Message),
			it.Gross.String(), it.BaseDeduction.String(), it.DependentsDeduction.String(),
			it.HighWageEarnerDeduction.String(), it.Net.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to save pay run item: %w", err)
		}
	}

	return sqlTx.Commit()
}

// GetPayrun retrieves a pay run with its items. Returns (nil, nil) when unknown.
func (s *Store) GetPayrun(ctx context.Context, id string) (*PayrunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs, err := s.queryPayruns(ctx, payrunSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	run := runs[0]

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, status, message, gross, base_deduction,
		       dependents_deduction, high_wage_earner_deduction, net
		FROM payrun_items WHERE payrun_id = ? ORDER BY employee_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query pay run items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it      PayrunItem
			message sql.NullString
			gross, base, dependents, highWage, net string
		)
		if err := rows.Scan(&it.EmployeeID, &it.EmployeeName, &it.Status, &message,
			&gross, &base, &dependents, &highWage, &net); err != nil {
			return nil, fmt.Errorf("failed to scan pay run item: %w", err)
		}
		it.Message = message.String
		it.Gross = parseDecimal(gross)
		it.BaseDeduction = parseDecimal(base)
		it.DependentsDeduction = parseDecimal(dependents)
		it.HighWageEarnerDeduction = parseDecimal(highWage)
		it.Net = parseDecimal(net)
		run.Items = append(run.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

// ListPayruns returns pay runs newest first, without items. An empty
// status returns all runs.
func (s *Store) ListPayruns(ctx context.Context, status string) ([]PayrunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status != "" {
		return s.queryPayruns(ctx, payrunSelect+" WHERE status = ? ORDER BY started_at DESC, id", status)
	}
	return s.queryPayruns(ctx, payrunSelect+" ORDER BY started_at DESC, id")
}

const payrunSelect = `
	SELECT id, triggered_by, status, employee_count, failed_count, total_gross,
	       total_deductions, total_net, error, started_at, completed_at
	FROM payruns`

func (s *Store) queryPayruns(ctx context.Context, query string, args ...any) ([]PayrunRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pay runs: %w", err)
	}
	defer rows.Close()

	var runs []PayrunRecord
	for rows.Next() {
		var (
			r                      PayrunRecord
			gross, deductions, net string
			runErr, completedAt    sql.NullString
			startedAt              string
		)
		if err := rows.Scan(&r.ID, &r.Trigger, &r.Status, &r.EmployeeCount, &r.FailedCount,
			&gross, &deductions, &net, &runErr, &startedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pay run: %w", err)
		}
		r.TotalGross = parseDecimal(gross)
		r.TotalDeductions = parseDecimal(deductions)
		r.TotalNet = parseDecimal(net)
		r.Error = runErr.String
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if completedAt.Valid {
			t, _ := time.Parse(time.RFC3339, completedAt.String)
			r.CompletedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"payrun_items", "payruns", "dependents", "employees", "paycheck_configurations"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullID(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
