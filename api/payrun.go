/*
payrun.go - Pay run execution and scheduling

PURPOSE:
  A pay run computes the paycheck of every stored employee against the
  active configuration and records the outcome. Runs are triggered
  manually (POST /api/v1/payruns) or by the scheduler on a fixed interval.

DESIGN:
  - Each run gets a UUID and is saved as "running" before any work starts
  - Employees are processed one at a time through PaycheckService
  - An employee that fails (partner maximum, calculation fault) is recorded
    as a failed item; the run still completes
  - A missing configuration fails the whole run with no items
  - Totals sum successful items only

CONFIGURATION:
  - Interval: Time between scheduled runs (default: 24 hours)
  - Enabled: Whether the scheduler is active (default: false)

USAGE:
  scheduler := NewPayrunScheduler(store, paychecks)
  scheduler.Interval = time.Hour
  scheduler.Enabled = true
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: TriggerPayrun endpoint (manual runs)
  - benefits/paycheck.go: PaycheckService
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/benefits-engine/benefits"
	"github.com/warp/benefits-engine/store/sqlite"
)

// Pay run triggers.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// Pay run statuses.
const (
	PayrunRunning   = "running"
	PayrunCompleted = "completed"
	PayrunFailed    = "failed"
)

// PayrunScheduler executes pay runs on demand and on a timer.
type PayrunScheduler struct {
	Store     *sqlite.Store
	Paychecks *benefits.PaycheckService
	Interval  time.Duration
	Enabled   bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex

	// runMu serializes runs so manual and scheduled runs never overlap.
	runMu sync.Mutex
}

// NewPayrunScheduler creates a new, disabled scheduler.
func NewPayrunScheduler(store *sqlite.Store, paychecks *benefits.PaycheckService) *PayrunScheduler {
	return &PayrunScheduler{
		Store:     store,
		Paychecks: paychecks,
		Interval:  24 * time.Hour,
		Enabled:   false,
	}
}

// Start begins the scheduler. Calling Start on a running scheduler is a no-op.
func (ps *PayrunScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Payrun] Scheduler disabled, not starting")
		return
	}
	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.Interval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)

	go ps.loop(ps.ticker, ps.stop)

	log.Printf("[Payrun] Scheduler started with interval: %v", ps.Interval)
}

// Stop stops the scheduler and waits for an in-flight run to finish.
func (ps *PayrunScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		ps.ticker = nil
		log.Println("[Payrun] Scheduler stopped")
	}
}

func (ps *PayrunScheduler) loop(ticker *time.Ticker, stop <-chan struct{}) {
	defer ps.wg.Done()

	for {
		select {
		case <-ticker.C:
			if _, err := ps.Run(context.Background(), TriggerScheduled); err != nil {
				log.Printf("[Payrun] Scheduled run failed: %v", err)
			}
		case <-stop:
			return
		}
	}
}

// Run executes one pay run and returns its record. The returned error is
// non-nil only when the record itself could not be saved; a run that
// fails for business reasons is returned with Status PayrunFailed.
//
// Cancellation of ctx is ignored so a run is never left in the running
// state when an HTTP client disconnects.
func (ps *PayrunScheduler) Run(ctx context.Context, trigger string) (sqlite.PayrunRecord, error) {
	ctx = context.WithoutCancel(ctx)

	ps.runMu.Lock()
	defer ps.runMu.Unlock()

	run := sqlite.PayrunRecord{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Status:    PayrunRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := ps.Store.SavePayrun(ctx, run); err != nil {
		return run, fmt.Errorf("failed to save pay run: %w", err)
	}

	log.Printf("[Payrun] Started %s run %s", trigger, run.ID)

	if err := ps.process(ctx, &run); err != nil {
		run.Status = PayrunFailed
		run.Error = err.Error()
		log.Printf("[Payrun] Run %s failed: %v", run.ID, err)
	} else {
		run.Status = PayrunCompleted
	}

	completed := time.Now().UTC()
	run.CompletedAt = &completed
	if err := ps.Store.SavePayrun(ctx, run); err != nil {
		return run, fmt.Errorf("failed to update pay run: %w", err)
	}

	log.Printf("[Payrun] Run %s %s: %d employees, %d failed, net %s",
		run.ID, run.Status, run.EmployeeCount, run.FailedCount, run.TotalNet.StringFixed(benefits.CurrencyPlaces))
	return run, nil
}

func (ps *PayrunScheduler) process(ctx context.Context, run *sqlite.PayrunRecord) error {
	cfg, err := ps.Store.GetPaycheckConfiguration(ctx)
	if err != nil || cfg == nil {
		return errors.New(benefits.MessageConfigurationUnavailable)
	}

	// Every stored employee is listed, including ones the partner rule
	// rejects, so they show up as failed items.
	employees, err := ps.Store.ListEmployees(ctx)
	if err != nil {
		return errors.New(benefits.MessageEmployeeUnavailable)
	}

	totalGross, totalDeductions, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
	for _, emp := range employees {
		item := sqlite.PayrunItem{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName(),
		}

		var res benefits.Result[benefits.PaycheckResult]
		if err := benefits.ValidateEmployee(emp); err != nil {
			res = benefits.Failure[benefits.PaycheckResult](benefits.StatusInvalidData, benefits.TooManyPartnersMessage(emp))
		} else {
			res = ps.Paychecks.ComputePaycheckFor(ctx, emp)
		}

		item.Status = res.Status.String()
		if res.OK() {
			p := res.Data
			item.Gross = p.GrossPaycheckSalary
			item.BaseDeduction = p.BaseBenefitsDeduction
			item.DependentsDeduction = p.DependentsDeduction
			item.HighWageEarnerDeduction = p.HighWageEarnerDeduction
			item.Net = p.NetPaycheckSalary()

			totalGross = totalGross.Add(p.GrossPaycheckSalary)
			totalDeductions = totalDeductions.Add(p.TotalBenefitsDeduction())
			totalNet = totalNet.Add(item.Net)
		} else {
			item.Message = res.Message
			run.FailedCount++
		}

		run.Items = append(run.Items, item)
	}

	run.EmployeeCount = len(employees)
	run.TotalGross = totalGross
	run.TotalDeductions = totalDeductions
	run.TotalNet = totalNet
	return nil
}
