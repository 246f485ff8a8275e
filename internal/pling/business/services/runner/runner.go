package runner

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/services/jobs"
	"plingsync/internal/pling/clients"
	"plingsync/metrics"
	"plingsync/pkg/logger"
)

// Progress is invoked after each dispatched group with the number of
// rows processed so far. Observability only; correctness does not
// depend on it.
type Progress func(processed, total int)

type Config struct {
	// Workers bounds concurrent dispatch for jobs that allow it.
	// Values below 2 keep the strictly sequential baseline.
	Workers int

	// RequestRateLimit is the outbound call budget per minute.
	RequestRateLimit int

	Progress Progress
}

// Runner drives one job kind end to end: validate all rows, hard-stop
// on any invalid one, plan groups, dispatch each group once (no
// retries) and fold the outcomes into the terminal report.
type Runner struct {
	job       jobs.Job
	transport clients.Transport
	limiter   *rate.Limiter
	workers   int
	progress  Progress
	counters  *metrics.RunMetrics
	log       logger.Logger
}

func NewRunner(job jobs.Job, transport clients.Transport, writer io.Writer, cfg Config) *Runner {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	rateLimit := cfg.RequestRateLimit
	if rateLimit < 1 {
		rateLimit = 1
	}
	return &Runner{
		job:       job,
		transport: transport,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(rateLimit)), rateLimit),
		workers:   workers,
		progress:  cfg.Progress,
		counters:  &metrics.RunMetrics{},
		log:       logger.NewLogger(writer, "[Runner "+job.Name()+"]"),
	}
}

// Counters exposes the live progress counters of the current run.
func (r *Runner) Counters() *metrics.RunMetrics {
	return r.counters
}

func (r *Runner) Run(ctx context.Context, rows []models.Row) *models.RunReport {
	validated := make([]models.Row, len(rows))
	copy(validated, rows)

	var invalid []models.Row
	for i := range validated {
		r.job.Validate(&validated[i])
		if !validated[i].IsValid {
			invalid = append(invalid, validated[i])
		}
	}
	if len(invalid) > 0 {
		r.log.Log("input contains %d invalid rows, nothing was sent", len(invalid))
		return models.NewValidationReport(r.job.Name(), len(rows), invalid)
	}

	groups := r.job.Plan(validated)
	r.log.Log("sending %d rows in %d requests", len(validated), len(groups))

	var outcomes []models.Outcome
	if r.workers > 1 && r.job.Parallelizable() {
		outcomes = r.dispatchParallel(ctx, groups, len(validated))
	} else {
		outcomes = r.dispatchSequential(ctx, groups, len(validated))
	}

	report := models.NewRunReport(r.job.Name(), outcomes)
	metrics.CountRows(r.job.Name(), "sent", report.Sent)
	metrics.CountRows(r.job.Name(), "skipped", report.Skipped)
	metrics.CountRows(r.job.Name(), "failed", report.Failed)
	r.log.Log("run %s: %d sent, %d skipped, %d failed of %d",
		report.Status, report.Sent, report.Skipped, report.Failed, report.Total)
	return report
}

func (r *Runner) dispatchSequential(ctx context.Context, groups []models.Group, total int) []models.Outcome {
	var outcomes []models.Outcome
	processed := 0
	for _, group := range groups {
		groupOutcomes := r.dispatchGroup(ctx, group)
		outcomes = append(outcomes, groupOutcomes...)
		processed += len(group.Rows)
		r.advance(groupOutcomes, processed, total)
	}
	return outcomes
}

func (r *Runner) dispatchParallel(ctx context.Context, groups []models.Group, total int) []models.Outcome {
	var (
		mu        sync.Mutex
		outcomes  []models.Outcome
		processed int
		wg        sync.WaitGroup
	)
	groupCh := make(chan models.Group)

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for group := range groupCh {
				groupOutcomes := r.dispatchGroup(ctx, group)
				mu.Lock()
				outcomes = append(outcomes, groupOutcomes...)
				processed += len(group.Rows)
				done := processed
				mu.Unlock()
				r.advance(groupOutcomes, done, total)
			}
		}()
	}

	for _, group := range groups {
		groupCh <- group
	}
	close(groupCh)
	wg.Wait()
	return outcomes
}

// dispatchGroup runs one group through the job exactly once and
// enforces reconciliation completeness: one outcome per row, none
// missing, none invented.
func (r *Runner) dispatchGroup(ctx context.Context, group models.Group) []models.Outcome {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.FailedAll(group.Rows, requestCancelled)
	}
	outcomes := r.job.Dispatch(ctx, r.transport, group)
	if len(outcomes) > len(group.Rows) {
		outcomes = outcomes[:len(group.Rows)]
	}
	for i := len(outcomes); i < len(group.Rows); i++ {
		outcomes = append(outcomes, models.Failed(group.Rows[i], "Row was not reconciled."))
	}
	return outcomes
}

const requestCancelled = "Request failed: cancelled"

func (r *Runner) advance(groupOutcomes []models.Outcome, processed, total int) {
	r.counters.ProcessedCount.Add(int32(len(groupOutcomes)))
	for _, outcome := range groupOutcomes {
		switch outcome.Status {
		case models.RowSent:
			r.counters.SentCount.Add(1)
		case models.RowSkipped:
			r.counters.SkippedCount.Add(1)
		case models.RowFailed:
			r.counters.FailedCount.Add(1)
		}
	}
	if r.progress != nil {
		r.progress(processed, total)
	}
}
