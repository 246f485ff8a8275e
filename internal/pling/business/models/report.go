package models

import "sort"

type RunStatus int

const (
	RunSucceeded RunStatus = iota
	RunValidationFailed
	RunSyncFailed
)

func (s RunStatus) String() string {
	switch s {
	case RunSucceeded:
		return "succeeded"
	case RunValidationFailed:
		return "validation failed"
	case RunSyncFailed:
		return "sync failed"
	}
	return "unknown"
}

// RunReport is the terminal result of one invocation. It is built once
// after the last batch and never mutated afterwards.
type RunReport struct {
	Job     string
	Status  RunStatus
	Total   int
	Sent    int
	Skipped int
	Failed  int

	// Invalid lists every row that failed validation, in line order.
	// Set only when Status is RunValidationFailed.
	Invalid []Row

	// Outcomes carries every dispatched row's outcome in line order, so
	// callers can render per-row results.
	Outcomes []Outcome

	// Failures lists every failed outcome ordered by line number.
	Failures []Outcome
}

// NewValidationReport builds the hard-stop report: every invalid row,
// no network activity.
func NewValidationReport(job string, total int, invalid []Row) *RunReport {
	sorted := make([]Row, len(invalid))
	copy(sorted, invalid)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LineNo < sorted[j].LineNo })
	return &RunReport{
		Job:     job,
		Status:  RunValidationFailed,
		Total:   total,
		Failed:  len(sorted),
		Invalid: sorted,
	}
}

// NewRunReport aggregates outcomes into the final report. Failures are
// ordered by line number so the report is deterministic regardless of
// dispatch order.
func NewRunReport(job string, outcomes []Outcome) *RunReport {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Row.LineNo < sorted[j].Row.LineNo })

	report := &RunReport{Job: job, Total: len(sorted), Outcomes: sorted}
	for _, outcome := range sorted {
		switch outcome.Status {
		case RowSent:
			report.Sent++
		case RowSkipped:
			report.Skipped++
		case RowFailed:
			report.Failed++
			report.Failures = append(report.Failures, outcome)
		}
	}
	if report.Failed > 0 {
		report.Status = RunSyncFailed
	}
	return report
}
