package models

type OutcomeStatus int

const (
	RowSent OutcomeStatus = iota
	RowSkipped
	RowFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case RowSent:
		return "sent"
	case RowSkipped:
		return "skipped"
	case RowFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the verdict for exactly one dispatched row. Reconciliation
// produces one Outcome per row of a group, never more, never fewer.
type Outcome struct {
	Row    Row
	Status OutcomeStatus
	Reason string
}

func Sent(row Row) Outcome {
	return Outcome{Row: row, Status: RowSent}
}

func Skipped(row Row) Outcome {
	return Outcome{Row: row, Status: RowSkipped}
}

func Failed(row Row, reason string) Outcome {
	return Outcome{Row: row, Status: RowFailed, Reason: reason}
}

// FailedAll marks every row of a group failed with the same reason,
// used when a transport error or a malformed response sinks the whole
// dispatch unit.
func FailedAll(rows []Row, reason string) []Outcome {
	outcomes := make([]Outcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, Failed(row, reason))
	}
	return outcomes
}
