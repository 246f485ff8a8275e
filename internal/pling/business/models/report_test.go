package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunReport_KeepsEveryOutcomeInLineOrder(t *testing.T) {
	outcomes := []Outcome{
		Sent(NewRow(7, map[string]string{"id": "3"})),
		Failed(NewRow(3, map[string]string{"id": "1"}), "field is read only"),
		Skipped(NewRow(5, map[string]string{"id": "2"})),
		Sent(NewRow(2, map[string]string{"id": "0"})),
	}

	report := NewRunReport("translations", outcomes)

	require.Len(t, report.Outcomes, 4, "sent and skipped rows stay in the report alongside failures")
	assert.Equal(t, []int{2, 3, 5, 7}, outcomeLines(report.Outcomes))
	assert.Equal(t, RowSent, report.Outcomes[0].Status)
	assert.Equal(t, RowFailed, report.Outcomes[1].Status)
	assert.Equal(t, "field is read only", report.Outcomes[1].Reason)
	assert.Equal(t, RowSkipped, report.Outcomes[2].Status)

	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 3, report.Failures[0].Row.LineNo)
	assert.Equal(t, RunSyncFailed, report.Status)
}

func TestNewRunReport_AllSentSucceeds(t *testing.T) {
	outcomes := []Outcome{
		Sent(NewRow(2, map[string]string{"sku": "A1"})),
		Sent(NewRow(3, map[string]string{"sku": "A2"})),
	}

	report := NewRunReport("prices", outcomes)

	assert.Equal(t, RunSucceeded, report.Status)
	assert.Equal(t, []int{2, 3}, outcomeLines(report.Outcomes))
	assert.Empty(t, report.Failures)
}

func outcomeLines(outcomes []Outcome) []int {
	lines := make([]int, 0, len(outcomes))
	for _, outcome := range outcomes {
		lines = append(lines, outcome.Row.LineNo)
	}
	return lines
}
