package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plingsync/internal/pling/business/models"
	"plingsync/pkg/logger"
)

func render(report *models.RunReport) string {
	var buf bytes.Buffer
	renderReport(logger.NewLogger(&buf, "[test]"), report)
	return buf.String()
}

func TestRenderReport_TranslationsListsEveryRow(t *testing.T) {
	outcomes := []models.Outcome{
		models.Sent(models.NewRow(2, map[string]string{"id": "10", "object_type": "attribute"})),
		models.Failed(models.NewRow(3, map[string]string{"id": "11", "object_type": "category"}),
			"Request failed: 422\r\nfield is read only"),
		models.Sent(models.NewRow(4, map[string]string{"id": "12", "object_type": "attribute"})),
	}
	report := models.NewRunReport("translations", outcomes)

	out := render(report)

	assert.Contains(t, out, "line 2 id=10: sent=yes errors=")
	assert.Contains(t, out, "line 3 id=11: sent=no errors=Request failed: 422")
	assert.Contains(t, out, "field is read only")
	assert.Contains(t, out, "line 4 id=12: sent=yes errors=")
	assert.Contains(t, out, "total 3, sent 2, skipped 0, failed 1")
}

func TestRenderReport_TranslationsTableShownOnFullSuccess(t *testing.T) {
	report := models.NewRunReport("translations", []models.Outcome{
		models.Sent(models.NewRow(2, map[string]string{"id": "10"})),
	})

	out := render(report)

	assert.Contains(t, out, "line 2 id=10: sent=yes")
	assert.NotContains(t, out, "all updates finished successfully")
}

func TestRenderReport_OtherJobsKeepFailureListing(t *testing.T) {
	report := models.NewRunReport("prices", []models.Outcome{
		models.Sent(models.NewRow(2, map[string]string{"sku": "A1"})),
		models.Failed(models.NewRow(3, map[string]string{"sku": "A2"}), "sync failed"),
	})

	out := render(report)

	assert.Contains(t, out, "some updates were not successful:")
	assert.Contains(t, out, "line 3 sku=A2: sync failed")
	assert.NotContains(t, out, "sent=yes")
}

func TestRenderReport_ValidationFailure(t *testing.T) {
	row := models.NewRow(4, map[string]string{"sku": "A1"})
	row.Invalidate("Regular price is 0 or lower.")
	report := models.NewValidationReport("prices", 5, []models.Row{row})

	out := render(report)

	require.Contains(t, out, "your data contains 1 invalid rows, nothing was sent:")
	assert.Contains(t, out, "line 4 sku=A1: Regular price is 0 or lower.")
}
