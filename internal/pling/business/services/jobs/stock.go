package jobs

import (
	"context"
	"net/http"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/models/dto/response"
	"plingsync/internal/pling/business/services/batch"
	"plingsync/internal/pling/business/services/validate"
	"plingsync/internal/pling/clients"
)

const stockEndpoint = "/api/erp/v2/product/stock"

// StockJob pushes stock rows in batches. The server echoes the accepted
// rows; a dispatched sku missing from the returned set was rejected.
// Stock sheets carry warehouse-specific columns, so rows pass through
// unfiltered and unvalidated beyond NULL normalization.
type StockJob struct {
	chunkSize int
	rules     validate.RuleSet
}

func NewStockJob(chunkSize int) *StockJob {
	return &StockJob{chunkSize: chunkSize, rules: validate.RuleSet{}}
}

func (j *StockJob) Name() string { return "stock" }

func (j *StockJob) Validate(row *models.Row) { j.rules.Apply(row) }

func (j *StockJob) Plan(rows []models.Row) []models.Group {
	return batch.Chunk(rows, j.chunkSize)
}

func (j *StockJob) Parallelizable() bool { return true }

func (j *StockJob) Dispatch(ctx context.Context, transport clients.Transport, group models.Group) []models.Outcome {
	resp, err := transport.Execute(ctx, http.MethodPost, stockEndpoint, j.BuildRequest(group.Rows))
	if err != nil {
		return models.FailedAll(group.Rows, requestFailed(err))
	}
	return j.Interpret(group.Rows, resp)
}

// BuildRequest serializes each row's fields as-is.
func (j *StockJob) BuildRequest(rows []models.Row) []map[string]interface{} {
	body := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		body = append(body, row.Fields)
	}
	return body
}

// Interpret reconciles by sku membership in the returned payload.
func (j *StockJob) Interpret(rows []models.Row, resp *clients.Response) []models.Outcome {
	if !resp.IsOK() {
		return models.FailedAll(rows, requestFailedStatus(resp.StatusCode))
	}
	var body response.StockResponse
	if err := resp.Decode(&body); err != nil || body.Payload == nil {
		return models.FailedAll(rows, invalidPayload)
	}

	returned := make(map[string]bool, len(body.Payload))
	for _, result := range body.Payload {
		returned[result.Sku] = true
	}

	outcomes := make([]models.Outcome, 0, len(rows))
	for _, row := range rows {
		if !returned[row.String("sku")] {
			outcomes = append(outcomes, models.Failed(row, "sync failed"))
			continue
		}
		outcomes = append(outcomes, models.Sent(row))
	}
	return outcomes
}
