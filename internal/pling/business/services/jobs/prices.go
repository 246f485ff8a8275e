package jobs

import (
	"context"
	"net/http"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/models/dto/request"
	"plingsync/internal/pling/business/models/dto/response"
	"plingsync/internal/pling/business/services/batch"
	"plingsync/internal/pling/business/services/validate"
	"plingsync/internal/pling/clients"
)

const pricesEndpoint = "/api/erp/v2/product/prices"

// PriceJob pushes price rows in batches. The server answers with a
// positional payload array; a falsy entry at index i means row i of the
// batch was rejected.
type PriceJob struct {
	chunkSize int
	rules     validate.RuleSet
}

func NewPriceJob(chunkSize int) *PriceJob {
	return &PriceJob{
		chunkSize: chunkSize,
		rules: validate.RuleSet{
			Supported: []string{"sku", "regular_price", "sale_price", "price_list", "min_quantity"},
			Checks: []validate.Check{
				checkMinQuantity,
				validate.Required("sku", "regular_price", "price_list"),
				checkRegularPrice,
				checkSalePrice,
			},
		},
	}
}

func (j *PriceJob) Name() string { return "prices" }

func (j *PriceJob) Validate(row *models.Row) { j.rules.Apply(row) }

func (j *PriceJob) Plan(rows []models.Row) []models.Group {
	return batch.Chunk(rows, j.chunkSize)
}

func (j *PriceJob) Parallelizable() bool { return true }

func (j *PriceJob) Dispatch(ctx context.Context, transport clients.Transport, group models.Group) []models.Outcome {
	resp, err := transport.Execute(ctx, http.MethodPost, pricesEndpoint, j.BuildRequest(group.Rows))
	if err != nil {
		return models.FailedAll(group.Rows, requestFailed(err))
	}
	return j.Interpret(group.Rows, resp)
}

// BuildRequest maps a batch onto the outbound payload, positionally
// aligned to the rows.
func (j *PriceJob) BuildRequest(rows []models.Row) []request.PriceUpdate {
	updates := make([]request.PriceUpdate, 0, len(rows))
	for _, row := range rows {
		regular, _ := row.Number("regular_price")
		minQuantity := 1
		if v, ok := row.Number("min_quantity"); ok {
			minQuantity = int(v)
		}
		update := request.PriceUpdate{
			Sku:          row.String("sku"),
			RegularPrice: regular,
			PriceList:    row.String("price_list"),
			MinQuantity:  minQuantity,
		}
		if !row.IsEmpty("sale_price") {
			if sale, ok := row.Number("sale_price"); ok {
				update.SalePrice = &sale
			}
		}
		updates = append(updates, update)
	}
	return updates
}

// Interpret reconciles the positional payload back onto the batch.
func (j *PriceJob) Interpret(rows []models.Row, resp *clients.Response) []models.Outcome {
	if !resp.IsOK() {
		return models.FailedAll(rows, requestFailedStatus(resp.StatusCode))
	}
	var body response.BatchResponse
	if err := resp.Decode(&body); err != nil || body.Payload == nil {
		return models.FailedAll(rows, invalidPayload)
	}

	outcomes := make([]models.Outcome, 0, len(rows))
	for i, row := range rows {
		if i >= len(body.Payload) || isFalsy(body.Payload[i]) {
			outcomes = append(outcomes, models.Failed(row, "sync failed"))
			continue
		}
		outcomes = append(outcomes, models.Sent(row))
	}
	return outcomes
}

func isFalsy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case float64:
		return value == 0
	case string:
		return value == "" || value == "0"
	case []interface{}:
		return len(value) == 0
	case map[string]interface{}:
		return len(value) == 0
	}
	return false
}

// min_quantity defaults to 1 when the column is absent and must be
// numeric when present; it is coerced to an integer either way.
func checkMinQuantity(row *models.Row) string {
	if _, exists := row.Fields["min_quantity"]; !exists {
		row.Set("min_quantity", 1)
		return ""
	}
	value, ok := row.Number("min_quantity")
	if !ok {
		return "Min quantity is not numeric."
	}
	row.Set("min_quantity", int(value))
	return ""
}

func checkRegularPrice(row *models.Row) string {
	value, ok := row.Number("regular_price")
	if !ok {
		return "Regular price is not numeric."
	}
	if value <= 0 {
		return "Regular price is 0 or lower."
	}
	row.Set("regular_price", value)
	return ""
}

func checkSalePrice(row *models.Row) string {
	if row.IsEmpty("sale_price") {
		return ""
	}
	sale, ok := row.Number("sale_price")
	if !ok {
		return "Sale price is not numeric."
	}
	regular, _ := row.Number("regular_price")
	if regular <= sale {
		return "Sale price is higher or equals regular price."
	}
	if sale <= 0 {
		return "Sale price is 0"
	}
	row.Set("sale_price", sale)
	return ""
}
