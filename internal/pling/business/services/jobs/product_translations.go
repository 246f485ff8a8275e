package jobs

import (
	"context"
	"fmt"
	"net/http"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/models/dto/request"
	"plingsync/internal/pling/business/models/dto/response"
	"plingsync/internal/pling/business/services/batch"
	"plingsync/internal/pling/business/services/validate"
	"plingsync/internal/pling/clients"
)

const productSearchEndpoint = "/api/erp/v2/product/search"

var translatableFields = []string{"title", "description", "short_description"}

// ProductTranslationJob writes translated product texts through the
// translator endpoint. Each row is looked up by sku first and diffed
// against the remote texts; rows that would change nothing are skipped
// without a write.
type ProductTranslationJob struct {
	locale string
	rules  validate.RuleSet
}

func NewProductTranslationJob(locale string) *ProductTranslationJob {
	return &ProductTranslationJob{
		locale: locale,
		rules: validate.RuleSet{
			Supported: []string{"sku", "title", "description", "short_description"},
			Checks: []validate.Check{
				validate.Required("sku"),
			},
		},
	}
}

func (j *ProductTranslationJob) Name() string { return "product-translations" }

func (j *ProductTranslationJob) Validate(row *models.Row) { j.rules.Apply(row) }

func (j *ProductTranslationJob) Plan(rows []models.Row) []models.Group {
	return batch.Single(rows)
}

func (j *ProductTranslationJob) Parallelizable() bool { return false }

func (j *ProductTranslationJob) Dispatch(ctx context.Context, transport clients.Transport, group models.Group) []models.Outcome {
	outcomes := make([]models.Outcome, 0, len(group.Rows))
	for _, row := range group.Rows {
		outcomes = append(outcomes, j.dispatchRow(ctx, transport, row))
	}
	return outcomes
}

func (j *ProductTranslationJob) dispatchRow(ctx context.Context, transport clients.Transport, row models.Row) models.Outcome {
	search := request.NewProductSearch(row.String("sku"), j.locale)
	resp, err := transport.Execute(ctx, http.MethodPost, productSearchEndpoint, search)
	if err != nil {
		return models.Failed(row, requestFailed(err))
	}
	if !resp.IsOK() {
		return models.Failed(row, requestFailedStatus(resp.StatusCode))
	}
	var result response.SearchResponse
	if err := resp.Decode(&result); err != nil {
		return models.Failed(row, invalidPayload)
	}
	if len(result.Payload.Results) == 0 {
		return models.Failed(row, "Product not found")
	}
	product := result.Payload.Results[len(result.Payload.Results)-1]

	if !j.NeedsUpdate(row, product) {
		return models.Skipped(row)
	}

	payload := map[string]interface{}{"is_finished": true}
	for _, field := range translatableFields {
		if !row.IsEmpty(field) {
			payload[field] = row.Fields[field]
		}
	}
	endpoint := fmt.Sprintf("/api/erp/v2/translator/product/%d/%s", product.ID, j.locale)
	if _, err := transport.Execute(ctx, http.MethodPost, endpoint, payload); err != nil {
		return models.Failed(row, requestFailed(err))
	}
	return models.Sent(row)
}

// NeedsUpdate diffs the row's translatable fields against the remote
// product; fields the row does not carry are ignored.
func (j *ProductTranslationJob) NeedsUpdate(row models.Row, product response.Product) bool {
	for _, field := range translatableFields {
		if row.IsEmpty(field) {
			continue
		}
		if remoteField(product, field) != row.String(field) {
			return true
		}
	}
	return false
}

func remoteField(product response.Product, field string) string {
	switch field {
	case "title":
		return product.Title
	case "description":
		return product.Description
	case "short_description":
		return product.ShortDescription
	}
	return ""
}
