package jobs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/models/dto/request"
	"plingsync/internal/pling/business/models/dto/response"
	"plingsync/internal/pling/business/services/batch"
	"plingsync/internal/pling/business/services/validate"
	"plingsync/internal/pling/clients"
)

const (
	productViewEndpoint  = "/api/v3/product/view"
	productPatchEndpoint = "/api/v3/product"
)

const masterNotFound = "Master not found."

// PackageJob replaces master products' picklists. Rows sharing a
// parent_sku collapse into one group; each group needs two calls, a
// lookup of the master product's id and then the patch. A failed lookup
// short-circuits the patch for that group only.
type PackageJob struct {
	rules validate.RuleSet
}

func NewPackageJob() *PackageJob {
	return &PackageJob{
		rules: validate.RuleSet{
			Supported: []string{"parent_sku", "content_sku", "content_quantity"},
			Checks: []validate.Check{
				validate.NonEmpty("content_sku", "Content SKU is missing"),
				validate.NonEmpty("parent_sku", "Parent SKU is missing"),
				validate.NonEmpty("content_quantity", "Quantity is missing"),
			},
		},
	}
}

func (j *PackageJob) Name() string { return "packages" }

func (j *PackageJob) Validate(row *models.Row) { j.rules.Apply(row) }

func (j *PackageJob) Plan(rows []models.Row) []models.Group {
	return batch.GroupByKey(rows, "parent_sku")
}

func (j *PackageJob) Parallelizable() bool { return false }

func (j *PackageJob) Dispatch(ctx context.Context, transport clients.Transport, group models.Group) []models.Outcome {
	resp, err := transport.Execute(ctx, http.MethodPost, productViewEndpoint, request.ProductView{Sku: group.Key})
	if err != nil {
		return models.FailedAll(group.Rows, requestFailed(err))
	}
	if !resp.IsOK() {
		return models.FailedAll(group.Rows, masterNotFound)
	}
	var view response.ViewResponse
	if err := resp.Decode(&view); err != nil || view.Payload == nil || view.Payload.ID == nil {
		return models.FailedAll(group.Rows, masterNotFound)
	}

	payload := request.PackageUpdate{
		ID:       *view.Payload.ID,
		Picklist: j.BuildPicklist(group.Rows),
	}
	resp, err = transport.Execute(ctx, http.MethodPatch, productPatchEndpoint, payload)
	if err != nil {
		return models.FailedAll(group.Rows, requestFailed(err))
	}
	if !resp.IsOK() {
		return models.FailedAll(group.Rows, fmt.Sprintf("Response code %d", resp.StatusCode))
	}

	var errs response.ApiErrors
	if err := resp.Decode(&errs); err == nil && len(errs.AllErrors) > 0 {
		return models.FailedAll(group.Rows, strings.Join(errs.AllErrors, "\r\n"))
	}

	outcomes := make([]models.Outcome, 0, len(group.Rows))
	for _, row := range group.Rows {
		outcomes = append(outcomes, models.Sent(row))
	}
	return outcomes
}

// BuildPicklist accumulates the group's {sku, quantity} pairs in row
// order.
func (j *PackageJob) BuildPicklist(rows []models.Row) []request.PickItem {
	picklist := make([]request.PickItem, 0, len(rows))
	for _, row := range rows {
		picklist = append(picklist, request.PickItem{
			Sku:      row.String("content_sku"),
			Quantity: row.Fields["content_quantity"],
		})
	}
	return picklist
}
