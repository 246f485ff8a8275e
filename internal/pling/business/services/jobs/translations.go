package jobs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/models/dto/response"
	"plingsync/internal/pling/business/services/batch"
	"plingsync/internal/pling/business/services/validate"
	"plingsync/internal/pling/clients"
)

var translationObjectTypes = map[string]bool{
	"attribute":       true,
	"category":        true,
	"attribute_value": true,
}

// TranslationJob imports attribute, category and attribute-option
// translations. Method and endpoint are selected per row by its
// object_type; the payload sets the named field to the translation in
// the locale column.
type TranslationJob struct {
	locale string
}

func NewTranslationJob(locale string) *TranslationJob {
	return &TranslationJob{locale: locale}
}

func (j *TranslationJob) Name() string { return "translations" }

func (j *TranslationJob) Parallelizable() bool { return false }

func (j *TranslationJob) Plan(rows []models.Row) []models.Group {
	return batch.Single(rows)
}

// Validate keeps the id/object_type/field columns plus the locale
// column, requiring at least three of them before the finer checks run.
func (j *TranslationJob) Validate(row *models.Row) {
	validate.NormalizeNulls(row)
	kept := validate.KeepFields(row, []string{"id", "object_type", "field", j.locale})

	row.IsValid = true
	row.ValidationMessage = ""

	if kept < 3 {
		row.Invalidate("Insufficcient data")
		return
	}

	var reasons []string
	if row.IsEmpty(j.locale) {
		reasons = append(reasons, fmt.Sprintf("Translation in %s is missing.", j.locale))
	}
	if !translationObjectTypes[row.String("object_type")] {
		reasons = append(reasons, fmt.Sprintf("Object type %s is not supported.", row.String("object_type")))
	}
	if len(reasons) > 0 {
		row.Invalidate(strings.Join(reasons, "\r\n"))
	}
}

func (j *TranslationJob) Dispatch(ctx context.Context, transport clients.Transport, group models.Group) []models.Outcome {
	outcomes := make([]models.Outcome, 0, len(group.Rows))
	for _, row := range group.Rows {
		outcomes = append(outcomes, j.dispatchRow(ctx, transport, row))
	}
	return outcomes
}

func (j *TranslationJob) dispatchRow(ctx context.Context, transport clients.Transport, row models.Row) models.Outcome {
	method, endpoint := j.Route(row)
	if method == "" {
		return models.Failed(row, "Could not generate valid payload.")
	}

	payload := map[string]interface{}{
		row.String("field"): row.Fields[j.locale],
		"locale":            j.locale,
	}

	resp, err := transport.Execute(ctx, method, endpoint, payload)
	if err != nil {
		return models.Failed(row, requestFailed(err))
	}

	var reasons []string
	if !resp.IsOK() {
		reasons = append(reasons, requestFailedStatus(resp.StatusCode))
	}
	var errs response.ApiErrors
	if err := resp.Decode(&errs); err == nil {
		reasons = append(reasons, errs.AllErrors...)
	}
	if len(reasons) > 0 {
		return models.Failed(row, strings.Join(reasons, "\r\n"))
	}
	return models.Sent(row)
}

// Route picks method and endpoint by the row's object_type.
func (j *TranslationJob) Route(row models.Row) (method, endpoint string) {
	id := row.String("id")
	switch row.String("object_type") {
	case "attribute":
		return http.MethodPost, fmt.Sprintf("/api/erp/v2/attributes/%s/update", id)
	case "category":
		return http.MethodPatch, fmt.Sprintf("/api/v3/product-categories/%s", id)
	case "attribute_value":
		return http.MethodPost, fmt.Sprintf("/api/erp/v2/attributes/option/%s/update", id)
	}
	return "", ""
}
