package jobs

import (
	"context"
	"fmt"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/clients"
)

// Job is the per-kind strategy: validation rules, grouping, request
// construction and response reconciliation. Dispatch must return
// exactly one outcome per row of the group.
type Job interface {
	Name() string
	Validate(row *models.Row)
	Plan(rows []models.Row) []models.Group
	Dispatch(ctx context.Context, transport clients.Transport, group models.Group) []models.Outcome

	// Parallelizable reports whether independent groups may be
	// dispatched concurrently.
	Parallelizable() bool
}

// New selects the job strategy for a kind name.
func New(kind, locale string, chunkSize int) (Job, error) {
	switch kind {
	case "prices":
		return NewPriceJob(chunkSize), nil
	case "stock":
		return NewStockJob(chunkSize), nil
	case "packages":
		return NewPackageJob(), nil
	case "product-translations":
		if locale == "" {
			return nil, fmt.Errorf("job %q requires a locale", kind)
		}
		return NewProductTranslationJob(locale), nil
	case "translations":
		if locale == "" {
			return nil, fmt.Errorf("job %q requires a locale", kind)
		}
		return NewTranslationJob(locale), nil
	}
	return nil, fmt.Errorf("unknown job kind: %q", kind)
}

func requestFailed(err error) string {
	return fmt.Sprintf("Request failed: %v", err)
}

func requestFailedStatus(status int) string {
	return fmt.Sprintf("Request failed: %d", status)
}

const invalidPayload = "Invalid response payload."
