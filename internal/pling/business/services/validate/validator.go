package validate

import (
	"fmt"
	"strings"

	"plingsync/internal/pling/business/models"
)

// Check inspects one row and returns a reason when the row is invalid,
// or an empty string. Checks may coerce field values (the single
// mutation a row sees after extraction).
type Check func(row *models.Row) string

// RuleSet is the per-job-kind validation strategy. Supported limits the
// row to the fields the job declares relevant (nil keeps everything);
// Checks run in order and the first failing one wins unless CollectAll
// is set, in which case every reason is gathered.
type RuleSet struct {
	Supported  []string
	Checks     []Check
	CollectAll bool
}

const noValidFields = "No valid fields found in this line."

// Apply validates one row in place. Every row leaves with IsValid set
// and, when invalid, a non-empty ValidationMessage.
func (rs RuleSet) Apply(row *models.Row) {
	NormalizeNulls(row)

	if rs.Supported != nil {
		if kept := KeepFields(row, rs.Supported); kept == 0 {
			row.Invalidate(noValidFields)
			return
		}
	}

	row.IsValid = true
	row.ValidationMessage = ""

	var reasons []string
	for _, check := range rs.Checks {
		if reason := check(row); reason != "" {
			if !rs.CollectAll {
				row.Invalidate(reason)
				return
			}
			reasons = append(reasons, reason)
		}
	}
	if len(reasons) > 0 {
		row.Invalidate(strings.Join(reasons, "\r\n"))
	}
}

// NormalizeNulls turns the sentinel "NULL" cell value into a true null.
func NormalizeNulls(row *models.Row) {
	for name, value := range row.Fields {
		if s, ok := value.(string); ok && s == "NULL" {
			row.Fields[name] = nil
		}
	}
}

// KeepFields drops every field the job did not declare and reports how
// many declared fields the row actually carries.
func KeepFields(row *models.Row, supported []string) int {
	keep := make(map[string]bool, len(supported))
	for _, name := range supported {
		keep[name] = true
	}
	kept := 0
	for name := range row.Fields {
		if !keep[name] {
			delete(row.Fields, name)
			continue
		}
		kept++
	}
	return kept
}

// Required fails on the first declared field that is absent or empty.
func Required(fields ...string) Check {
	return func(row *models.Row) string {
		for _, field := range fields {
			if row.IsEmpty(field) {
				return fmt.Sprintf("Field %s does not exist or is empty.", field)
			}
		}
		return ""
	}
}

// NonEmpty fails with a job-specific message when the field is absent
// or empty.
func NonEmpty(field, reason string) Check {
	return func(row *models.Row) string {
		if row.IsEmpty(field) {
			return reason
		}
		return ""
	}
}

// Numeric coerces the field to float64, failing when it does not parse.
// Absent or empty fields pass untouched.
func Numeric(field, label string) Check {
	return func(row *models.Row) string {
		if row.IsEmpty(field) {
			return ""
		}
		value, ok := row.Number(field)
		if !ok {
			return fmt.Sprintf("%s is not numeric.", label)
		}
		row.Set(field, value)
		return ""
	}
}
