package models

import "strconv"

// Row is one tabular record keyed by lower-cased header name. LineNo is
// the source line (the header is line 1, so data starts at 2) and is the
// row's stable identity through batching and reconciliation.
type Row struct {
	LineNo            int
	Fields            map[string]interface{}
	IsValid           bool
	ValidationMessage string
}

func NewRow(lineNo int, cells map[string]string) Row {
	fields := make(map[string]interface{}, len(cells))
	for name, value := range cells {
		fields[name] = value
	}
	return Row{LineNo: lineNo, Fields: fields}
}

// Has reports whether the field is present with a non-nil value.
func (r Row) Has(name string) bool {
	v, ok := r.Fields[name]
	return ok && v != nil
}

// IsEmpty reports whether the field is absent, nil or an empty string.
func (r Row) IsEmpty(name string) bool {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

func (r Row) String(name string) string {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	}
	return ""
}

// Number returns the field as a float64, parsing string cells.
func (r Row) Number(name string) (float64, bool) {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return 0, false
	}
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func (r *Row) Set(name string, value interface{}) {
	if r.Fields == nil {
		r.Fields = make(map[string]interface{})
	}
	r.Fields[name] = value
}

func (r *Row) Invalidate(reason string) {
	r.IsValid = false
	r.ValidationMessage = reason
}
