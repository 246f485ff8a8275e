package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row is one extracted sheet line: the 1-based source line number and
// the cells keyed by lower-cased header name. Data starts at line 2,
// line 1 being the header.
type Row struct {
	LineNo int
	Cells  map[string]string
}

// Processor reads a delimited sheet export into rows. Legacy ERP
// exports come in Windows-1251 or Latin-1, so the source encoding is
// configurable.
type Processor struct {
	comma   rune
	decoder *encoding.Decoder
}

func NewProcessor(comma rune, sourceEncoding string) (*Processor, error) {
	p := &Processor{comma: comma}
	if p.comma == 0 {
		p.comma = ','
	}
	switch strings.ToLower(sourceEncoding) {
	case "", "utf-8", "utf8":
	case "windows-1251", "cp1251":
		p.decoder = charmap.Windows1251.NewDecoder()
	case "latin-1", "latin1", "iso-8859-1":
		p.decoder = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported source encoding: %q", sourceEncoding)
	}
	return p, nil
}

// Extract reads the whole sheet. The header row is consumed, header
// names are lower-cased, unnamed columns are ignored and blank lines
// are skipped without consuming a line number.
func (p *Processor) Extract(reader io.Reader) ([]Row, error) {
	if p.decoder != nil {
		reader = transform.NewReader(reader, p.decoder)
	}
	csvReader := csv.NewReader(reader)
	csvReader.Comma = p.comma
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheet read error: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	headers := make(map[int]string)
	for i, name := range allRows[0] {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			headers[i] = name
		}
	}

	var rows []Row
	lineNo := 2
	for _, line := range allRows[1:] {
		if isBlank(line) {
			continue
		}
		cells := make(map[string]string, len(headers))
		for i, name := range headers {
			if i < len(line) {
				cells[name] = line[i]
			} else {
				cells[name] = ""
			}
		}
		rows = append(rows, Row{LineNo: lineNo, Cells: cells})
		lineNo++
	}
	return rows, nil
}

func isBlank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
