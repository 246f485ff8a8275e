package models

// Group is one dispatch unit: a chunk of up to chunk_size rows, a
// single row, or all rows sharing a parent SKU. Key is empty for
// count-based chunks.
type Group struct {
	Key  string
	Rows []Row
}
