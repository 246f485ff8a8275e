package batch

import "plingsync/internal/pling/business/models"

// Chunk splits rows into groups of at most size rows, preserving order.
// The concatenation of the returned groups is the input sequence.
func Chunk(rows []models.Row, size int) []models.Group {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	groups := make([]models.Group, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		groups = append(groups, models.Group{Rows: rows[start:end]})
	}
	return groups
}

// Single yields one group per row, for jobs dispatched row by row.
func Single(rows []models.Row) []models.Group {
	groups := make([]models.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, models.Group{Rows: []models.Row{row}})
	}
	return groups
}

// GroupByKey collapses rows sharing a key field into one group each,
// keeping first-seen key order and row order within a group.
func GroupByKey(rows []models.Row, field string) []models.Group {
	var groups []models.Group
	index := make(map[string]int)
	for _, row := range rows {
		key := row.String(field)
		i, seen := index[key]
		if !seen {
			index[key] = len(groups)
			groups = append(groups, models.Group{Key: key})
			i = len(groups) - 1
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}
