package batch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plingsync/internal/pling/business/models"
)

func makeRows(n int) []models.Row {
	rows := make([]models.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.NewRow(i+2, map[string]string{"sku": fmt.Sprintf("S%d", i)}))
	}
	return rows
}

func TestChunk_SizesAndOrder(t *testing.T) {
	cases := []struct {
		rows, size int
		wantSizes  []int
	}{
		{250, 100, []int{100, 100, 50}},
		{100, 100, []int{100}},
		{1, 100, []int{1}},
		{7, 3, []int{3, 3, 1}},
	}
	for _, tc := range cases {
		groups := Chunk(makeRows(tc.rows), tc.size)
		require.Len(t, groups, len(tc.wantSizes), "rows=%d size=%d", tc.rows, tc.size)

		lineNo := 2
		for i, group := range groups {
			assert.Len(t, group.Rows, tc.wantSizes[i])
			for _, row := range group.Rows {
				assert.Equal(t, lineNo, row.LineNo, "concatenation must preserve order")
				lineNo++
			}
		}
	}
}

func TestChunk_Empty(t *testing.T) {
	assert.Nil(t, Chunk(nil, 100))
}

func TestSingle(t *testing.T) {
	groups := Single(makeRows(3))
	require.Len(t, groups, 3)
	for i, group := range groups {
		require.Len(t, group.Rows, 1)
		assert.Equal(t, i+2, group.Rows[0].LineNo)
	}
}

func TestGroupByKey_FirstSeenOrder(t *testing.T) {
	rows := []models.Row{
		models.NewRow(2, map[string]string{"parent_sku": "P1", "content_sku": "C1"}),
		models.NewRow(3, map[string]string{"parent_sku": "P2", "content_sku": "C2"}),
		models.NewRow(4, map[string]string{"parent_sku": "P1", "content_sku": "C3"}),
	}

	groups := GroupByKey(rows, "parent_sku")
	require.Len(t, groups, 2)

	assert.Equal(t, "P1", groups[0].Key)
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "C1", groups[0].Rows[0].String("content_sku"))
	assert.Equal(t, "C3", groups[0].Rows[1].String("content_sku"))

	assert.Equal(t, "P2", groups[1].Key)
	require.Len(t, groups[1].Rows, 1)
}
