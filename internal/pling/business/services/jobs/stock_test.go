package jobs

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/clients"
)

func TestStockValidate_NormalizesNullOnly(t *testing.T) {
	job := NewStockJob(100)
	row := models.NewRow(2, map[string]string{"sku": "X", "quantity": "NULL"})
	job.Validate(&row)

	require.True(t, row.IsValid)
	assert.False(t, row.Has("quantity"))
}

func TestStockInterpret_MissingSkuFails(t *testing.T) {
	job := NewStockJob(100)
	rows := []models.Row{
		models.NewRow(2, map[string]string{"sku": "X", "quantity": "5"}),
		models.NewRow(3, map[string]string{"sku": "Y", "quantity": "7"}),
	}
	resp := okResponse(t, map[string]interface{}{
		"payload": []map[string]string{{"sku": "X"}},
	})

	outcomes := job.Interpret(rows, resp)
	require.Len(t, outcomes, 2)

	assert.Equal(t, models.RowSent, outcomes[0].Status)
	assert.Equal(t, models.RowFailed, outcomes[1].Status)
	assert.Equal(t, 3, outcomes[1].Row.LineNo)
}

func TestStockInterpret_MissingPayload(t *testing.T) {
	job := NewStockJob(100)
	rows := []models.Row{models.NewRow(2, map[string]string{"sku": "X"})}
	resp := &clients.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}

	outcomes := job.Interpret(rows, resp)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "Invalid response payload.", outcomes[0].Reason)
}

func TestStockDispatch_Endpoint(t *testing.T) {
	job := NewStockJob(100)
	transport := &stubTransport{handler: func(method, endpoint string, payload interface{}) (*clients.Response, error) {
		return okResponse(t, map[string]interface{}{"payload": []map[string]string{{"sku": "X"}}}), nil
	}}
	group := models.Group{Rows: []models.Row{models.NewRow(2, map[string]string{"sku": "X"})}}

	outcomes := job.Dispatch(context.Background(), transport, group)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.RowSent, outcomes[0].Status)

	require.Len(t, transport.calls, 1)
	assert.Equal(t, http.MethodPost, transport.calls[0].method)
	assert.Equal(t, "/api/erp/v2/product/stock", transport.calls[0].endpoint)
}
