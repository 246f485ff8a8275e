package jobs

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/models/dto/request"
	"plingsync/internal/pling/clients"
)

func packageRows() []models.Row {
	return []models.Row{
		models.NewRow(2, map[string]string{"parent_sku": "P1", "content_sku": "C1", "content_quantity": "2"}),
		models.NewRow(3, map[string]string{"parent_sku": "P1", "content_sku": "C2", "content_quantity": "1"}),
		models.NewRow(4, map[string]string{"parent_sku": "P2", "content_sku": "C3", "content_quantity": "5"}),
	}
}

func TestPackageValidate_Messages(t *testing.T) {
	job := NewPackageJob()
	cases := []struct {
		cells map[string]string
		want  string
	}{
		{map[string]string{"parent_sku": "P1", "content_quantity": "2"}, "Content SKU is missing"},
		{map[string]string{"content_sku": "C1", "content_quantity": "2"}, "Parent SKU is missing"},
		{map[string]string{"parent_sku": "P1", "content_sku": "C1"}, "Quantity is missing"},
	}
	for _, tc := range cases {
		row := models.NewRow(2, tc.cells)
		job.Validate(&row)
		require.False(t, row.IsValid)
		assert.Equal(t, tc.want, row.ValidationMessage)
	}
}

func TestPackagePlan_GroupsByParent(t *testing.T) {
	job := NewPackageJob()
	groups := job.Plan(packageRows())
	require.Len(t, groups, 2)

	assert.Equal(t, "P1", groups[0].Key)
	picklist := job.BuildPicklist(groups[0].Rows)
	require.Len(t, picklist, 2)
	assert.Equal(t, "C1", picklist[0].Sku)
	assert.Equal(t, "C2", picklist[1].Sku)

	assert.Equal(t, "P2", groups[1].Key)
}

func TestPackageDispatch_Success(t *testing.T) {
	job := NewPackageJob()
	var patched *request.PackageUpdate
	transport := &stubTransport{handler: func(method, endpoint string, payload interface{}) (*clients.Response, error) {
		switch endpoint {
		case "/api/v3/product/view":
			return okResponse(t, map[string]interface{}{"payload": map[string]interface{}{"id": 77}}), nil
		case "/api/v3/product":
			update := payload.(request.PackageUpdate)
			patched = &update
			return okResponse(t, map[string]interface{}{}), nil
		}
		t.Fatalf("unexpected endpoint %s", endpoint)
		return nil, nil
	}}

	groups := job.Plan(packageRows())
	outcomes := job.Dispatch(context.Background(), transport, groups[0])

	require.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		assert.Equal(t, models.RowSent, outcome.Status)
	}

	require.NotNil(t, patched)
	assert.Equal(t, int64(77), patched.ID)
	require.Len(t, patched.Picklist, 2)
	assert.Equal(t, "C1", patched.Picklist[0].Sku)

	require.Len(t, transport.calls, 2)
	assert.Equal(t, http.MethodPost, transport.calls[0].method)
	assert.Equal(t, http.MethodPatch, transport.calls[1].method)
}

func TestPackageDispatch_MasterNotFound(t *testing.T) {
	job := NewPackageJob()
	transport := &stubTransport{handler: func(method, endpoint string, payload interface{}) (*clients.Response, error) {
		return okResponse(t, map[string]interface{}{"payload": map[string]interface{}{}}), nil
	}}

	groups := job.Plan(packageRows())
	outcomes := job.Dispatch(context.Background(), transport, groups[0])

	require.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		assert.Equal(t, models.RowFailed, outcome.Status)
		assert.Equal(t, "Master not found.", outcome.Reason)
	}
	assert.Equal(t, 1, transport.callCount(), "lookup failure must short-circuit the patch")
}

func TestPackageDispatch_PatchStatusFailure(t *testing.T) {
	job := NewPackageJob()
	transport := &stubTransport{handler: func(method, endpoint string, payload interface{}) (*clients.Response, error) {
		if endpoint == "/api/v3/product/view" {
			return okResponse(t, map[string]interface{}{"payload": map[string]interface{}{"id": 77}}), nil
		}
		return &clients.Response{StatusCode: http.StatusUnprocessableEntity, Body: nil}, nil
	}}

	groups := job.Plan(packageRows())
	outcomes := job.Dispatch(context.Background(), transport, groups[1])

	require.Len(t, outcomes, 1)
	assert.Equal(t, "Response code 422", outcomes[0].Reason)
}

func TestPackageDispatch_AllErrors(t *testing.T) {
	job := NewPackageJob()
	transport := &stubTransport{handler: func(method, endpoint string, payload interface{}) (*clients.Response, error) {
		if endpoint == "/api/v3/product/view" {
			return okResponse(t, map[string]interface{}{"payload": map[string]interface{}{"id": 77}}), nil
		}
		return okResponse(t, map[string]interface{}{"all_errors": []string{"bad picklist", "unknown sku"}}), nil
	}}

	groups := job.Plan(packageRows())
	outcomes := job.Dispatch(context.Background(), transport, groups[1])

	require.Len(t, outcomes, 1)
	assert.Equal(t, models.RowFailed, outcomes[0].Status)
	assert.Equal(t, "bad picklist\r\nunknown sku", outcomes[0].Reason)
}
