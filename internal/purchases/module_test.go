package purchases

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterdesk/counterdesk/internal/catalog"
	"github.com/counterdesk/counterdesk/internal/platform/rest"
	"github.com/counterdesk/counterdesk/internal/shared"
)

// The sales module carries the exhaustive pipeline tests; here we only cover
// what differs on this flavor: endpoints, field names and the fallback detail.
func TestPurchaseSubmitRoundTrip(t *testing.T) {
	var createBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4,"name":"Bolt","unit_price":1.25,"quantity_in_stock":500}]`))
	})
	mux.HandleFunc("GET /purchases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("POST /purchases", func(w http.ResponseWriter, r *http.Request) {
		createBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"id":1,"supplier_name":"Acme Supply","items":[],"total_amount":12.5,"created_by":1,"created_at":"2024-02-01T08:00:00Z"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	restClient := rest.NewClient(srv.URL, "token", 5*time.Second)
	catalogSvc := catalog.NewService(catalog.NewClient(restClient), nil)
	mod := NewModule(NewClient(restClient), catalogSvc, nil)

	ctrl, err := mod.OpenForm(context.Background())
	require.NoError(t, err)

	ctrl.SetCounterpartyName("Acme Supply")
	require.NoError(t, ctrl.Items().SetCatalogRef(0, 4))
	require.NoError(t, ctrl.Items().SetQuantity(0, "10"))

	require.NoError(t, ctrl.Submit(context.Background()))
	assert.JSONEq(t, `{
		"supplier_name": "Acme Supply",
		"supplier_email": null,
		"items": [{"inventory_item_id": 4, "quantity": 10, "unit_cost": 1.25}],
		"notes": null
	}`, string(createBody))
}

func TestPurchaseSubmitFallbackDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4,"name":"Bolt","unit_price":1.25,"quantity_in_stock":500}]`))
	})
	mux.HandleFunc("POST /purchases", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	restClient := rest.NewClient(srv.URL, "token", 5*time.Second)
	catalogSvc := catalog.NewService(catalog.NewClient(restClient), nil)
	mod := NewModule(NewClient(restClient), catalogSvc, nil)

	ctrl, err := mod.OpenForm(context.Background())
	require.NoError(t, err)
	ctrl.SetCounterpartyName("Acme Supply")
	require.NoError(t, ctrl.Items().SetCatalogRef(0, 4))
	require.NoError(t, ctrl.Items().SetQuantity(0, "1"))

	err = ctrl.Submit(context.Background())
	require.Error(t, err)

	var subErr *shared.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, "Failed to create purchase", subErr.Detail)
}
