package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cunservicios/portal/apiclient"
	"github.com/cunservicios/portal/apimodel"
	"github.com/stretchr/testify/require"
)

func TestClient_Customers(t *testing.T) {
	var gotPath, gotTenant string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotTenant = r.Header.Get("X-Tenant-ID")
		switch r.URL.Path {
		case "/api/v1/clientes":
			writeJSON(w, http.StatusOK, []apimodel.Customer{{ID: 1, Name: "Ana", AccountNumber: "100-1", Stratum: 3}})
		case "/api/v1/clientes/100 2":
			writeJSON(w, http.StatusOK, apimodel.Customer{
				ID:            2,
				AccountNumber: "100 2",
				Invoices:      []apimodel.InvoiceResponse{{Number: "F-1"}},
			})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Cliente no encontrado"})
		}
	}))
	defer srv.Close()

	store := newStore()
	store.SetActiveTenantID("muni-x")
	c := apiclient.New(srv.URL, store)
	ctx := context.Background()

	customers, err := c.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.Equal(t, "100-1", customers[0].AccountNumber)
	require.Equal(t, "muni-x", gotTenant)

	customer, err := c.GetCustomer(ctx, "100 2")
	require.NoError(t, err)
	require.Equal(t, "/api/v1/clientes/100%202", gotPath)
	require.Len(t, customer.Invoices, 1)

	_, err = c.GetCustomer(ctx, "missing")
	require.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))
}
