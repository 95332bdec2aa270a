package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer levanta un servidor con handlers fijos por ruta.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestListItems_FormatoEstandar(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"data":[
				{"idItem":"a1","brand":"HONDA","description":"Civic 2020","currentQuantity":10,"lastUpdated":"2024-03-01T10:00:00Z"},
				{"idItem":"b2","brand":"FORD","description":"Focus hatch","currentQuantity":5,"lastUpdated":"2024-02-01T10:00:00Z"}
			]}`)
		},
	})

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, "HONDA", items[0].Brand)
	assert.Equal(t, int64(10), items[0].CurrentQuantity)
	assert.Equal(t, 2024, items[0].LastUpdated.Year())
}

// Payloads antiguos usan "id"/"quantity"/"updatedAt"; el cliente los colapsa
// a la vista canónica.
func TestListItems_FormatoLegado(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"data":[
				{"id":"x9","brand":"YAMAHA","description":"Fazer 250","quantity":7,"updatedAt":"2024-01-15T08:30:00Z"}
			]}`)
		},
	})

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "x9", items[0].ID)
	assert.Equal(t, int64(7), items[0].CurrentQuantity)
	assert.False(t, items[0].LastUpdated.IsZero())
}

func TestGetItem_NoExiste(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items/nope": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"error":"item no encontrado","code":"NOT_FOUND"}`)
		},
	})

	_, err := c.GetItem(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetItem_ErrorServidor(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items/boom": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":"error interno"}`)
		},
	})

	_, err := c.GetItem(context.Background(), "boom")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "error interno", apiErr.Message)
}

func TestFilterItems_BodyEnviado(t *testing.T) {
	var got map[string]any
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items/filter": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(w, http.StatusOK, `{"data":[]}`)
		},
	})

	_, err := c.FilterItems(context.Background(), "civic", []string{"HONDA", "FORD"})
	require.NoError(t, err)
	assert.Equal(t, "civic", got["description"])
	assert.Equal(t, []any{"HONDA", "FORD"}, got["brand"])
}

func TestAdjustQuantity_Mensaje(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items/a1/quantity": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ENTRADA", body["type"])
			assert.Equal(t, float64(5), body["quantityChange"])
			writeJSON(w, http.StatusOK, `{"success":true,"message":"cantidad actualizada: 15"}`)
		},
	})

	msg, err := c.AdjustQuantity(context.Background(), "a1", "ENTRADA", 5)
	require.NoError(t, err)
	assert.Equal(t, "cantidad actualizada: 15", msg)
}

func TestListItemTransactions_FormatoLegado(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/transactions/item/a1": func(w http.ResponseWriter, r *http.Request) {
			// Mezcla de claves canónicas y legadas en la misma lista.
			writeJSON(w, http.StatusOK, `{"data":[
				{"idLog":"t1","idItem":"a1","type":"ENTRADA","quantityChange":5,"timestamp":"2024-03-01T10:00:00Z"},
				{"id":"t2","itemId":"a1","type":"SAIDA","quantityChange":-2,"timestamp":"2024-03-02T10:00:00Z"}
			]}`)
		},
	})

	txs, err := c.ListItemTransactions(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, "a1", txs[0].ItemID)
	assert.Equal(t, "t2", txs[1].ID)
	assert.Equal(t, "a1", txs[1].ItemID)
	assert.Equal(t, int64(-2), txs[1].QuantityChange)
}

func TestListBrands_Variantes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []string
	}{
		{"clave data con strings", `{"data":["FORD","HONDA"]}`, []string{"FORD", "HONDA"}},
		{"clave brands con strings", `{"brands":["FORD","HONDA"]}`, []string{"FORD", "HONDA"}},
		{"objetos con campo brand", `{"brands":[{"brand":"FORD"},{"name":"HONDA"},{"value":"YAMAHA"}]}`, []string{"FORD", "HONDA", "YAMAHA"}},
		{"elementos vacíos descartados", `{"data":["FORD","",{"brand":""}]}`, []string{"FORD"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestServer(t, map[string]http.HandlerFunc{
				"/api/items/brands": func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, tc.body)
				},
			})
			brands, err := c.ListBrands(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, brands)
		})
	}
}

func TestDeleteItem(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"/api/items/a1": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			writeJSON(w, http.StatusOK, `{"success":true}`)
		},
	})

	require.NoError(t, c.DeleteItem(context.Background(), "a1"))
}
