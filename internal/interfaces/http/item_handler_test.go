package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/inventory"
	"github.com/estoqueapp/estoque-api/internal/application/usecase"
	"github.com/estoqueapp/estoque-api/internal/infrastructure/memory"
	apphttp "github.com/estoqueapp/estoque-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye una aplicación Fiber completa sobre el store en memoria.
func buildTestApp() *fiber.App {
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:        usecase.NewItemUseCase(store.Items()),
		TransactionUC: usecase.NewTransactionUseCase(store.Transactions()),
		Adjust:        inventory.NewAdjustQuantityUseCase(store.TxRunner()),
	})
	return app
}

// doJSON lanza una petición con body JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createItem siembra un item vía el API y devuelve su id.
func createItem(t *testing.T, app *fiber.App, brand, description string, qty int64) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/items", fiber.Map{
		"brand":           brand,
		"description":     description,
		"currentQuantity": qty,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"idItem"`
		} `json:"data"`
	}
	decode(t, resp, &body)
	require.True(t, body.Success)
	require.NotEmpty(t, body.Data.ID)
	return body.Data.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CrearYListar(t *testing.T) {
	app := buildTestApp()
	id := createItem(t, app, "HONDA", "Civic 2020", 10)

	resp := doJSON(t, app, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []struct {
			ID              string `json:"idItem"`
			Brand           string `json:"brand"`
			CurrentQuantity int64  `json:"currentQuantity"`
		} `json:"data"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, id, body.Data[0].ID)
	assert.Equal(t, "HONDA", body.Data[0].Brand)
	assert.Equal(t, int64(10), body.Data[0].CurrentQuantity)
}

func TestItems_CrearInvalido_400(t *testing.T) {
	app := buildTestApp()

	cases := []fiber.Map{
		{"brand": "", "description": "Civic", "currentQuantity": 1},
		{"brand": "HONDA", "description": "", "currentQuantity": 1},
		{"brand": "HONDA", "description": "Civic", "currentQuantity": -1},
	}
	for i, c := range cases {
		resp := doJSON(t, app, http.MethodPost, "/api/items", c)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "caso %d", i)

		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		decode(t, resp, &body)
		assert.Equal(t, "VALIDATION", body.Code)
		assert.NotEmpty(t, body.Error)
	}
}

func TestItems_GetInexistente_404(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/items/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

// "/api/items/brands" debe resolverse como lista de marcas, no capturarse
// como "/api/items/:idItem".
func TestItems_RutaBrandsAntesQueID(t *testing.T) {
	app := buildTestApp()
	createItem(t, app, "HONDA", "Civic 2020", 10)
	createItem(t, app, "FORD", "Focus hatch", 5)
	createItem(t, app, "HONDA", "Biz 125", 3)

	resp := doJSON(t, app, http.MethodGet, "/api/items/brands", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []string `json:"data"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"FORD", "HONDA"}, body.Data, "marcas distintas y ordenadas")
}

func TestItems_FilterPorMarcasYDescripcion(t *testing.T) {
	app := buildTestApp()
	createItem(t, app, "HONDA", "Civic 2020", 10)
	createItem(t, app, "FORD", "Focus hatch", 5)
	createItem(t, app, "YAMAHA", "Fazer 250", 7)

	// Unión de marcas (OR)
	resp := doJSON(t, app, http.MethodPost, "/api/items/filter", fiber.Map{
		"brand": []string{"HONDA", "FORD"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byBrand struct {
		Data []struct {
			Brand string `json:"brand"`
		} `json:"data"`
	}
	decode(t, resp, &byBrand)
	assert.Len(t, byBrand.Data, 2)

	// Substring case-insensitive sobre descripción
	resp = doJSON(t, app, http.MethodPost, "/api/items/filter", fiber.Map{
		"description": "civic",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byDesc struct {
		Data []struct {
			Description string `json:"description"`
		} `json:"data"`
	}
	decode(t, resp, &byDesc)
	require.Len(t, byDesc.Data, 1)
	assert.Equal(t, "Civic 2020", byDesc.Data[0].Description)

	// Sin coincidencias: lista vacía con 200, no 404
	resp = doJSON(t, app, http.MethodPost, "/api/items/filter", fiber.Map{
		"description": "kombi",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty struct {
		Data []any `json:"data"`
	}
	decode(t, resp, &empty)
	assert.Empty(t, empty.Data)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste de cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_AjusteENTRADA_Completo(t *testing.T) {
	app := buildTestApp()
	id := createItem(t, app, "HONDA", "Civic 2020", 10)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/items/%s/quantity", id), fiber.Map{
		"quantityChange": 5,
		"type":           "ENTRADA",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "15")

	// La cantidad quedó aplicada
	resp = doJSON(t, app, http.MethodGet, "/api/items/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Data struct {
			CurrentQuantity int64 `json:"currentQuantity"`
		} `json:"data"`
	}
	decode(t, resp, &detail)
	assert.Equal(t, int64(15), detail.Data.CurrentQuantity)

	// Y quedó exactamente una transacción con el delta
	resp = doJSON(t, app, http.MethodGet, "/api/transactions/item/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var txs struct {
		Data []struct {
			ID             string `json:"idLog"`
			ItemID         string `json:"idItem"`
			Type           string `json:"type"`
			QuantityChange int64  `json:"quantityChange"`
		} `json:"data"`
	}
	decode(t, resp, &txs)
	require.Len(t, txs.Data, 1)
	assert.Equal(t, id, txs.Data[0].ItemID)
	assert.Equal(t, "ENTRADA", txs.Data[0].Type)
	assert.Equal(t, int64(5), txs.Data[0].QuantityChange)
	assert.NotEmpty(t, txs.Data[0].ID)
}

func TestItems_AjusteSAIDAInsuficiente_400(t *testing.T) {
	app := buildTestApp()
	id := createItem(t, app, "HONDA", "Civic 2020", 3)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/items/%s/quantity", id), fiber.Map{
		"quantityChange": 5,
		"type":           "SAIDA",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	// Sin transacción registrada
	resp = doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	var txs struct {
		Data []any `json:"data"`
	}
	decode(t, resp, &txs)
	assert.Empty(t, txs.Data)
}

func TestItems_AjusteItemInexistente_404(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPut, "/api/items/no-existe/quantity", fiber.Map{
		"quantityChange": 1,
		"type":           "ENTRADA",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItems_AjusteTipoInvalido_400(t *testing.T) {
	app := buildTestApp()
	id := createItem(t, app, "HONDA", "Civic 2020", 10)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/items/%s/quantity", id), fiber.Map{
		"quantityChange": 1,
		"type":           "TRANSFER",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado y transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_DeleteYHuerfanas(t *testing.T) {
	app := buildTestApp()
	id := createItem(t, app, "FORD", "Focus hatch", 5)

	// Genera auditoría antes de borrar
	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/items/%s/quantity", id), fiber.Map{
		"quantityChange": 2,
		"type":           "ENTRADA",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/items/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var del struct {
		Success bool `json:"success"`
	}
	decode(t, resp, &del)
	assert.True(t, del.Success)

	// El item ya no existe
	resp = doJSON(t, app, http.MethodGet, "/api/items/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Pero sus transacciones se conservan (huérfanas)
	resp = doJSON(t, app, http.MethodGet, "/api/transactions/item/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var txs struct {
		Data []any `json:"data"`
	}
	decode(t, resp, &txs)
	assert.Len(t, txs.Data, 1)
}

func TestItems_DeleteInexistente_404(t *testing.T) {
	app := buildTestApp()
	createItem(t, app, "HONDA", "Civic 2020", 10)

	resp := doJSON(t, app, http.MethodDelete, "/api/items/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// El store no cambió
	resp = doJSON(t, app, http.MethodGet, "/api/items", nil)
	var body struct {
		Data []any `json:"data"`
	}
	decode(t, resp, &body)
	assert.Len(t, body.Data, 1)
}

func TestTransactions_ListaGlobal(t *testing.T) {
	app := buildTestApp()
	id1 := createItem(t, app, "HONDA", "Civic 2020", 10)
	id2 := createItem(t, app, "FORD", "Focus hatch", 5)

	for _, id := range []string{id1, id2} {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/items/%s/quantity", id), fiber.Map{
			"quantityChange": 1,
			"type":           "ENTRADA",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var txs struct {
		Data []struct {
			ItemID string `json:"idItem"`
		} `json:"data"`
	}
	decode(t, resp, &txs)
	assert.Len(t, txs.Data, 2)
}
