// Package client implementa el cliente HTTP de la API de estoque.
//
// Es la única frontera de normalización: las variantes de payload que los
// clientes históricos toleraban repartidas por la UI (idLog vs id, idItem vs
// id, {brands} vs {data}, marcas como string o como objeto) se colapsan aquí,
// una sola vez, a los tipos fijos Item, Transaction y string.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound respuesta 404 del servidor. Los callers lo usan para distinguir
// "no existe" de un fallo duro.
var ErrNotFound = errors.New("recurso no encontrado")

// APIError error devuelto por el servidor con status distinto de 2xx/404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Item vista normalizada de un item.
type Item struct {
	ID              string
	Brand           string
	Description     string
	CurrentQuantity int64
	LastUpdated     time.Time
}

// Transaction vista normalizada de una transacción de auditoría.
type Transaction struct {
	ID             string
	ItemID         string
	Type           string
	QuantityChange int64
	Timestamp      time.Time
}

// Client consume la API de estoque.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New crea un cliente para la URL base dada (ej. http://localhost:8080).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

// ListItems lista todos los items.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var out struct {
		Data []rawItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &out); err != nil {
		return nil, err
	}
	return normalizeItems(out.Data), nil
}

// GetItem obtiene un item por ID. Devuelve ErrNotFound si no existe.
func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	var out struct {
		Data rawItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/items/"+id, nil, &out); err != nil {
		return nil, err
	}
	it := out.Data.normalize()
	return &it, nil
}

// FilterItems filtra por substring de descripción y/o conjunto de marcas.
// Las marcas van siempre como lista (OR entre ellas), como espera el servidor.
func (c *Client) FilterItems(ctx context.Context, description string, brands []string) ([]Item, error) {
	body := map[string]any{}
	if description != "" {
		body["description"] = description
	}
	if len(brands) > 0 {
		body["brand"] = brands
	}
	var out struct {
		Data []rawItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/items/filter", body, &out); err != nil {
		return nil, err
	}
	return normalizeItems(out.Data), nil
}

// CreateItem crea un item con su cantidad inicial.
func (c *Client) CreateItem(ctx context.Context, brand, description string, quantity int64) (*Item, error) {
	body := map[string]any{
		"brand":           brand,
		"description":     description,
		"currentQuantity": quantity,
	}
	var out struct {
		Data rawItem `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/items", body, &out); err != nil {
		return nil, err
	}
	it := out.Data.normalize()
	return &it, nil
}

// AdjustQuantity aplica un movimiento ENTRADA/SAIDA/AJUSTE al item.
// Devuelve el mensaje del servidor.
func (c *Client) AdjustQuantity(ctx context.Context, id, movType string, quantityChange int64) (string, error) {
	body := map[string]any{
		"quantityChange": quantityChange,
		"type":           movType,
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/items/"+id+"/quantity", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// DeleteItem borra un item. Devuelve ErrNotFound si no existe.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+id, nil, nil)
}

// ListTransactions lista todas las transacciones.
func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	return c.listTransactions(ctx, "/api/transactions")
}

// ListItemTransactions lista las transacciones de un item.
func (c *Client) ListItemTransactions(ctx context.Context, itemID string) ([]Transaction, error) {
	return c.listTransactions(ctx, "/api/transactions/item/"+itemID)
}

func (c *Client) listTransactions(ctx context.Context, path string) ([]Transaction, error) {
	var out struct {
		Data []rawTransaction `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	list := make([]Transaction, 0, len(out.Data))
	for _, t := range out.Data {
		list = append(list, t.normalize())
	}
	return list, nil
}

// ListBrands lista las marcas distintas. Acepta tanto {brands: [...]} como
// {data: [...]}, con elementos string u objeto.
func (c *Client) ListBrands(ctx context.Context) ([]string, error) {
	var out struct {
		Brands []json.RawMessage `json:"brands"`
		Data   []json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/items/brands", nil, &out); err != nil {
		return nil, err
	}
	raw := out.Brands
	if raw == nil {
		raw = out.Data
	}
	brands := make([]string, 0, len(raw))
	for _, r := range raw {
		if b := normalizeBrand(r); b != "" {
			brands = append(brands, b)
		}
	}
	return brands, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("codificar body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}

// decodeErrorMessage extrae el mensaje de un cuerpo de error {error} o {message}.
func decodeErrorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return "error desconocido"
	}
	if body.Error != "" {
		return body.Error
	}
	if body.Message != "" {
		return body.Message
	}
	return "error desconocido"
}
