package dto

import "time"

// CreateItemRequest entrada para crear un item.
type CreateItemRequest struct {
	Brand           string `json:"brand" validate:"required,min=1,max=100"`
	Description     string `json:"description" validate:"required,min=1,max=200"`
	CurrentQuantity int64  `json:"currentQuantity" validate:"min=0"`
}

// FilterItemsRequest body de POST /api/items/filter. Brand siempre llega como
// lista desde el cliente; varias marcas se combinan con OR.
type FilterItemsRequest struct {
	Brand       []string `json:"brand,omitempty"`
	Description string   `json:"description,omitempty"`
}

// AdjustQuantityRequest body de PUT /api/items/{idItem}/quantity.
// Para ENTRADA/SAIDA QuantityChange es un delta positivo; para AJUSTE es el
// valor objetivo absoluto (>= 0).
type AdjustQuantityRequest struct {
	QuantityChange int64  `json:"quantityChange"`
	Type           string `json:"type"`
}

// ItemResponse salida de un item. Los nombres de campo siguen el contrato
// del API original (idItem, currentQuantity, lastUpdated).
type ItemResponse struct {
	ID              string    `json:"idItem"`
	Brand           string    `json:"brand"`
	Description     string    `json:"description"`
	CurrentQuantity int64     `json:"currentQuantity"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// ItemListResponse envoltura {data: [...]} de los listados.
type ItemListResponse struct {
	Data []ItemResponse `json:"data"`
}

// ItemDetailResponse envoltura {data: {...}} del detalle.
type ItemDetailResponse struct {
	Data ItemResponse `json:"data"`
}

// CreateItemResponse salida de la creación.
type CreateItemResponse struct {
	Success bool         `json:"success"`
	Data    ItemResponse `json:"data"`
}

// AdjustQuantityResponse salida del ajuste de cantidad.
type AdjustQuantityResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteItemResponse salida del borrado.
type DeleteItemResponse struct {
	Success bool `json:"success"`
}

// BrandListResponse marcas distintas presentes en el inventario.
type BrandListResponse struct {
	Data []string `json:"data"`
}
