package client

import (
	"encoding/json"
	"time"
)

// rawItem payload externo de un item con los alias históricos de campo.
type rawItem struct {
	IDItem          string     `json:"idItem"`
	ID              string     `json:"id"`
	Brand           string     `json:"brand"`
	Description     string     `json:"description"`
	CurrentQuantity *int64     `json:"currentQuantity"`
	Quantity        *int64     `json:"quantity"`
	LastUpdated     *time.Time `json:"lastUpdated"`
	UpdatedAt       *time.Time `json:"updatedAt"`
}

func (r rawItem) normalize() Item {
	it := Item{
		ID:          firstNonEmpty(r.IDItem, r.ID),
		Brand:       r.Brand,
		Description: r.Description,
	}
	if r.CurrentQuantity != nil {
		it.CurrentQuantity = *r.CurrentQuantity
	} else if r.Quantity != nil {
		it.CurrentQuantity = *r.Quantity
	}
	if r.LastUpdated != nil {
		it.LastUpdated = *r.LastUpdated
	} else if r.UpdatedAt != nil {
		it.LastUpdated = *r.UpdatedAt
	}
	return it
}

func normalizeItems(raw []rawItem) []Item {
	list := make([]Item, 0, len(raw))
	for _, r := range raw {
		list = append(list, r.normalize())
	}
	return list
}

// rawTransaction payload externo de una transacción (idLog o id).
type rawTransaction struct {
	IDLog          string    `json:"idLog"`
	ID             string    `json:"id"`
	IDItem         string    `json:"idItem"`
	ItemID         string    `json:"itemId"`
	Type           string    `json:"type"`
	QuantityChange int64     `json:"quantityChange"`
	Timestamp      time.Time `json:"timestamp"`
}

func (r rawTransaction) normalize() Transaction {
	return Transaction{
		ID:             firstNonEmpty(r.IDLog, r.ID),
		ItemID:         firstNonEmpty(r.IDItem, r.ItemID),
		Type:           r.Type,
		QuantityChange: r.QuantityChange,
		Timestamp:      r.Timestamp,
	}
}

// normalizeBrand acepta una marca como string plano o como objeto con alguno
// de los campos históricos brand/name/value.
func normalizeBrand(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Brand string `json:"brand"`
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return firstNonEmpty(obj.Brand, obj.Name, obj.Value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
