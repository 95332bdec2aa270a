package entity

import "time"

// Item representa una unidad de stock identificada por marca y descripción.
// Quantity nunca es negativa: los movimientos que la dejarían negativa se
// rechazan, no se recortan a cero.
type Item struct {
	ID          string
	Brand       string
	Description string
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
