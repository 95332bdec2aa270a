package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeENTRADA = "ENTRADA" // entrada de stock
	MovementTypeSAIDA   = "SAIDA"   // salida de stock
	MovementTypeAJUSTE  = "AJUSTE"  // ajuste a un valor absoluto
)

// ValidMovementType indica si s es un tipo de movimiento conocido.
func ValidMovementType(s string) bool {
	return s == MovementTypeENTRADA || s == MovementTypeSAIDA || s == MovementTypeAJUSTE
}

// Transaction registro inmutable de auditoría de un cambio de cantidad.
// QuantityChange es siempre el delta firmado efectivamente aplicado,
// también para AJUSTE (no el valor objetivo).
type Transaction struct {
	ID             string
	ItemID         string
	Type           string
	QuantityChange int64
	Timestamp      time.Time
}
