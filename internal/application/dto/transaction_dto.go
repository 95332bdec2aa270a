package dto

import "time"

// TransactionResponse salida de una transacción de auditoría.
// QuantityChange es el delta firmado aplicado, también para AJUSTE.
type TransactionResponse struct {
	ID             string    `json:"idLog"`
	ItemID         string    `json:"idItem"`
	Type           string    `json:"type"`
	QuantityChange int64     `json:"quantityChange"`
	Timestamp      time.Time `json:"timestamp"`
}

// TransactionListResponse envoltura {data: [...]} del log.
type TransactionListResponse struct {
	Data []TransactionResponse `json:"data"`
}
