package repository

import "github.com/estoqueapp/estoque-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para el log de
// transacciones. Append-only: las transacciones nunca se modifican ni borran.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	ListAll() ([]*entity.Transaction, error)
	// ListByItem devuelve las transacciones de un item en orden cronológico.
	// Un item desconocido o ya borrado devuelve las huérfanas que existan.
	ListByItem(itemID string) ([]*entity.Transaction, error)
}
