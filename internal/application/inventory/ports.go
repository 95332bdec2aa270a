package inventory

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de persistencia,
// pasando repositorios atados a esa tx. Garantiza atomicidad entre la
// actualización de cantidad del item y el registro de auditoría.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
