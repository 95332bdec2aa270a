package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// AdjustQuantityUseCase aplica cambios de cantidad a un item de forma
// transaccional (ENTRADA, SAIDA, AJUSTE) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback: la cantidad nueva y la transacción
// de auditoría se escriben juntas o no se escribe nada.
type AdjustQuantityUseCase struct {
	txRunner TxRunner
}

// NewAdjustQuantityUseCase construye el caso de uso.
func NewAdjustQuantityUseCase(txRunner TxRunner) *AdjustQuantityUseCase {
	return &AdjustQuantityUseCase{txRunner: txRunner}
}

// AdjustInput entrada para un ajuste de cantidad.
// Para ENTRADA/SAIDA QuantityChange es un delta positivo; para AJUSTE es el
// valor objetivo absoluto (>= 0).
type AdjustInput struct {
	ItemID         string
	Type           string
	QuantityChange int64
}

// Adjust valida la entrada, bloquea la fila del item, aplica el cambio según
// tipo y registra una transacción con el delta efectivo. Devuelve la cantidad
// resultante.
//
// Reglas:
//   - ENTRADA: nueva = actual + q
//   - SAIDA:   nueva = actual - q; ErrInsufficientStock si quedaría negativa
//   - AJUSTE:  nueva = q; el log guarda el delta firmado (q - actual), no el objetivo
func (uc *AdjustQuantityUseCase) Adjust(ctx context.Context, input AdjustInput) (int64, error) {
	// Revalidar en servidor: el cliente valida > 0 pero no se confía en él.
	if input.ItemID == "" {
		return 0, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeENTRADA, entity.MovementTypeSAIDA:
		if input.QuantityChange <= 0 {
			return 0, domain.ErrInvalidInput
		}
	case entity.MovementTypeAJUSTE:
		// Ajustar a cero es legítimo; el objetivo no puede ser negativo.
		if input.QuantityChange < 0 {
			return 0, domain.ErrInvalidInput
		}
	default:
		return 0, domain.ErrInvalidInput
	}

	now := time.Now()
	var newQty int64

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
	) error {
		// Bloquea la fila del item para evitar lost updates entre ajustes concurrentes
		item, err := itemRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		var delta int64
		switch input.Type {
		case entity.MovementTypeENTRADA:
			delta = input.QuantityChange
		case entity.MovementTypeSAIDA:
			if item.Quantity < input.QuantityChange {
				return domain.ErrInsufficientStock
			}
			delta = -input.QuantityChange
		case entity.MovementTypeAJUSTE:
			delta = input.QuantityChange - item.Quantity
		}

		newQty = item.Quantity + delta
		if err := itemRepo.UpdateQuantity(item.ID, newQty, now); err != nil {
			return err
		}
		return txRepo.Create(&entity.Transaction{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			Type:           input.Type,
			QuantityChange: delta,
			Timestamp:      now,
		})
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}
