package usecase

import (
	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// TransactionUseCase consultas de solo lectura sobre el log de transacciones.
// Las escrituras ocurren únicamente dentro de inventory.AdjustQuantityUseCase.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// ListAll lista todas las transacciones.
func (uc *TransactionUseCase) ListAll() (*dto.TransactionListResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return toTransactionListResponse(list), nil
}

// ListByItem lista las transacciones de un item en orden cronológico.
// Para un item borrado devuelve las huérfanas que existan; nunca 404.
func (uc *TransactionUseCase) ListByItem(itemID string) (*dto.TransactionListResponse, error) {
	list, err := uc.repo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	return toTransactionListResponse(list), nil
}

func toTransactionListResponse(list []*entity.Transaction) *dto.TransactionListResponse {
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionResponse{
			ID:             t.ID,
			ItemID:         t.ItemID,
			Type:           t.Type,
			QuantityChange: t.QuantityChange,
			Timestamp:      t.Timestamp,
		})
	}
	return &dto.TransactionListResponse{Data: items}
}
