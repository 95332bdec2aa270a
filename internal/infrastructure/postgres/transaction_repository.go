package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla transactions no tiene FK con ON DELETE hacia items: al borrar un
// item sus transacciones quedan huérfanas pero consultables.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción de auditoría.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, item_id, type, quantity_change, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, tx.Type, tx.QuantityChange, tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListAll lista todas las transacciones, más recientes primero.
func (r *TransactionRepo) ListAll() ([]*entity.Transaction, error) {
	query := `
		SELECT id, item_id, type, quantity_change, created_at
		FROM transactions ORDER BY created_at DESC`
	return r.queryTransactions(query)
}

// ListByItem lista las transacciones de un item en orden cronológico.
func (r *TransactionRepo) ListByItem(itemID string) ([]*entity.Transaction, error) {
	query := `
		SELECT id, item_id, type, quantity_change, created_at
		FROM transactions WHERE item_id = $1 ORDER BY created_at ASC`
	return r.queryTransactions(query, itemID)
}

func (r *TransactionRepo) queryTransactions(query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Type, &t.QuantityChange, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
