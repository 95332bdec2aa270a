package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, brand, description, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Brand, item.Description, item.Quantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el item y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.get(id, true)
}

func (r *ItemRepo) get(id string, forUpdate bool) (*entity.Item, error) {
	query := `
		SELECT id, brand, description, quantity, created_at, updated_at
		FROM items WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Brand, &it.Description, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List lista todos los items, más recientes primero.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `
		SELECT id, brand, description, quantity, created_at, updated_at
		FROM items ORDER BY created_at DESC`
	return r.queryItems(query)
}

// Filter lista items por substring de descripción (case-insensitive) y/o conjunto
// de marcas (OR entre marcas). Sin filtros devuelve todos los items.
func (r *ItemRepo) Filter(description string, brands []string) ([]*entity.Item, error) {
	query := `
		SELECT id, brand, description, quantity, created_at, updated_at
		FROM items WHERE 1=1`
	args := []any{}
	pos := 1
	if description != "" {
		query += fmt.Sprintf(" AND description ILIKE $%d", pos)
		args = append(args, "%"+description+"%")
		pos++
	}
	if len(brands) > 0 {
		query += fmt.Sprintf(" AND brand = ANY($%d)", pos)
		args = append(args, brands)
		pos++
	}
	query += " ORDER BY created_at DESC"
	return r.queryItems(query, args...)
}

func (r *ItemRepo) queryItems(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Brand, &it.Description, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateQuantity actualiza cantidad y updated_at de un item.
func (r *ItemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un item por ID (hard delete). Las transacciones asociadas se conservan.
func (r *ItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBrands devuelve las marcas distintas presentes en items, ordenadas.
func (r *ItemRepo) ListBrands() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT brand FROM items ORDER BY brand`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var brands []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}
