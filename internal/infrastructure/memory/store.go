// Package memory implementa los puertos de persistencia sobre mapas en
// memoria protegidos con mutex. Es el driver para desarrollo local sin base
// de datos y para los tests; el TxRunner serializa los ajustes con el lock
// global del store y deshace los cambios si el callback falla.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/estoqueapp/estoque-api/internal/application/inventory"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// Store estado compartido de items y transacciones.
type Store struct {
	mu    sync.RWMutex
	items map[string]entity.Item
	order []string // ids de items en orden de creación
	txs   []entity.Transaction
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{items: make(map[string]entity.Item)}
}

// Items devuelve la vista ItemRepository del store.
func (s *Store) Items() repository.ItemRepository { return &itemRepo{s: s} }

// Transactions devuelve la vista TransactionRepository del store.
func (s *Store) Transactions() repository.TransactionRepository { return &txRepo{s: s} }

// TxRunner devuelve el runner transaccional del store.
func (s *Store) TxRunner() inventory.TxRunner { return &txRunner{s: s} }

// ── Núcleo sin locks (el caller debe tener s.mu) ──────────────────────────────

func (s *Store) createItem(item *entity.Item) error {
	if _, ok := s.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	s.items[item.ID] = *item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *Store) getItem(id string) *entity.Item {
	it, ok := s.items[id]
	if !ok {
		return nil
	}
	cp := it
	return &cp
}

func (s *Store) listItems() []*entity.Item {
	// Más recientes primero, como el ORDER BY created_at DESC del driver SQL.
	list := make([]*entity.Item, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if it, ok := s.items[s.order[i]]; ok {
			cp := it
			list = append(list, &cp)
		}
	}
	return list
}

func (s *Store) filterItems(description string, brands []string) []*entity.Item {
	desc := strings.ToLower(description)
	brandSet := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		brandSet[b] = struct{}{}
	}
	var list []*entity.Item
	for _, it := range s.listItems() {
		if desc != "" && !strings.Contains(strings.ToLower(it.Description), desc) {
			continue
		}
		if len(brandSet) > 0 {
			if _, ok := brandSet[it.Brand]; !ok {
				continue
			}
		}
		list = append(list, it)
	}
	return list
}

func (s *Store) updateQuantity(id string, quantity int64, updatedAt time.Time) error {
	it, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = updatedAt
	s.items[id] = it
	return nil
}

func (s *Store) deleteItem(id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) listBrands() []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, it := range s.items {
		if _, ok := seen[it.Brand]; !ok {
			seen[it.Brand] = struct{}{}
			brands = append(brands, it.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

func (s *Store) createTx(tx *entity.Transaction) {
	s.txs = append(s.txs, *tx)
}

func (s *Store) listTxs() []*entity.Transaction {
	// Más recientes primero (orden inverso de inserción).
	list := make([]*entity.Transaction, 0, len(s.txs))
	for i := len(s.txs) - 1; i >= 0; i-- {
		cp := s.txs[i]
		list = append(list, &cp)
	}
	return list
}

func (s *Store) listTxsByItem(itemID string) []*entity.Transaction {
	// Cronológico (orden de inserción). Incluye huérfanas de items ya borrados.
	var list []*entity.Transaction
	for i := range s.txs {
		if s.txs[i].ItemID == itemID {
			cp := s.txs[i]
			list = append(list, &cp)
		}
	}
	return list
}

// ── Vistas con locking ────────────────────────────────────────────────────────

type itemRepo struct{ s *Store }

var _ repository.ItemRepository = (*itemRepo)(nil)

func (r *itemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.createItem(item)
}

func (r *itemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.getItem(id), nil
}

func (r *itemRepo) GetForUpdate(id string) (*entity.Item, error) {
	// Fuera de una tx no hay fila que bloquear; el TxRunner ya serializa.
	return r.GetByID(id)
}

func (r *itemRepo) List() ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listItems(), nil
}

func (r *itemRepo) Filter(description string, brands []string) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterItems(description, brands), nil
}

func (r *itemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateQuantity(id, quantity, updatedAt)
}

func (r *itemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteItem(id)
}

func (r *itemRepo) ListBrands() ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listBrands(), nil
}

type txRepo struct{ s *Store }

var _ repository.TransactionRepository = (*txRepo)(nil)

func (r *txRepo) Create(tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.createTx(tx)
	return nil
}

func (r *txRepo) ListAll() ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listTxs(), nil
}

func (r *txRepo) ListByItem(itemID string) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listTxsByItem(itemID), nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// txRunner ejecuta fn bajo el lock exclusivo del store. Si fn falla se
// restaura el snapshot previo: todo o nada, igual que el runner de PostgreSQL.
type txRunner struct{ s *Store }

var _ inventory.TxRunner = (*txRunner)(nil)

func (r *txRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapItems := make(map[string]entity.Item, len(r.s.items))
	for k, v := range r.s.items {
		snapItems[k] = v
	}
	snapOrder := append([]string(nil), r.s.order...)
	snapTxs := append([]entity.Transaction(nil), r.s.txs...)

	if err := fn(&lockedItemRepo{s: r.s}, &lockedTxRepo{s: r.s}); err != nil {
		r.s.items = snapItems
		r.s.order = snapOrder
		r.s.txs = snapTxs
		return err
	}
	return nil
}

// lockedItemRepo / lockedTxRepo operan con s.mu ya tomado por el TxRunner
// (RWMutex no es reentrante, no deben volver a bloquear).
type lockedItemRepo struct{ s *Store }

var _ repository.ItemRepository = (*lockedItemRepo)(nil)

func (r *lockedItemRepo) Create(item *entity.Item) error { return r.s.createItem(item) }
func (r *lockedItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.s.getItem(id), nil
}
func (r *lockedItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.s.getItem(id), nil
}
func (r *lockedItemRepo) List() ([]*entity.Item, error) { return r.s.listItems(), nil }
func (r *lockedItemRepo) Filter(description string, brands []string) ([]*entity.Item, error) {
	return r.s.filterItems(description, brands), nil
}
func (r *lockedItemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	return r.s.updateQuantity(id, quantity, updatedAt)
}
func (r *lockedItemRepo) Delete(id string) error        { return r.s.deleteItem(id) }
func (r *lockedItemRepo) ListBrands() ([]string, error) { return r.s.listBrands(), nil }

type lockedTxRepo struct{ s *Store }

var _ repository.TransactionRepository = (*lockedTxRepo)(nil)

func (r *lockedTxRepo) Create(tx *entity.Transaction) error {
	r.s.createTx(tx)
	return nil
}
func (r *lockedTxRepo) ListAll() ([]*entity.Transaction, error) { return r.s.listTxs(), nil }
func (r *lockedTxRepo) ListByItem(itemID string) ([]*entity.Transaction, error) {
	return r.s.listTxsByItem(itemID), nil
}
