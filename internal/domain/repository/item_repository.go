package repository

import (
	"time"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el item no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
	// Filter: substring case-insensitive sobre description y pertenencia al
	// conjunto de brands (OR entre marcas). Parámetros vacíos no filtran.
	Filter(description string, brands []string) ([]*entity.Item, error)
	UpdateQuantity(id string, quantity int64, updatedAt time.Time) error
	// Delete es hard delete; devuelve domain.ErrNotFound si el item no existe.
	// Las transacciones asociadas se conservan (huérfanas).
	Delete(id string) error
	// ListBrands devuelve las marcas distintas presentes, ordenadas.
	ListBrands() ([]string, error)
}
