package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD y de consulta para items. La cantidad solo se
// modifica vía inventory.AdjustQuantityUseCase; aquí solo se fija la inicial.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un nuevo item con su cantidad inicial.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	brand := strings.TrimSpace(in.Brand)
	description := strings.TrimSpace(in.Description)
	if brand == "" || description == "" || in.CurrentQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Brand:       brand,
		Description: description,
		Quantity:    in.CurrentQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// List lista todos los items.
func (uc *ItemUseCase) List() (*dto.ItemListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list), nil
}

// Filter lista items por descripción (substring, case-insensitive) y/o
// conjunto de marcas (OR entre marcas).
func (uc *ItemUseCase) Filter(in dto.FilterItemsRequest) (*dto.ItemListResponse, error) {
	brands := make([]string, 0, len(in.Brand))
	for _, b := range in.Brand {
		if b = strings.TrimSpace(b); b != "" {
			brands = append(brands, b)
		}
	}
	list, err := uc.repo.Filter(strings.TrimSpace(in.Description), brands)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list), nil
}

// Delete elimina un item (hard delete). Sus transacciones se conservan.
func (uc *ItemUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// ListBrands devuelve las marcas distintas presentes en el inventario.
func (uc *ItemUseCase) ListBrands() (*dto.BrandListResponse, error) {
	brands, err := uc.repo.ListBrands()
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []string{}
	}
	return &dto.BrandListResponse{Data: brands}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              it.ID,
		Brand:           it.Brand,
		Description:     it.Description,
		CurrentQuantity: it.Quantity,
		CreatedAt:       it.CreatedAt,
		LastUpdated:     it.UpdatedAt,
	}
}

func toItemListResponse(list []*entity.Item) *dto.ItemListResponse {
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Data: items}
}
