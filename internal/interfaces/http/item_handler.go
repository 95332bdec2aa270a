package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/inventory"
	"github.com/estoqueapp/estoque-api/internal/application/usecase"
	"github.com/estoqueapp/estoque-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP para items.
type ItemHandler struct {
	uc     *usecase.ItemUseCase
	adjust *inventory.AdjustQuantityUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, adjust *inventory.AdjustQuantityUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, adjust: adjust}
}

// List godoc
// @Summary      Listar todos los items
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.ItemListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		log.Error().Err(err).Msg("listar items")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         items
// @Produce      json
// @Param        idItem  path  string  true  "ID del item"
// @Success      200  {object}  dto.ItemDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{idItem} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("idItem")
	out, err := h.uc.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("obtener item")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item no encontrado", Code: "NOT_FOUND"})
	}
	return c.JSON(dto.ItemDetailResponse{Data: *out})
}

// Filter godoc
// @Summary      Filtrar items por marca y/o descripción
// @Description  Varias marcas se combinan con OR; description es substring case-insensitive.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FilterItemsRequest  true  "Filtros"
// @Success      200   {object}  dto.ItemListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/filter [post]
func (h *ItemHandler) Filter(c *fiber.Ctx) error {
	var in dto.FilterItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", Code: "INVALID_BODY"})
	}
	out, err := h.uc.Filter(in)
	if err != nil {
		log.Error().Err(err).Msg("filtrar items")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "brand, description, currentQuantity"
// @Success      201   {object}  dto.CreateItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", Code: "INVALID_BODY"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "brand y description son requeridos y currentQuantity debe ser >= 0", Code: "VALIDATION"})
		}
		log.Error().Err(err).Msg("crear item")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateItemResponse{Success: true, Data: *out})
}

// AdjustQuantity godoc
// @Summary      Ajustar cantidad de un item
// @Description  ENTRADA suma, SAIDA resta (falla si quedaría negativa), AJUSTE fija el valor absoluto.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        idItem  path  string  true  "ID del item"
// @Param        body    body  dto.AdjustQuantityRequest  true  "quantityChange, type"
// @Success      200     {object}  dto.AdjustQuantityResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/items/{idItem}/quantity [put]
func (h *ItemHandler) AdjustQuantity(c *fiber.Ctx) error {
	id := c.Params("idItem")
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", Code: "INVALID_BODY"})
	}
	newQty, err := h.adjust.Adjust(c.Context(), inventory.AdjustInput{
		ItemID:         id,
		Type:           in.Type,
		QuantityChange: in.QuantityChange,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "tipo o cantidad inválidos", Code: "VALIDATION"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "stock insuficiente", Code: "INSUFFICIENT_STOCK"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item no encontrado", Code: "NOT_FOUND"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "ajuste concurrente detectado", Code: "CONFLICT"})
		}
		log.Error().Err(err).Str("id", id).Msg("ajustar cantidad")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(dto.AdjustQuantityResponse{
		Success: true,
		Message: fmt.Sprintf("cantidad actualizada: %d", newQty),
	})
}

// Delete godoc
// @Summary      Eliminar item
// @Description  Hard delete; las transacciones del item se conservan.
// @Tags         items
// @Produce      json
// @Param        idItem  path  string  true  "ID del item"
// @Success      200  {object}  dto.DeleteItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{idItem} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("idItem")
	if err := h.uc.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "item no encontrado", Code: "NOT_FOUND"})
		}
		log.Error().Err(err).Str("id", id).Msg("eliminar item")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(dto.DeleteItemResponse{Success: true})
}

// ListBrands godoc
// @Summary      Listar marcas distintas
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.BrandListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items/brands [get]
func (h *ItemHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.uc.ListBrands()
	if err != nil {
		log.Error().Err(err).Msg("listar marcas")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(out)
}
