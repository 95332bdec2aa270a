package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/usecase"
)

// TransactionHandler maneja las peticiones HTTP del log de transacciones.
type TransactionHandler struct {
	uc *usecase.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Listar todas las transacciones
// @Tags         transactions
// @Produce      json
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("listar transacciones")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(out)
}

// ListByItem godoc
// @Summary      Listar transacciones de un item
// @Description  Orden cronológico. Un item borrado devuelve sus transacciones huérfanas.
// @Tags         transactions
// @Produce      json
// @Param        idItem  path  string  true  "ID del item"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/transactions/item/{idItem} [get]
func (h *TransactionHandler) ListByItem(c *fiber.Ctx) error {
	id := c.Params("idItem")
	out, err := h.uc.ListByItem(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("listar transacciones de item")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
	return c.JSON(out)
}
