package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/inventory"
	"github.com/estoqueapp/estoque-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC        *usecase.ItemUseCase
	TransactionUC *usecase.TransactionUseCase
	Adjust        *inventory.AdjustQuantityUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Adjust)
	items.Get("/", itemHandler.List)
	// "/brands" va antes de "/:idItem" para que no se capture como id.
	items.Get("/brands", itemHandler.ListBrands)
	items.Post("/filter", itemHandler.Filter)
	items.Post("/", itemHandler.Create)
	items.Get("/:idItem", itemHandler.GetByID)
	items.Put("/:idItem/quantity", itemHandler.AdjustQuantity)
	items.Delete("/:idItem", itemHandler.Delete)

	transactions := api.Group("/transactions")
	txHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Get("/", txHandler.List)
	transactions.Get("/item/:idItem", txHandler.ListByItem)
}
