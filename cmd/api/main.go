package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/estoqueapp/estoque-api/internal/application/inventory"
	"github.com/estoqueapp/estoque-api/internal/application/usecase"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
	"github.com/estoqueapp/estoque-api/internal/infrastructure/memory"
	"github.com/estoqueapp/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/estoqueapp/estoque-api/internal/interfaces/http"
	"github.com/estoqueapp/estoque-api/pkg/config"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		itemRepo repository.ItemRepository
		txRepo   repository.TransactionRepository
		txRunner inventory.TxRunner
	)
	switch cfg.Store.Driver {
	case "memory":
		// Driver en memoria: desarrollo local sin base de datos. Volátil.
		store := memory.NewStore()
		itemRepo = store.Items()
		txRepo = store.Transactions()
		txRunner = store.TxRunner()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		itemRepo = postgres.NewItemRepository(pool)
		txRepo = postgres.NewTransactionRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	itemUC := usecase.NewItemUseCase(itemRepo)
	transactionUC := usecase.NewTransactionUseCase(txRepo)
	adjustUC := inventory.NewAdjustQuantityUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		TransactionUC: transactionUC,
		Adjust:        adjustUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
