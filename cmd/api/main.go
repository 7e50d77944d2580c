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

	"github.com/Fitahiana66/GestionStock/internal/application/auth"
	"github.com/Fitahiana66/GestionStock/internal/application/order"
	"github.com/Fitahiana66/GestionStock/internal/application/report"
	"github.com/Fitahiana66/GestionStock/internal/application/stock"
	"github.com/Fitahiana66/GestionStock/internal/application/usecase"
	infrapdf "github.com/Fitahiana66/GestionStock/internal/infrastructure/pdf"
	"github.com/Fitahiana66/GestionStock/internal/infrastructure/postgres"
	httpRouter "github.com/Fitahiana66/GestionStock/internal/interfaces/http"
	"github.com/Fitahiana66/GestionStock/pkg/config"
	"github.com/Fitahiana66/GestionStock/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	stockUC := stock.NewUseCase(txRunner, productRepo, movementRepo)
	orderUC := order.NewUseCase(txRunner, orderRepo, supplierRepo, userRepo)
	reportUC := report.NewUseCase(reportRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)

	// PDF: comprobante imprimible de órdenes
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := order.NewPDFUseCase(orderUC, pdfGenerator)

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
		Title:    "GestionStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		StockUC:     stockUC,
		ReportUC:    reportUC,
		OrderUC:     orderUC,
		OrderPDFUC:  orderPDFUC,
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		WarehouseUC: warehouseUC,
		JWTSecret:   cfg.JWT.Secret,
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
