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

	_ "github.com/jhoicas/rutastock-api/docs"
	"github.com/jhoicas/rutastock-api/internal/application/auth"
	appledger "github.com/jhoicas/rutastock-api/internal/application/ledger"
	"github.com/jhoicas/rutastock-api/internal/application/orders"
	"github.com/jhoicas/rutastock-api/internal/application/reports"
	"github.com/jhoicas/rutastock-api/internal/application/usecase"
	"github.com/jhoicas/rutastock-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/rutastock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rutastock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/rutastock-api/internal/interfaces/http"
	"github.com/jhoicas/rutastock-api/pkg/config"
	"github.com/jhoicas/rutastock-api/pkg/logger"
)

// @title        RutaStock API
// @version      1.0
// @description  Ledger de inventario por conductor: asignaciones, traslados, ventas y pedidos.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	inventoryRepo := postgres.NewInventoryQueryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Publicación de eventos del ledger: opcional, solo con brokers configurados.
	var publisher appledger.EventPublisher
	if cfg.Kafka.Enabled() {
		kafkaPub := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka"))
		defer kafkaPub.Close()
		publisher = kafkaPub
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos habilitada")
	}

	ledgerUC := appledger.NewLedgerUseCase(txRunner, driverRepo, productRepo, inventoryRepo, publisher)
	orderUC := orders.NewOrderUseCase(txRunner, ledgerUC, driverRepo, orderRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	driverUC := usecase.NewDriverUseCase(driverRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: hoja de carga imprimible por conductor
	loadSheetGen := infrapdf.NewMarotoLoadSheetGenerator()
	loadSheetUC := reports.NewLoadSheetUseCase(driverRepo, ledgerUC, loadSheetGen)

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
		Title:    "RutaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		DriverUC:       driverUC,
		UserUC:         userUC,
		AuthUC:         authUC,
		Ledger:         ledgerUC,
		OrderUC:        orderUC,
		LoadSheetUC:    loadSheetUC,
		Assignments:    assignmentRepo,
		Transfers:      transferRepo,
		Sales:          saleRepo,
		JWTSecret:      cfg.JWT.Secret,
		AlertThreshold: cfg.Ledger.AlertThreshold,
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
