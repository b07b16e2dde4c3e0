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

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/inventory"
	"github.com/litethinking/gestion-api/internal/application/usecase"
	infraai "github.com/litethinking/gestion-api/internal/infrastructure/ai"
	infrapdf "github.com/litethinking/gestion-api/internal/infrastructure/pdf"
	"github.com/litethinking/gestion-api/internal/infrastructure/postgres"
	httpRouter "github.com/litethinking/gestion-api/internal/interfaces/http"
	"github.com/litethinking/gestion-api/internal/jobs"
	"github.com/litethinking/gestion-api/pkg/config"
	"github.com/litethinking/gestion-api/pkg/jwt"
	"github.com/litethinking/gestion-api/pkg/logger"
)

// Corrida nocturna del job que compara el ledger contra el stock cacheado.
const reconcileSchedule = "0 3 * * *"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	convRepo := postgres.NewConversationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, companyRepo, jwt.Config{
		Secret:            cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		AccessExpMinutes:  cfg.JWT.AccessExpiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, companyRepo, invRepo, cfg.Currency)
	inventoryUC := inventory.NewUseCase(txRunner, invRepo, movRepo, productRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	llm := infraai.NewFromConfig(cfg.AI)
	chatUC := usecase.NewChatUseCase(convRepo, llm)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := usecase.NewReportUseCase(invRepo, companyRepo, pdfGenerator)

	reconciler := jobs.NewReconciler(invRepo, movRepo, log)
	if err := reconciler.Start(reconcileSchedule); err != nil {
		log.Fatal().Err(err).Msg("programar conciliación de inventario")
	}
	defer reconciler.Stop()

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
		Title:    "Gestión API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		ReportUC:    reportUC,
		ChatUC:      chatUC,
		UserUC:      userUC,
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
