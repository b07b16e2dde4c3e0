package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/inventory"
	"github.com/litethinking/gestion-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *inventory.UseCase
	ReportUC    *usecase.ReportUseCase
	ChatUC      *usecase.ChatUseCase
	UserUC      *usecase.UserUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, salvo el cambio de contraseña)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies: lectura para todos, escritura solo admins
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Get("/nit/:nit", companyHandler.GetByNIT)
	companies.Get("/:id", companyHandler.Get)
	companies.Post("/", RequireAdmin(), companyHandler.Create)
	companies.Put("/:id", RequireAdmin(), companyHandler.Update)
	companies.Delete("/:id", RequireAdmin(), companyHandler.Deactivate)
	companies.Post("/:id/activate", RequireAdmin(), companyHandler.Activate)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.Get)
	products.Get("/:id/inventory", productHandler.GetInventory)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Inventory y ledger de movimientos
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReportUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/report.pdf", inventoryHandler.Report)
	invGroup.Get("/:id", inventoryHandler.Get)
	invGroup.Patch("/:id", inventoryHandler.UpdateLocation)
	invGroup.Post("/:id/movements", inventoryHandler.ApplyMovement)
	invGroup.Get("/:id/movements", inventoryHandler.ListMovements)
	invGroup.Post("/:id/reserve", inventoryHandler.Reserve)
	invGroup.Post("/:id/release", inventoryHandler.Release)

	// Chat con el asistente
	chatHandler := NewChatHandler(deps.ChatUC)
	chat := protected.Group("/chat/conversations")
	chat.Post("/", chatHandler.Start)
	chat.Get("/", chatHandler.List)
	chat.Get("/:id", chatHandler.Get)
	chat.Post("/:id/messages", chatHandler.SendMessage)
	chat.Delete("/:id", chatHandler.Archive)

	// Users: el perfil propio para todos, la gestión solo admins
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", RequireAdmin(), userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireAdmin(), userHandler.Deactivate)
}
