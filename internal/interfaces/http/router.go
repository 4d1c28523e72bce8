package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rutastock-api/internal/application/auth"
	"github.com/jhoicas/rutastock-api/internal/application/orders"
	"github.com/jhoicas/rutastock-api/internal/application/reports"
	"github.com/jhoicas/rutastock-api/internal/application/usecase"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	DriverUC       *usecase.DriverUseCase
	UserUC         *usecase.UserUseCase
	AuthUC         *auth.AuthUseCase
	Ledger         LedgerService
	OrderUC        *orders.OrderUseCase
	LoadSheetUC    *reports.LoadSheetUseCase
	Assignments    repository.AssignmentRepository
	Transfers      repository.StockTransferRepository
	Sales          repository.SaleRepository
	JWTSecret      string
	AlertThreshold int
}

// Router registra las rutas de la API.
//
// Reglas de acceso: catálogo, conductores, usuarios y asignaciones solo los muta
// el admin; los traslados los registran admin y conductores; las ventas y pedidos
// admin y vendedores. Cualquier usuario autenticado puede consultar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Registro de usuarios solo por admin
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Users (protegido, solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)

	// Products (protegido; solo admin muta)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Archive)

	// Drivers (protegido; solo admin muta)
	drivers := protected.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Get("/", driverHandler.List)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Post("/", adminOnly, driverHandler.Create)
	drivers.Put("/:id", adminOnly, driverHandler.Update)
	drivers.Delete("/:id", adminOnly, driverHandler.Archive)

	// Ledger: asignaciones, traslados, ventas
	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.Assignments, deps.Transfers, deps.Sales, deps.AlertThreshold)
	protected.Post("/assignments", adminOnly, ledgerHandler.CreateAssignment)
	protected.Post("/transfers", RequireRole(entity.RoleAdmin, entity.RoleConductor), ledgerHandler.CreateTransfer)
	protected.Post("/sales", RequireRole(entity.RoleAdmin, entity.RoleVendedor), ledgerHandler.CreateSale)

	// Consultas por conductor: inventario derivado e historiales
	drivers.Get("/:id/inventory", ledgerHandler.GetDriverInventory)
	drivers.Get("/:id/assignments", ledgerHandler.ListAssignments)
	drivers.Get("/:id/transfers", ledgerHandler.ListTransfers)
	drivers.Get("/:id/sales", ledgerHandler.ListSales)

	// Orders (protegido; vendedores y admin crean)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVendedor), orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	drivers.Get("/:id/orders", orderHandler.ListByDriver)

	// Reports
	reportHandler := NewReportHandler(deps.LoadSheetUC, deps.AlertThreshold)
	drivers.Get("/:id/load-sheet", reportHandler.LoadSheet)
}
