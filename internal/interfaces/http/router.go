package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodegas-api/internal/application/auth"
	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/application/usecase"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	StockardUC      *usecase.StockardUseCase
	ProductUC       *usecase.ProductUseCase
	StockUC         *usecase.StockQueryUseCase
	ProcessMovement *inventory.ProcessMovementUseCase
	MovementQueries *inventory.MovementQueryUseCase
	Receipt         *inventory.ReceiptUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin puede modificar el catálogo de bodegas y productos.
	adminOnly := RequireRole(entity.RoleAdmin)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Stockards (protegido)
	stockards := protected.Group("/stockards")
	stockardHandler := NewStockardHandler(deps.StockardUC)
	stockards.Post("/", adminOnly, stockardHandler.Create)
	stockards.Get("/", stockardHandler.ListByWarehouse)
	stockards.Get("/:id", stockardHandler.GetByID)
	stockards.Delete("/:id", adminOnly, stockardHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Libro de existencias (protegido, solo lectura)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)

	// Movimientos de inventario (protegido; admin y bodeguero operan)
	invGroup := protected.Group("/inventory", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	movementHandler := NewMovementHandler(deps.ProcessMovement, deps.MovementQueries, deps.Receipt)
	invGroup.Post("/movements", movementHandler.Create)
	invGroup.Get("/movements", movementHandler.List)
	invGroup.Get("/movements/:id", movementHandler.GetByID)
	invGroup.Get("/movements/:id/pdf", movementHandler.ReceiptPDF)
}
