package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Esencia-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Deduction *inventory.DeductionUseCase
	Reversal  *inventory.ReversalUseCase
	Query     *inventory.QueryUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.Deduction, deps.Reversal, deps.Query)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/deductions", RequireRole("admin", "vendedor"), inventoryHandler.Deduct)
	invGroup.Post("/reversals/:transactionNumber", RequireRole("admin"), inventoryHandler.Reverse)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Products (protegido)
	products := protected.Group("/products")
	products.Get("/:id/stock", inventoryHandler.GetProductStock)
}
