package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Esencia-api/internal/application/dto"
	"github.com/jhoicas/Esencia-api/internal/application/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario (protegido).
type InventoryHandler struct {
	deduction *inventory.DeductionUseCase
	reversal  *inventory.ReversalUseCase
	query     *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(deduction *inventory.DeductionUseCase, reversal *inventory.ReversalUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{deduction: deduction, reversal: reversal, query: query}
}

// Deduct godoc
// @Summary      Descontar inventario de una transacción completada
// @Description  Convierte los ítems de la venta en movimientos inmutables y
//
//	descuenta stock. Idempotente por transaction_number: repetir la
//	llamada devuelve los movimientos ya registrados con una advertencia.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductTransactionRequest  true  "transaction_number e ítems de la venta"
// @Success      200   {object}  dto.DeductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/inventory/deductions [post]
func (h *InventoryHandler) Deduct(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.DeductTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.deduction.Deduct(c.Context(), in.ToEntity(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.DeductionResponse{
		Success:   result.Success,
		Movements: dto.FromMovements(result.Movements),
		Errors:    result.Errors,
		Warnings:  result.Warnings,
	})
}

// Reverse godoc
// @Summary      Revertir el descuento de una transacción cancelada
// @Description  Registra movimientos de devolución compensatorios bajo la
//
//	referencia CANCEL-<número> y restaura stock y contenedores.
//	Idempotente: una segunda reversa no duplica devoluciones.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        transactionNumber  path  string  true  "Número de la transacción original"
// @Success      200  {object}  dto.ReversalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/reversals/{transactionNumber} [post]
func (h *InventoryHandler) Reverse(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	transactionNumber := c.Params("transactionNumber")
	result, err := h.reversal.Reverse(c.Context(), transactionNumber, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReversalResponse{
		Success:               result.Success,
		ReversedMovements:     dto.FromMovements(result.ReversedMovements),
		Errors:                result.Errors,
		Warnings:              result.Warnings,
		OriginalMovementCount: result.OriginalMovementCount,
		ReversedCount:         result.ReversedCount,
	})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        reference   query  string  false  "Referencia de transacción (ej. TXN-001 o CANCEL-TXN-001)"
// @Param        type        query  string  false  "Filtrar por tipo de movimiento"
// @Param        product_id  query  string  false  "Listar por producto en lugar de referencia"
// @Param        limit       query  int     false  "Tamaño de página por producto (default 50)"
// @Param        offset      query  int     false  "Desplazamiento por producto"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID != "" {
		var page dto.PageRequest
		if err := c.QueryParser(&page); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
		}
		page.DefaultPage()
		movs, err := h.query.MovementsByProduct(productID, page.Limit, page.Offset)
		if err != nil {
			return movementQueryError(c, err)
		}
		return c.JSON(dto.FromMovements(movs))
	}
	movs, err := h.query.MovementsByReference(c.Query("reference"), c.Query("type"))
	if err != nil {
		return movementQueryError(c, err)
	}
	return c.JSON(dto.FromMovements(movs))
}

func movementQueryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// GetProductStock godoc
// @Summary      Snapshot de stock de un producto
// @Description  Devuelve contadores, contenedores sellados y la cola de
//
//	contenedores parciales en orden de consumo.
//
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) GetProductStock(c *fiber.Ctx) error {
	p, err := h.query.ProductStock(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	containers := make([]dto.ContainerDTO, 0, len(p.PartialContainers))
	for _, ct := range p.PartialContainers {
		containers = append(containers, dto.ContainerDTO{
			ID:        ct.ID,
			Remaining: ct.Remaining,
			Status:    ct.Status,
			OpenedAt:  ct.OpenedAt,
		})
	}
	return c.JSON(dto.ProductStockResponse{
		ProductID:         p.ID,
		Name:              p.Name,
		CurrentStock:      p.CurrentStock,
		AvailableStock:    p.AvailableStock,
		ContainerCapacity: p.ContainerCapacity,
		ContainersFull:    p.ContainersFull,
		PartialContainers: containers,
	})
}
