package handler

import (
	"go-cafe-central/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MovementHandler struct {
	service service.MovementService
}

func NewMovementHandler(s service.MovementService) *MovementHandler {
	return &MovementHandler{service: s}
}

// GetMovements lists the stock movement audit trail, newest first
// GET /api/v1/movements
func (h *MovementHandler) GetMovements(c *fiber.Ctx) error {
	movements, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movements)
}

// GetMovement returns one movement record
// GET /api/v1/movements/:id
func (h *MovementHandler) GetMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	movement, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movement)
}

// GetProductMovements returns the movement history of one product
// GET /api/v1/products/:id/movements
func (h *MovementHandler) GetProductMovements(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	movements, err := h.service.GetByProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movements)
}

// CreateMovement records a manual IN/OUT stock adjustment
// POST /api/v1/movements
func (h *MovementHandler) CreateMovement(c *fiber.Ctx) error {
	var req service.RecordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	movement, err := h.service.Record(&req, getUserID(c), getUserName(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Movement recorded", "data": movement})
}

// DeleteMovement reverses and removes a movement record
// DELETE /api/v1/movements/:id
func (h *MovementHandler) DeleteMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	if err := h.service.Delete(id, getUserID(c), getUserName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Movement deleted and stock restored"})
}
