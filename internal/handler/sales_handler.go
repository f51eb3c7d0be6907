package handler

import (
	"go-cafe-central/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// GetSessions lists sales sessions, newest date first
// GET /api/v1/sales/sessions
func (h *SalesHandler) GetSessions(c *fiber.Ctx) error {
	sessions, err := h.service.GetAllSessions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sessions)
}

// GetSession returns one session with items and derived total revenue
// GET /api/v1/sales/sessions/:id
func (h *SalesHandler) GetSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := h.service.GetSession(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

// CreateSession opens the session for one calendar date
// POST /api/v1/sales/sessions
func (h *SalesHandler) CreateSession(c *fiber.Ctx) error {
	var req service.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	session, err := h.service.CreateSession(&req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sales session created", "data": session})
}

// UpdateSession edits session notes
// PUT /api/v1/sales/sessions/:id
func (h *SalesHandler) UpdateSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	session, err := h.service.UpdateSessionNotes(id, req.Notes, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session updated", "data": session})
}

// DeleteSession removes the session, returning sold stock to the ledger
// DELETE /api/v1/sales/sessions/:id
func (h *SalesHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	if err := h.service.DeleteSession(id, getUserID(c), getUserName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session deleted and stock restored"})
}

// UpsertItem creates or edits the line for one product within a session
// POST /api/v1/sales/sessions/:id/items
func (h *SalesHandler) UpsertItem(c *fiber.Ctx) error {
	sessionID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	var req service.UpsertSaleItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpsertItem(sessionID, &req, getUserID(c), getUserName(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale item recorded", "data": item})
}

// DeleteItem removes a line and returns its quantity to stock
// DELETE /api/v1/sales/items/:id
func (h *SalesHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale item ID"})
	}

	if err := h.service.DeleteItem(id, getUserID(c), getUserName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale item deleted and stock restored"})
}
