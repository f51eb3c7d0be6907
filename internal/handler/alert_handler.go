package handler

import (
	"go-cafe-central/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(s service.AlertService) *AlertHandler {
	return &AlertHandler{service: s}
}

// GetAlerts lists stock alerts, newest first
// GET /api/v1/alerts?resolved=true|false
func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	var resolved *bool
	switch c.Query("resolved") {
	case "true":
		v := true
		resolved = &v
	case "false":
		v := false
		resolved = &v
	}

	alerts, err := h.service.GetAll(resolved)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(alerts)
}

// GetAlert returns one alert with its product and resolver
// GET /api/v1/alerts/:id
func (h *AlertHandler) GetAlert(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	alert, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alert)
}

// ResolveAlert marks an alert resolved by the acting user
// PUT /api/v1/alerts/:id/resolve
func (h *AlertHandler) ResolveAlert(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	actorID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	alert, err := h.service.Resolve(id, actorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Alert resolved", "data": alert})
}

// UnresolveAlert reopens a resolved alert
// PUT /api/v1/alerts/:id/unresolve
func (h *AlertHandler) UnresolveAlert(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	alert, err := h.service.Unresolve(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Alert reopened", "data": alert})
}
