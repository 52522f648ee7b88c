package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/services"
)

// HealthHandler reports whether the spreadsheet connection is usable
type HealthHandler struct {
	sink services.Sink
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sink services.Sink) *HealthHandler {
	return &HealthHandler{sink: sink}
}

// Check returns 200 with a human-readable status when the spreadsheet
// connection is healthy, 500 otherwise.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if h.sink.Healthy() {
		return c.SendString("OK - Google Sheets connection healthy")
	}
	return c.Status(fiber.StatusInternalServerError).
		SendString("UNAVAILABLE - Google Sheets connection is down")
}
