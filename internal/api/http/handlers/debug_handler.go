package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/edutec/campus-backend/internal/service"
)

// DebugHandler exposes internal counters for troubleshooting.
type DebugHandler struct {
	sessions *service.SessionService
}

// NewDebugHandler returns a new handler instance.
func NewDebugHandler(sessions *service.SessionService) *DebugHandler {
	return &DebugHandler{sessions: sessions}
}

// TokenStats reports blacklist and expired-cache sizes.
func (h *DebugHandler) TokenStats(c *fiber.Ctx) error {
	stats := h.sessions.RevocationStats()
	return c.JSON(fiber.Map{
		"stats":     stats,
		"timestamp": time.Now().UnixMilli(),
	})
}
