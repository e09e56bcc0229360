package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edutec/campus-backend/internal/api/dto"
	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/service"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// AnnouncementsHandler exposes announcement endpoints.
type AnnouncementsHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementsHandler constructs the handler.
func NewAnnouncementsHandler(announcements *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements}
}

// Publish handles POST /api/anuncios.
func (h *AnnouncementsHandler) Publish(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AnnouncementCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	ann := &domain.Announcement{
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		ClassroomID:   req.ClassroomID,
		AuthorID:      principal.Account.ID,
		AllowComments: req.AllowComments,
		Pinned:        req.Pinned,
	}
	if err := h.announcements.Publish(c.Context(), ann); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ann)
}

// GeneralFeed handles GET /api/anuncios/generales.
func (h *AnnouncementsHandler) GeneralFeed(c *fiber.Ctx) error {
	feed, err := h.announcements.GeneralFeed(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(feed)
}

// ListByClassroom handles GET /api/anuncios/aula/:id.
func (h *AnnouncementsHandler) ListByClassroom(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	feed, err := h.announcements.ListByClassroom(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(feed)
}

// Remove handles DELETE /api/anuncios/:id.
func (h *AnnouncementsHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.announcements.Remove(c.Context(), id, principal.Account.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
