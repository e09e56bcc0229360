package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edutec/campus-backend/internal/api/dto"
	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/service"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// InvitationsHandler exposes classroom invitation endpoints.
type InvitationsHandler struct {
	invitations *service.InvitationService
}

// NewInvitationsHandler constructs the handler.
func NewInvitationsHandler(invitations *service.InvitationService) *InvitationsHandler {
	return &InvitationsHandler{invitations: invitations}
}

// Create handles POST /api/invitaciones.
func (h *InvitationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.InvitationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	invitation, err := h.invitations.Create(c.Context(), req.ClassroomID, principal.Account.ID, req.InviteeEmail, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(invitation)
}

// Respond handles POST /api/invitaciones/:code/responder.
func (h *InvitationsHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.InvitationRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	invitation, err := h.invitations.Respond(c.Context(), c.Params("code"), principal.Account.Email, req.Accept)
	if err != nil {
		return err
	}
	return c.JSON(invitation)
}

// ListByClassroom handles GET /api/invitaciones/aula/:id.
func (h *InvitationsHandler) ListByClassroom(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	invitations, err := h.invitations.ListByClassroom(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(invitations)
}

// ListMine handles GET /api/invitaciones/pendientes.
func (h *InvitationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	invitations, err := h.invitations.ListPendingForEmail(c.Context(), principal.Account.Email)
	if err != nil {
		return err
	}
	return c.JSON(invitations)
}
