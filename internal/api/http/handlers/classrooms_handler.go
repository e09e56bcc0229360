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

// ClassroomsHandler exposes virtual classroom endpoints.
type ClassroomsHandler struct {
	classrooms *service.ClassroomService
}

// NewClassroomsHandler constructs the handler.
func NewClassroomsHandler(classrooms *service.ClassroomService) *ClassroomsHandler {
	return &ClassroomsHandler{classrooms: classrooms}
}

// Create handles POST /api/aulas.
func (h *ClassroomsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Account.Role != domain.RoleProfessor && principal.Account.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only professors may create classrooms")
	}

	var req dto.ClassroomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	classroom := &domain.Classroom{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		ProfessorID: principal.Account.ID,
		SectionID:   req.SectionID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := h.classrooms.Create(c.Context(), classroom); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(classroom)
}

// ListMine handles GET /api/aulas. Professors get the classrooms they own,
// students the classrooms they joined.
func (h *ClassroomsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	classrooms, err := h.classrooms.ListForAccount(c.Context(), principal.Account)
	if err != nil {
		return err
	}
	return c.JSON(classrooms)
}

// Join handles POST /api/aulas/unirse.
func (h *ClassroomsHandler) Join(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Account.Role != domain.RoleStudent {
		return apperrors.NewForbidden("only students may join classrooms")
	}

	var req dto.ClassroomJoinRequest
	if err := c.BodyParser(&req); err != nil || req.AccessCode == "" {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	classroom, err := h.classrooms.JoinByAccessCode(c.Context(), req.AccessCode, principal.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(classroom)
}

// Roster handles GET /api/aulas/:id/participantes.
func (h *ClassroomsHandler) Roster(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	enrollments, err := h.classrooms.Roster(c.Context(), id, principal.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(enrollments)
}

// RemoveParticipant handles DELETE /api/aulas/:id/participantes/:studentId.
func (h *ClassroomsHandler) RemoveParticipant(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}
	if err := h.classrooms.RemoveParticipant(c.Context(), id, studentID, principal.Account.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /api/aulas/:id.
func (h *ClassroomsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	classroom, err := h.classrooms.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(classroom)
}

// Update handles PUT /api/aulas/:id.
func (h *ClassroomsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ClassroomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	classroom := &domain.Classroom{
		ID:          id,
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.ClassroomActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := h.classrooms.Update(c.Context(), classroom, principal.Account.ID); err != nil {
		return err
	}
	return c.JSON(classroom)
}
