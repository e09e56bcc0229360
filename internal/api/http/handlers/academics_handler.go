package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edutec/campus-backend/internal/api/dto"
	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/service"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// AcademicsHandler exposes the departments/careers/cycles/sections catalogue.
type AcademicsHandler struct {
	academics *service.AcademicService
}

// NewAcademicsHandler constructs the handler.
func NewAcademicsHandler(academics *service.AcademicService) *AcademicsHandler {
	return &AcademicsHandler{academics: academics}
}

// Health answers the per-resource health probes the frontend polls.
func (h *AcademicsHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ActiveDepartments handles GET /api/departamentos/activos.
func (h *AcademicsHandler) ActiveDepartments(c *fiber.Ctx) error {
	departments, err := h.academics.ActiveDepartments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(departments)
}

// CreateDepartment handles POST /api/departamentos.
func (h *AcademicsHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	dept := &domain.Department{Name: req.Name, Code: req.Code}
	if err := h.academics.CreateDepartment(c.Context(), dept); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dept)
}

// UpdateDepartment handles PUT /api/departamentos/:id.
func (h *AcademicsHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	dept := &domain.Department{ID: id, Name: req.Name, Code: req.Code, IsActive: true}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	if err := h.academics.UpdateDepartment(c.Context(), dept); err != nil {
		return err
	}
	return c.JSON(dept)
}

// DeleteDepartment handles DELETE /api/departamentos/:id.
func (h *AcademicsHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.academics.DeactivateDepartment(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ActiveCareers handles GET /api/carreras/activas.
func (h *AcademicsHandler) ActiveCareers(c *fiber.Ctx) error {
	careers, err := h.academics.ActiveCareers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(careers)
}

// ActiveCareersByDepartment handles GET /api/carreras/departamento/:id.
func (h *AcademicsHandler) ActiveCareersByDepartment(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	careers, err := h.academics.ActiveCareersByDepartment(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(careers)
}

// CreateCareer handles POST /api/carreras.
func (h *AcademicsHandler) CreateCareer(c *fiber.Ctx) error {
	var req dto.CareerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	career := &domain.Career{Name: req.Name, Code: req.Code, DepartmentID: req.DepartmentID}
	if err := h.academics.CreateCareer(c.Context(), career); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(career)
}

// UpdateCareer handles PUT /api/carreras/:id.
func (h *AcademicsHandler) UpdateCareer(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CareerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	career := &domain.Career{ID: id, Name: req.Name, Code: req.Code, DepartmentID: req.DepartmentID, IsActive: true}
	if req.IsActive != nil {
		career.IsActive = *req.IsActive
	}
	if err := h.academics.UpdateCareer(c.Context(), career); err != nil {
		return err
	}
	return c.JSON(career)
}

// DeleteCareer handles DELETE /api/carreras/:id.
func (h *AcademicsHandler) DeleteCareer(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.academics.DeactivateCareer(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AllCycles handles GET /api/ciclos/todos.
func (h *AcademicsHandler) AllCycles(c *fiber.Ctx) error {
	cycles, err := h.academics.AllCycles(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(cycles)
}

// CyclesByCareer handles GET /api/ciclos/carrera/:id.
func (h *AcademicsHandler) CyclesByCareer(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cycles, err := h.academics.CyclesByCareer(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(cycles)
}

// SectionsByCareer handles GET /api/secciones/carrera/:id.
func (h *AcademicsHandler) SectionsByCareer(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sections, err := h.academics.SectionsByCareer(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(sections)
}

// SectionsByCareerAndCycle handles GET /api/secciones/carrera/:id/ciclo/:cycle.
func (h *AcademicsHandler) SectionsByCareerAndCycle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cycle, err := strconv.Atoi(c.Params("cycle"))
	if err != nil {
		return apperrors.NewValidationError("invalid cycle", nil)
	}
	sections, err := h.academics.SectionsByCareerAndCycle(c.Context(), id, cycle)
	if err != nil {
		return err
	}
	return c.JSON(sections)
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
