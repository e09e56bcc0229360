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

// AccountsHandler exposes registration and profile endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs the handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Register handles POST /api/usuarios/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	account := &domain.Account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         domain.ParseAccountRole(req.Role),
		CycleNumber:  req.CycleNumber,
		SectionID:    req.SectionID,
		CareerID:     req.CareerID,
		DepartmentID: req.DepartmentID,
		Phone:        req.Phone,
	}

	created, err := h.accounts.Register(c.Context(), account, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAccountResponse(created))
}

// Me handles GET /api/usuarios/me.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.NewAccountResponse(principal.Account))
}

// CompleteProfile handles PUT /api/usuarios/completar-perfil.
func (h *AccountsHandler) CompleteProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.accounts.CompleteProfile(c.Context(), principal.Account.Email, service.ProfileUpdate{
		CareerID:     req.CareerID,
		CycleNumber:  req.CycleNumber,
		DepartmentID: req.DepartmentID,
		SectionID:    req.SectionID,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(updated))
}
