package dto

import "github.com/edutec/campus-backend/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellidos"`
	Email        string `json:"correoInstitucional"`
	Password     string `json:"password"`
	Role         string `json:"rol"`
	CycleNumber  *int   `json:"cicloActual"`
	SectionID    *int64 `json:"seccionId"`
	CareerID     *int64 `json:"carreraId"`
	DepartmentID *int64 `json:"departamentoId"`
	Phone        string `json:"telefono"`
}

// ProfileUpdateRequest payload for the completion form.
type ProfileUpdateRequest struct {
	CareerID     *int64 `json:"carreraId"`
	CycleNumber  *int   `json:"cicloActual"`
	DepartmentID *int64 `json:"departamentoId"`
	SectionID    *int64 `json:"seccionId"`
	Phone        string `json:"telefono"`
}

// AccountResponse is the serialized account shape.
type AccountResponse struct {
	ID                 int64  `json:"id"`
	FirstName          string `json:"nombre"`
	LastName           string `json:"apellidos"`
	Email              string `json:"correoInstitucional"`
	Role               string `json:"rol"`
	CycleNumber        *int   `json:"cicloActual"`
	SectionID          *int64 `json:"seccionId"`
	CareerID           *int64 `json:"carreraId"`
	DepartmentID       *int64 `json:"departamentoId"`
	AvatarURL          string `json:"profileImageUrl"`
	Phone              string `json:"telefono"`
	RequiresCompletion bool   `json:"requiresCompletion"`
}

// NewAccountResponse maps a domain account to its wire shape.
func NewAccountResponse(account *domain.Account) *AccountResponse {
	if account == nil {
		return nil
	}
	return &AccountResponse{
		ID:                 account.ID,
		FirstName:          account.FirstName,
		LastName:           account.LastName,
		Email:              account.Email,
		Role:               string(account.Role),
		CycleNumber:        account.CycleNumber,
		SectionID:          account.SectionID,
		CareerID:           account.CareerID,
		DepartmentID:       account.DepartmentID,
		AvatarURL:          account.AvatarURL,
		Phone:              account.Phone,
		RequiresCompletion: account.RequiresCompletion(),
	}
}
