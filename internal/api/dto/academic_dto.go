package dto

// DepartmentRequest payload for department mutations.
type DepartmentRequest struct {
	Name     string `json:"nombre"`
	Code     string `json:"codigo"`
	IsActive *bool  `json:"activo"`
}

// CareerRequest payload for career mutations.
type CareerRequest struct {
	Name         string `json:"nombre"`
	Code         string `json:"codigo"`
	DepartmentID int64  `json:"departamentoId"`
	IsActive     *bool  `json:"activo"`
}
