package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// AcademicService exposes the catalogue of departments, careers, cycles and
// sections consumed by the registration cascade and the admin surface.
type AcademicService struct {
	departments repository.DepartmentRepository
	careers     repository.CareerRepository
	cycles      repository.CycleRepository
	sections    repository.SectionRepository
}

// NewAcademicService builds the service.
func NewAcademicService(departments repository.DepartmentRepository, careers repository.CareerRepository, cycles repository.CycleRepository, sections repository.SectionRepository) *AcademicService {
	return &AcademicService{
		departments: departments,
		careers:     careers,
		cycles:      cycles,
		sections:    sections,
	}
}

// ActiveDepartments lists active departments.
func (s *AcademicService) ActiveDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departments.ListActive(ctx)
}

// CreateDepartment inserts a new department.
func (s *AcademicService) CreateDepartment(ctx context.Context, dept *domain.Department) error {
	if dept.Name == "" {
		return apperrors.NewValidationError("department name required", nil)
	}
	dept.IsActive = true
	return s.departments.Create(ctx, dept)
}

// UpdateDepartment updates an existing department.
func (s *AcademicService) UpdateDepartment(ctx context.Context, dept *domain.Department) error {
	if err := s.departments.Update(ctx, dept); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("department", map[string]any{"id": dept.ID})
		}
		return err
	}
	return nil
}

// DeactivateDepartment soft-deletes a department.
func (s *AcademicService) DeactivateDepartment(ctx context.Context, id int64) error {
	if err := s.departments.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("department", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ActiveCareers lists active careers.
func (s *AcademicService) ActiveCareers(ctx context.Context) ([]domain.Career, error) {
	return s.careers.ListActive(ctx)
}

// ActiveCareersByDepartment lists active careers for a department.
func (s *AcademicService) ActiveCareersByDepartment(ctx context.Context, departmentID int64) ([]domain.Career, error) {
	return s.careers.ListActiveByDepartment(ctx, departmentID)
}

// CreateCareer inserts a new career.
func (s *AcademicService) CreateCareer(ctx context.Context, career *domain.Career) error {
	if career.Name == "" || career.DepartmentID == 0 {
		return apperrors.NewValidationError("career name and department required", nil)
	}
	career.IsActive = true
	return s.careers.Create(ctx, career)
}

// UpdateCareer updates an existing career.
func (s *AcademicService) UpdateCareer(ctx context.Context, career *domain.Career) error {
	if err := s.careers.Update(ctx, career); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("career", map[string]any{"id": career.ID})
		}
		return err
	}
	return nil
}

// DeactivateCareer soft-deletes a career.
func (s *AcademicService) DeactivateCareer(ctx context.Context, id int64) error {
	if err := s.careers.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("career", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// AllCycles lists every academic cycle.
func (s *AcademicService) AllCycles(ctx context.Context) ([]domain.Cycle, error) {
	return s.cycles.ListAll(ctx)
}

// CyclesByCareer lists cycles within a career plan.
func (s *AcademicService) CyclesByCareer(ctx context.Context, careerID int64) ([]domain.Cycle, error) {
	return s.cycles.ListByCareer(ctx, careerID)
}

// SectionsByCareer lists sections within a career.
func (s *AcademicService) SectionsByCareer(ctx context.Context, careerID int64) ([]domain.Section, error) {
	return s.sections.ListByCareer(ctx, careerID)
}

// SectionsByCareerAndCycle lists sections within a career and cycle.
func (s *AcademicService) SectionsByCareerAndCycle(ctx context.Context, careerID int64, cycle int) ([]domain.Section, error) {
	return s.sections.ListByCareerAndCycle(ctx, careerID, cycle)
}
