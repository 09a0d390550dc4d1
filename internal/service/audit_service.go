package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/audit"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

type auditCatalog interface {
	AllCourses() []models.Course
	ProgramByID(id string) (models.AcademicProgram, bool)
	StudentByID(id string) (models.StudentInfo, bool)
}

// AuditService evaluates degree requirements for stored students and for
// hypothetical what-if plans.
type AuditService struct {
	catalog   auditCatalog
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuditService wires audit dependencies.
func NewAuditService(catalog auditCatalog, validate *validator.Validate, logger *zap.Logger) *AuditService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{catalog: catalog, validator: validate, logger: logger}
}

// Audit runs the canonical degree audit for a stored student. The audited
// program defaults to the student's declared major.
func (s *AuditService) Audit(ctx context.Context, req dto.AuditRequest) (*models.DegreeAuditResults, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid audit payload")
	}
	student, ok := s.catalog.StudentByID(req.StudentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", req.StudentID))
	}
	programID := req.ProgramID
	if programID == "" {
		programID = student.MajorID
	}
	if programID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student has no declared major and no program_id was given")
	}
	program, ok := s.catalog.ProgramByID(programID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("program %s not found", programID))
	}

	results := audit.CalculateDegreeAudit(student, program, s.catalog.AllCourses())
	s.logger.Debug("degree audit computed",
		zap.String("student_id", student.ID),
		zap.String("program_id", program.ID),
		zap.Float64("overall_progress", results.OverallProgress))
	return &results, nil
}

// WhatIf audits an arbitrary completion set against any program. When a
// student id is given its completed courses seed the set; explicit courses
// are added on top.
func (s *AuditService) WhatIf(ctx context.Context, req dto.WhatIfRequest) (*dto.WhatIfResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid what-if payload")
	}
	program, ok := s.catalog.ProgramByID(req.ProgramID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("program %s not found", req.ProgramID))
	}

	completed := append([]string(nil), req.CompletedCourses...)
	if req.StudentID != "" {
		student, ok := s.catalog.StudentByID(req.StudentID)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", req.StudentID))
		}
		seen := make(map[string]bool, len(completed))
		for _, c := range completed {
			seen[c] = true
		}
		for _, c := range student.CompletedCourses {
			if !seen[c] {
				completed = append(completed, c)
				seen[c] = true
			}
		}
	}

	requirements := audit.AuditProgram(completed, program, s.catalog.AllCourses())
	return &dto.WhatIfResponse{
		ProgramID:    program.ID,
		ProgramName:  program.Name,
		Requirements: requirements,
	}, nil
}
