package dto

import "github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"

// AuditRequest runs the canonical degree audit for a stored student. When
// ProgramID is empty the student's declared major is audited.
type AuditRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	ProgramID string `json:"program_id,omitempty"`
}

// WhatIfRequest audits an arbitrary completion set against any program,
// without touching stored student state.
type WhatIfRequest struct {
	ProgramID        string   `json:"program_id" validate:"required"`
	StudentID        string   `json:"student_id,omitempty"`
	CompletedCourses []string `json:"completed_courses,omitempty"`
}

// WhatIfResponse returns per-requirement progress for the hypothetical plan.
type WhatIfResponse struct {
	ProgramID    string                     `json:"program_id"`
	ProgramName  string                     `json:"program_name"`
	Requirements []models.DegreeRequirement `json:"requirements"`
}
