package dto

import "github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"

// ScheduleExportVersion is the only envelope version the importer accepts.
const ScheduleExportVersion = "1.0"

// ExportedSection is one course/section pair in the portable envelope.
// Sections are referenced by id only; the importer re-resolves them against
// the live catalog.
type ExportedSection struct {
	CourseID  string `json:"course_id" validate:"required"`
	SectionID string `json:"section_id" validate:"required"`
}

// ScheduleExport is the portable JSON envelope for a schedule.
type ScheduleExport struct {
	Version      string            `json:"version" validate:"required"`
	Name         string            `json:"name"`
	TermID       string            `json:"term_id"`
	Sections     []ExportedSection `json:"exported_sections" validate:"dive"`
	TotalCredits int               `json:"total_credits"`
}

// ExportScheduleRequest wraps the schedule to serialise.
type ExportScheduleRequest struct {
	Schedule models.Schedule `json:"schedule" validate:"required"`
}

// ImportScheduleResponse carries the rehydrated schedule plus any
// reconciliation notices.
type ImportScheduleResponse struct {
	Schedule models.Schedule `json:"schedule"`
	Notices  []string        `json:"notices,omitempty"`
}

// DownloadScheduleRequest wraps the schedule to render as CSV or PDF.
type DownloadScheduleRequest struct {
	Schedule models.Schedule `json:"schedule" validate:"required"`
}
