package dto

import "github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"

// SectionFilters narrows which catalog sections the generator may place.
type SectionFilters struct {
	// ExcludeHonors lists course ids whose honors sections must be skipped.
	ExcludeHonors []string `json:"exclude_honors,omitempty"`
	// AllowedSections restricts a course to an explicit section id subset.
	AllowedSections map[string][]string `json:"allowed_sections,omitempty"`
}

// GenerateScheduleRequest asks the planner for ranked schedule candidates.
type GenerateScheduleRequest struct {
	StudentID        string                     `json:"student_id"`
	TermID           string                     `json:"term_id" validate:"required"`
	CourseIDs        []string                   `json:"course_ids" validate:"omitempty,dive,required"`
	BusyTimes        []models.BusyTime          `json:"busy_times,omitempty"`
	FixedSections    []string                   `json:"fixed_sections,omitempty"`
	Filters          SectionFilters             `json:"filters,omitempty"`
	Preferences      models.SchedulePreferences `json:"preferences,omitempty"`
	CompletedCourses []string                   `json:"completed_courses,omitempty"`
	MaxResults       int                        `json:"max_results,omitempty" validate:"omitempty,min=1,max=50"`
}

// GenerateScheduleResponse returns ranked candidates plus search telemetry.
type GenerateScheduleResponse struct {
	Schedules    []models.Schedule `json:"schedules"`
	NodesVisited int               `json:"nodes_visited"`
	Truncated    bool              `json:"truncated"`
}

// ConflictCheckRequest runs ad-hoc conflict detection over a chosen section set.
type ConflictCheckRequest struct {
	SectionIDs       []string          `json:"section_ids" validate:"required,min=1,dive,required"`
	BusyTimes        []models.BusyTime `json:"busy_times,omitempty"`
	CompletedCourses []string          `json:"completed_courses,omitempty"`
}

// ConflictCheckResponse reports every detected conflict.
type ConflictCheckResponse struct {
	Conflicts []models.ScheduleConflict `json:"conflicts"`
}

// SaveScheduleRequest stores a generated schedule in the session store.
type SaveScheduleRequest struct {
	Schedule models.Schedule `json:"schedule" validate:"required"`
}

// RenameScheduleRequest updates a saved schedule's display name.
type RenameScheduleRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
