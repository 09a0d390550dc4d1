package models

// StudentInfo is the session's single source of truth for what the student
// has completed and declared.
type StudentInfo struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MajorID           string   `json:"major_id,omitempty"`
	MinorID           string   `json:"minor_id,omitempty"`
	TotalCredits      int      `json:"total_credits"`
	RequiredCredits   int      `json:"required_credits"`
	CompletedCourses  []string `json:"completed_courses"`
	InProgressCourses []string `json:"in_progress_courses,omitempty"`
}
