package models

// SectionType labels the delivery style of a course section.
type SectionType string

const (
	SectionTypeStandard SectionType = "Standard"
	SectionTypeHonors   SectionType = "Honors"
	SectionTypeLab      SectionType = "Lab"
)

// SectionStatus describes registration availability for a section.
type SectionStatus string

const (
	SectionStatusOpen     SectionStatus = "Open"
	SectionStatusClosed   SectionStatus = "Closed"
	SectionStatusWaitlist SectionStatus = "Waitlist"
)

// Course is a catalog entry. Courses are loaded once per session and treated
// as immutable; a course exclusively owns its sections.
type Course struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Credits       int             `json:"credits"`
	Department    string          `json:"department"`
	Keywords      []string        `json:"keywords,omitempty"`
	Prerequisites []string        `json:"prerequisites,omitempty"`
	Corequisites  []string        `json:"corequisites,omitempty"`
	Sections      []CourseSection `json:"sections"`
}

// CourseSection is one offered instance of a course. CourseID is an explicit
// field rather than a convention parsed out of the section id.
type CourseSection struct {
	ID            string            `json:"id"`
	CourseID      string            `json:"course_id"`
	SectionNumber string            `json:"section_number"`
	Instructor    string            `json:"instructor"`
	Schedule      []SectionSchedule `json:"schedule"`
	Location      string            `json:"location"`
	Capacity      int               `json:"capacity"`
	Enrolled      int               `json:"enrolled"`
	Waitlisted    int               `json:"waitlisted"`
	Type          SectionType       `json:"type"`
	Status        SectionStatus     `json:"status"`
}

// SectionSchedule is a recurring weekly meeting block. Days use the tokens
// M, T, W, Th, F, Sa, Su; times are same-day wall clock "HH:MM" with start
// strictly before end.
type SectionSchedule struct {
	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Room      string   `json:"room,omitempty"`
}

// Pagination describes list slicing metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
