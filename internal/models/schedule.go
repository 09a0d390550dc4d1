package models

// BusyTimeType categorises a recurring personal commitment.
type BusyTimeType string

const (
	BusyTimeWork     BusyTimeType = "work"
	BusyTimeStudy    BusyTimeType = "study"
	BusyTimePersonal BusyTimeType = "personal"
	BusyTimeEvent    BusyTimeType = "event"
	BusyTimeMeeting  BusyTimeType = "meeting"
	BusyTimeClass    BusyTimeType = "class"
	BusyTimeReminder BusyTimeType = "reminder"
	BusyTimeOther    BusyTimeType = "other"
)

// BusyTime is a user-authored weekly commitment. It participates in conflict
// detection exactly like a section meeting block but is untied to any course.
type BusyTime struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      BusyTimeType `json:"type"`
	Days      []string     `json:"days"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
}

// TimePreference selects the preferred part of the day for meetings.
type TimePreference string

const (
	TimePreferenceNone      TimePreference = "none"
	TimePreferenceMorning   TimePreference = "morning"
	TimePreferenceAfternoon TimePreference = "afternoon"
	TimePreferenceEvening   TimePreference = "evening"
)

// SchedulePreferences is an immutable value object replaced wholesale when the
// user changes a setting.
type SchedulePreferences struct {
	TimeOfDay   TimePreference `json:"time_of_day"`
	AvoidFriday bool           `json:"avoid_friday"`
}

// ConflictType distinguishes the kinds of schedule conflicts.
type ConflictType string

const (
	ConflictTime         ConflictType = "time"
	ConflictPrerequisite ConflictType = "prerequisite"
	ConflictCorequisite  ConflictType = "corequisite"
)

// ConflictSeverity grades a conflict. Errors make a candidate unusable;
// warnings survive into ranked output and cost score.
type ConflictSeverity string

const (
	SeverityWarning ConflictSeverity = "warning"
	SeverityError   ConflictSeverity = "error"
)

// ScheduleConflict reports one detected problem in a section combination.
type ScheduleConflict struct {
	Type        ConflictType     `json:"type"`
	Description string           `json:"description"`
	CourseIDs   []string         `json:"course_ids"`
	Severity    ConflictSeverity `json:"severity"`
}

// Schedule is a generated candidate, or a saved copy of one. TotalCredits sums
// parent-course credits once per distinct course among the chosen sections.
type Schedule struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	TermID       string             `json:"term_id"`
	Sections     []CourseSection    `json:"sections"`
	BusyTimes    []BusyTime         `json:"busy_times,omitempty"`
	TotalCredits int                `json:"total_credits"`
	Conflicts    []ScheduleConflict `json:"conflicts"`
	Score        float64            `json:"score"`
}
