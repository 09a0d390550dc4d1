package models

// MatcherType enumerates the closed set of course matcher rules.
type MatcherType string

const (
	MatcherDepartment      MatcherType = "department"
	MatcherCodePrefix      MatcherType = "courseCodePrefix"
	MatcherKeyword         MatcherType = "keyword"
	MatcherSpecificCourses MatcherType = "specificCourses"
)

// CourseMatcher selects catalog courses by attribute. It is a tagged union:
// Type decides how Values are interpreted.
type CourseMatcher struct {
	Type   MatcherType `json:"type"`
	Values []string    `json:"values"`
}

// Matches reports whether the matcher selects the given course.
func (m CourseMatcher) Matches(course Course) bool {
	switch m.Type {
	case MatcherDepartment:
		for _, v := range m.Values {
			if course.Department == v {
				return true
			}
		}
	case MatcherCodePrefix:
		for _, v := range m.Values {
			if v != "" && len(course.Code) >= len(v) && course.Code[:len(v)] == v {
				return true
			}
		}
	case MatcherKeyword:
		for _, v := range m.Values {
			for _, kw := range course.Keywords {
				if kw == v {
					return true
				}
			}
		}
	case MatcherSpecificCourses:
		for _, v := range m.Values {
			if course.Code == v {
				return true
			}
		}
	}
	return false
}

// DegreeRequirement is one rule within an academic program. Progress fields
// are always recomputed by the audit engine, never hand-edited.
type DegreeRequirement struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	RequiredCredits int            `json:"required_credits"`
	Matcher         *CourseMatcher `json:"matcher,omitempty"`
	ChoiceCourses   []string       `json:"choice_courses,omitempty"`
	ChoiceRequired  int            `json:"choice_required,omitempty"`
	Progress        float64        `json:"progress"`
	ProgressCourses int            `json:"progress_courses"`
}

// ProgramType distinguishes majors from minors.
type ProgramType string

const (
	ProgramMajor ProgramType = "Major"
	ProgramMinor ProgramType = "Minor"
)

// AcademicProgram bundles the requirement rules for a declared credential.
type AcademicProgram struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         ProgramType         `json:"type"`
	TotalCredits int                 `json:"total_credits"`
	Requirements []DegreeRequirement `json:"requirements"`
	Description  string              `json:"description,omitempty"`
}

// RequirementStatus summarises a requirement inside an aggregate audit.
type RequirementStatus string

const (
	RequirementFulfilled          RequirementStatus = "fulfilled"
	RequirementPartiallyFulfilled RequirementStatus = "partially_fulfilled"
	RequirementInProgress         RequirementStatus = "in_progress"
	RequirementNotFulfilled       RequirementStatus = "not_fulfilled"
)

// RequirementResult is a progress-annotated requirement with its status.
type RequirementResult struct {
	DegreeRequirement
	Status RequirementStatus `json:"status"`
}

// DegreeAuditResults is the aggregate audit used by the canonical,
// non-what-if degree view.
type DegreeAuditResults struct {
	ProgramID            string              `json:"program_id"`
	ProgramName          string              `json:"program_name"`
	TotalCreditsEarned   int                 `json:"total_credits_earned"`
	TotalCreditsRequired int                 `json:"total_credits_required"`
	OverallProgress      float64             `json:"overall_progress"`
	Requirements         []RequirementResult `json:"requirements"`
}
