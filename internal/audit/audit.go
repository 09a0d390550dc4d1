// Package audit evaluates degree-requirement rules against a student's
// completed coursework. All functions are pure: requirements are deep-copied
// before annotation so repeated what-if runs never corrupt the canonical
// program definitions.
package audit

import (
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
)

// AuditProgram returns progress-annotated copies of the program's
// requirements. Choice-based rules count completed choice courses;
// matcher-based rules sum credits of matching completed courses; a rule that
// is both uses the count-based fraction over matched courses.
func AuditProgram(completedCourseCodes []string, program models.AcademicProgram, catalog []models.Course) []models.DegreeRequirement {
	completed := make(map[string]bool, len(completedCourseCodes))
	for _, code := range completedCourseCodes {
		completed[code] = true
	}

	results := make([]models.DegreeRequirement, 0, len(program.Requirements))
	for _, requirement := range program.Requirements {
		annotated := copyRequirement(requirement)
		evaluate(&annotated, completed, catalog)
		results = append(results, annotated)
	}
	return results
}

func evaluate(req *models.DegreeRequirement, completed map[string]bool, catalog []models.Course) {
	switch {
	case req.Matcher != nil && req.ChoiceRequired > 0:
		matched := matchedCompleted(*req.Matcher, completed, catalog)
		req.ProgressCourses = len(matched)
		req.Progress = clampFraction(float64(len(matched)) / float64(req.ChoiceRequired))

	case req.Matcher != nil:
		matched := matchedCompleted(*req.Matcher, completed, catalog)
		req.ProgressCourses = len(matched)
		if req.RequiredCredits > 0 {
			sum := 0
			for _, course := range matched {
				sum += course.Credits
			}
			req.Progress = clampFraction(float64(sum) / float64(req.RequiredCredits))
			return
		}
		// No credit threshold: binary "all listed courses present" for a
		// specific-courses matcher, "anything matched" otherwise.
		if req.Matcher.Type == models.MatcherSpecificCourses {
			for _, code := range req.Matcher.Values {
				if !completed[code] {
					req.Progress = 0
					return
				}
			}
			req.Progress = 1
			return
		}
		if len(matched) > 0 {
			req.Progress = 1
		}

	case len(req.ChoiceCourses) > 0:
		count := 0
		for _, code := range req.ChoiceCourses {
			if completed[code] {
				count++
			}
		}
		required := req.ChoiceRequired
		if required <= 0 {
			required = len(req.ChoiceCourses)
		}
		req.ProgressCourses = count
		if required > 0 {
			req.Progress = clampFraction(float64(count) / float64(required))
		}

	default:
		req.Progress = 0
		req.ProgressCourses = 0
	}
}

// CalculateDegreeAudit produces the aggregate audit for the canonical degree
// view: per-requirement statuses plus credit totals. A requirement with no
// completed progress is "in_progress" when the student's in-progress courses
// would advance it.
func CalculateDegreeAudit(student models.StudentInfo, program models.AcademicProgram, catalog []models.Course) models.DegreeAuditResults {
	requirements := AuditProgram(student.CompletedCourses, program, catalog)

	projected := requirements
	if len(student.InProgressCourses) > 0 {
		all := make([]string, 0, len(student.CompletedCourses)+len(student.InProgressCourses))
		all = append(all, student.CompletedCourses...)
		all = append(all, student.InProgressCourses...)
		projected = AuditProgram(all, program, catalog)
	}

	results := make([]models.RequirementResult, 0, len(requirements))
	for i, requirement := range requirements {
		results = append(results, models.RequirementResult{
			DegreeRequirement: requirement,
			Status:            status(requirement, projected[i]),
		})
	}

	required := program.TotalCredits
	if required == 0 {
		required = student.RequiredCredits
	}
	overall := 0.0
	if required > 0 {
		overall = clampFraction(float64(student.TotalCredits) / float64(required))
	}

	return models.DegreeAuditResults{
		ProgramID:            program.ID,
		ProgramName:          program.Name,
		TotalCreditsEarned:   student.TotalCredits,
		TotalCreditsRequired: required,
		OverallProgress:      overall,
		Requirements:         results,
	}
}

func status(current, projected models.DegreeRequirement) models.RequirementStatus {
	switch {
	case current.Progress >= 1:
		return models.RequirementFulfilled
	case current.Progress > 0:
		return models.RequirementPartiallyFulfilled
	case projected.Progress > current.Progress:
		return models.RequirementInProgress
	default:
		return models.RequirementNotFulfilled
	}
}

func matchedCompleted(matcher models.CourseMatcher, completed map[string]bool, catalog []models.Course) []models.Course {
	var matched []models.Course
	for _, course := range catalog {
		if completed[course.Code] && matcher.Matches(course) {
			matched = append(matched, course)
		}
	}
	return matched
}

func copyRequirement(req models.DegreeRequirement) models.DegreeRequirement {
	copied := req
	if req.Matcher != nil {
		matcher := *req.Matcher
		matcher.Values = append([]string(nil), req.Matcher.Values...)
		copied.Matcher = &matcher
	}
	copied.ChoiceCourses = append([]string(nil), req.ChoiceCourses...)
	copied.Progress = 0
	copied.ProgressCourses = 0
	return copied
}

func clampFraction(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
