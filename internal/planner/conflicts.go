// Package planner holds the schedule-generation core: conflict detection,
// candidate enumeration, and preference-based ranking. Everything in this
// package is pure and deterministic; callers pass immutable snapshots and
// receive freshly constructed values.
package planner

import (
	"fmt"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/timeblock"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

// CourseLookup resolves catalog courses by id.
type CourseLookup interface {
	CourseByID(id string) (models.Course, bool)
}

type entityKind int

const (
	entitySection entityKind = iota
	entityBusyTime
)

type taggedEntity struct {
	kind     entityKind
	courseID string
	code     string
	title    string
	blocks   []timeblock.Block
}

// DetectConflicts finds all time, prerequisite, and corequisite conflicts for
// a chosen set of sections plus the student's busy times. Output ordering is
// stable: section pairs in input order, then busy times, then requisites per
// course in input order. One time conflict is emitted per unordered entity
// pair regardless of how many of their blocks overlap.
func DetectConflicts(sections []models.CourseSection, busyTimes []models.BusyTime, courses CourseLookup, completed []string) ([]models.ScheduleConflict, error) {
	entities := make([]taggedEntity, 0, len(sections)+len(busyTimes))
	for _, section := range sections {
		blocks, err := SectionBlocks(section)
		if err != nil {
			return nil, err
		}
		entities = append(entities, taggedEntity{
			kind:     entitySection,
			courseID: section.CourseID,
			code:     courseCode(courses, section.CourseID),
			blocks:   blocks,
		})
	}
	for _, busy := range busyTimes {
		blocks, err := timeblock.Normalize(busy.Days, busy.StartTime, busy.EndTime)
		if err != nil {
			return nil, err
		}
		entities = append(entities, taggedEntity{
			kind:   entityBusyTime,
			title:  busy.Title,
			blocks: blocks,
		})
	}

	conflicts := make([]models.ScheduleConflict, 0)
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := entities[i], entities[j]
			if a.kind == entityBusyTime && b.kind == entityBusyTime {
				continue
			}
			if !entitiesOverlap(a, b) {
				continue
			}
			if a.kind == entitySection && b.kind == entitySection {
				conflicts = append(conflicts, models.ScheduleConflict{
					Type:        models.ConflictTime,
					Description: fmt.Sprintf("Time conflict between %s and %s", a.code, b.code),
					CourseIDs:   []string{a.courseID, b.courseID},
					Severity:    models.SeverityError,
				})
				continue
			}
			section, busy := a, b
			if section.kind == entityBusyTime {
				section, busy = b, a
			}
			conflicts = append(conflicts, models.ScheduleConflict{
				Type:        models.ConflictTime,
				Description: fmt.Sprintf("%s overlaps busy time %q", section.code, busy.title),
				CourseIDs:   []string{section.courseID},
				Severity:    models.SeverityWarning,
			})
		}
	}

	conflicts = append(conflicts, requisiteConflicts(sections, courses, completed)...)
	return conflicts, nil
}

// SectionBlocks normalises every meeting block of a section.
func SectionBlocks(section models.CourseSection) ([]timeblock.Block, error) {
	var blocks []timeblock.Block
	for _, meeting := range section.Schedule {
		normalized, err := timeblock.Normalize(meeting.Days, meeting.StartTime, meeting.EndTime)
		if err != nil {
			appErr := appErrors.FromError(err)
			return nil, appErrors.Wrap(err, appErr.Code, appErr.Status, fmt.Sprintf("section %s has an invalid meeting time", section.ID))
		}
		blocks = append(blocks, normalized...)
	}
	return blocks, nil
}

func entitiesOverlap(a, b taggedEntity) bool {
	for _, blockA := range a.blocks {
		for _, blockB := range b.blocks {
			if blockA.Overlaps(blockB) {
				return true
			}
		}
	}
	return false
}

// requisiteConflicts checks prerequisites and corequisites for every distinct
// planned course. A prerequisite satisfied only by being co-scheduled in the
// same candidate is a warning; a corequisite satisfied by co-scheduling is a
// soft warning too, since concurrent enrollment may still fall through.
func requisiteConflicts(sections []models.CourseSection, courses CourseLookup, completed []string) []models.ScheduleConflict {
	completedSet := make(map[string]bool, len(completed))
	for _, code := range completed {
		completedSet[code] = true
	}
	planned := make(map[string]bool, len(sections))
	for _, section := range sections {
		planned[section.CourseID] = true
	}

	var conflicts []models.ScheduleConflict
	seen := make(map[string]bool, len(sections))
	for _, section := range sections {
		if seen[section.CourseID] {
			continue
		}
		seen[section.CourseID] = true
		course, ok := lookupCourse(courses, section.CourseID)
		if !ok {
			continue
		}

		for _, prereqID := range course.Prerequisites {
			if isCompleted(completedSet, courses, prereqID) {
				continue
			}
			prereqCode := courseCode(courses, prereqID)
			if planned[prereqID] {
				conflicts = append(conflicts, models.ScheduleConflict{
					Type:        models.ConflictPrerequisite,
					Description: fmt.Sprintf("%s requires %s, which is only scheduled concurrently", course.Code, prereqCode),
					CourseIDs:   []string{course.ID, prereqID},
					Severity:    models.SeverityWarning,
				})
				continue
			}
			conflicts = append(conflicts, models.ScheduleConflict{
				Type:        models.ConflictPrerequisite,
				Description: fmt.Sprintf("%s requires prerequisite %s", course.Code, prereqCode),
				CourseIDs:   []string{course.ID, prereqID},
				Severity:    models.SeverityError,
			})
		}

		for _, coreqID := range course.Corequisites {
			if isCompleted(completedSet, courses, coreqID) {
				continue
			}
			coreqCode := courseCode(courses, coreqID)
			if planned[coreqID] {
				conflicts = append(conflicts, models.ScheduleConflict{
					Type:        models.ConflictCorequisite,
					Description: fmt.Sprintf("%s corequisite %s is scheduled concurrently", course.Code, coreqCode),
					CourseIDs:   []string{course.ID, coreqID},
					Severity:    models.SeverityWarning,
				})
				continue
			}
			conflicts = append(conflicts, models.ScheduleConflict{
				Type:        models.ConflictCorequisite,
				Description: fmt.Sprintf("%s requires corequisite %s", course.Code, coreqCode),
				CourseIDs:   []string{course.ID, coreqID},
				Severity:    models.SeverityError,
			})
		}
	}
	return conflicts
}

// isCompleted accepts either a course id or its catalog code in the
// completed set, since student records track codes while requisites
// reference ids.
func isCompleted(completedSet map[string]bool, courses CourseLookup, courseID string) bool {
	if completedSet[courseID] {
		return true
	}
	if course, ok := lookupCourse(courses, courseID); ok && completedSet[course.Code] {
		return true
	}
	return false
}

func lookupCourse(courses CourseLookup, id string) (models.Course, bool) {
	if courses == nil {
		return models.Course{}, false
	}
	return courses.CourseByID(id)
}

func courseCode(courses CourseLookup, id string) string {
	if course, ok := lookupCourse(courses, id); ok {
		return course.Code
	}
	return id
}
