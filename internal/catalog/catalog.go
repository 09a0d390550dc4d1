// Package catalog holds the in-memory mock data store backing the planner:
// courses, academic programs, and student records. Data is loaded once from
// the embedded seed and never mutated; every accessor returns copies or
// values safe to hand to the core.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

//go:embed seed.json
var seedData []byte

// Data is the raw catalog payload shape.
type Data struct {
	Courses  []models.Course          `json:"courses"`
	Programs []models.AcademicProgram `json:"programs"`
	Students []models.StudentInfo     `json:"students"`
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	Search     string
	Department string
	Page       int
	PageSize   int
}

// Store is the immutable session catalog.
type Store struct {
	courses      []models.Course
	programs     []models.AcademicProgram
	coursesByID  map[string]models.Course
	sectionOwner map[string]string
	programsByID map[string]models.AcademicProgram
	studentsByID map[string]models.StudentInfo
}

// New loads the embedded seed catalog.
func New() (*Store, error) {
	var data Data
	if err := json.Unmarshal(seedData, &data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to parse embedded catalog seed")
	}
	return NewFromData(data)
}

// NewFromData builds a store from an explicit payload, used by tests and any
// future loader. Section ownership is indexed and cross-checked here.
func NewFromData(data Data) (*Store, error) {
	store := &Store{
		courses:      data.Courses,
		programs:     data.Programs,
		coursesByID:  make(map[string]models.Course, len(data.Courses)),
		sectionOwner: make(map[string]string),
		programsByID: make(map[string]models.AcademicProgram, len(data.Programs)),
		studentsByID: make(map[string]models.StudentInfo, len(data.Students)),
	}

	for _, course := range data.Courses {
		if _, exists := store.coursesByID[course.ID]; exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("duplicate course id %s in catalog data", course.ID))
		}
		store.coursesByID[course.ID] = course
		for _, section := range course.Sections {
			if section.CourseID != course.ID {
				return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("section %s claims course %s but belongs to %s", section.ID, section.CourseID, course.ID))
			}
			if _, exists := store.sectionOwner[section.ID]; exists {
				return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("duplicate section id %s in catalog data", section.ID))
			}
			store.sectionOwner[section.ID] = course.ID
		}
	}
	for _, program := range data.Programs {
		store.programsByID[program.ID] = program
	}
	for _, student := range data.Students {
		store.studentsByID[student.ID] = student
	}
	return store, nil
}

// Courses lists catalog courses with optional search, department filter, and
// pagination. Ordering follows the seed order for deterministic pages.
func (s *Store) Courses(filter CourseFilter) ([]models.Course, models.Pagination) {
	var matched []models.Course
	search := strings.ToLower(filter.Search)
	for _, course := range s.courses {
		if filter.Department != "" && course.Department != filter.Department {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(course.Code), search) &&
			!strings.Contains(strings.ToLower(course.Name), search) {
			continue
		}
		matched = append(matched, course)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(matched)}
}

// CourseByID implements planner.CourseLookup.
func (s *Store) CourseByID(id string) (models.Course, bool) {
	course, ok := s.coursesByID[id]
	return course, ok
}

// SectionByID resolves a section and its owning course.
func (s *Store) SectionByID(id string) (models.CourseSection, models.Course, bool) {
	courseID, ok := s.sectionOwner[id]
	if !ok {
		return models.CourseSection{}, models.Course{}, false
	}
	course := s.coursesByID[courseID]
	for _, section := range course.Sections {
		if section.ID == id {
			return section, course, true
		}
	}
	return models.CourseSection{}, models.Course{}, false
}

// AllCourses returns the full catalog in seed order.
func (s *Store) AllCourses() []models.Course {
	return append([]models.Course(nil), s.courses...)
}

// Programs lists the academic programs in seed order.
func (s *Store) Programs() []models.AcademicProgram {
	return append([]models.AcademicProgram(nil), s.programs...)
}

// ProgramByID resolves a program.
func (s *Store) ProgramByID(id string) (models.AcademicProgram, bool) {
	program, ok := s.programsByID[id]
	return program, ok
}

// StudentByID resolves a student record.
func (s *Store) StudentByID(id string) (models.StudentInfo, bool) {
	student, ok := s.studentsByID[id]
	return student, ok
}
