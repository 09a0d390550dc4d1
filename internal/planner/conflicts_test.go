package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
)

type lookupMap map[string]models.Course

func (m lookupMap) CourseByID(id string) (models.Course, bool) {
	course, ok := m[id]
	return course, ok
}

func section(id, courseID string, days []string, start, end string) models.CourseSection {
	return models.CourseSection{
		ID:       id,
		CourseID: courseID,
		Schedule: []models.SectionSchedule{{Days: days, StartTime: start, EndTime: end}},
		Type:     models.SectionTypeStandard,
		Status:   models.SectionStatusOpen,
	}
}

func fixtureCatalog() lookupMap {
	return lookupMap{
		"cs101": {
			ID: "cs101", Code: "CS101", Name: "Intro to Computer Science", Credits: 3, Department: "Computer Science",
			Sections: []models.CourseSection{section("cs101-01", "cs101", []string{"M", "W", "F"}, "09:00", "10:00")},
		},
		"math105": {
			ID: "math105", Code: "MATH105", Name: "Calculus I", Credits: 3, Department: "Mathematics",
			Sections: []models.CourseSection{
				section("math105-01", "math105", []string{"M", "W", "F"}, "09:00", "10:00"),
				section("math105-02", "math105", []string{"T", "Th"}, "11:00", "12:30"),
			},
		},
		"cs201": {
			ID: "cs201", Code: "CS201", Name: "Data Structures", Credits: 4, Department: "Computer Science",
			Prerequisites: []string{"cs101"},
			Sections:      []models.CourseSection{section("cs201-01", "cs201", []string{"T", "Th"}, "14:00", "15:30")},
		},
		"cs210": {
			ID: "cs210", Code: "CS210", Name: "Systems Programming", Credits: 3, Department: "Computer Science",
			Corequisites: []string{"cs210l"},
			Sections:     []models.CourseSection{section("cs210-01", "cs210", []string{"M", "W"}, "13:00", "14:30")},
		},
		"cs210l": {
			ID: "cs210l", Code: "CS210L", Name: "Systems Programming Lab", Credits: 1, Department: "Computer Science",
			Sections: []models.CourseSection{section("cs210l-01", "cs210l", []string{"F"}, "13:00", "15:00")},
		},
	}
}

func TestDetectConflictsOverlappingCourses(t *testing.T) {
	catalog := fixtureCatalog()
	sections := []models.CourseSection{
		catalog["cs101"].Sections[0],
		catalog["math105"].Sections[0],
	}

	conflicts, err := DetectConflicts(sections, nil, catalog, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTime, conflicts[0].Type)
	assert.Equal(t, models.SeverityError, conflicts[0].Severity)
	assert.Equal(t, []string{"cs101", "math105"}, conflicts[0].CourseIDs)
	assert.Contains(t, conflicts[0].Description, "CS101")
	assert.Contains(t, conflicts[0].Description, "MATH105")
}

func TestDetectConflictsDisjointSections(t *testing.T) {
	catalog := fixtureCatalog()
	sections := []models.CourseSection{
		catalog["cs101"].Sections[0],
		catalog["math105"].Sections[1],
	}

	conflicts, err := DetectConflicts(sections, nil, catalog, nil)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDetectConflictsDeduplicatesBlockPairs(t *testing.T) {
	catalog := fixtureCatalog()
	// Two meeting blocks each, both overlapping: still one conflict record.
	a := models.CourseSection{
		ID: "x-01", CourseID: "cs101",
		Schedule: []models.SectionSchedule{
			{Days: []string{"M"}, StartTime: "09:00", EndTime: "10:00"},
			{Days: []string{"W"}, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	b := models.CourseSection{
		ID: "y-01", CourseID: "math105",
		Schedule: []models.SectionSchedule{
			{Days: []string{"M"}, StartTime: "09:30", EndTime: "10:30"},
			{Days: []string{"W"}, StartTime: "09:30", EndTime: "10:30"},
		},
	}

	conflicts, err := DetectConflicts([]models.CourseSection{a, b}, nil, catalog, nil)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
}

func TestDetectConflictsBusyTimeIsWarning(t *testing.T) {
	catalog := fixtureCatalog()
	busy := []models.BusyTime{{
		ID: "busy-1", Title: "Part-time job", Type: models.BusyTimeWork,
		Days: []string{"M"}, StartTime: "09:30", EndTime: "12:00",
	}}

	conflicts, err := DetectConflicts([]models.CourseSection{catalog["cs101"].Sections[0]}, busy, catalog, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTime, conflicts[0].Type)
	assert.Equal(t, models.SeverityWarning, conflicts[0].Severity)
	assert.Contains(t, conflicts[0].Description, "Part-time job")
}

func TestDetectConflictsPrerequisites(t *testing.T) {
	catalog := fixtureCatalog()
	cs201 := catalog["cs201"].Sections[0]

	// Missing entirely: error.
	conflicts, err := DetectConflicts([]models.CourseSection{cs201}, nil, catalog, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictPrerequisite, conflicts[0].Type)
	assert.Equal(t, models.SeverityError, conflicts[0].Severity)

	// Completed (by code): satisfied.
	conflicts, err = DetectConflicts([]models.CourseSection{cs201}, nil, catalog, []string{"CS101"})
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Co-scheduled only: warning.
	conflicts, err = DetectConflicts([]models.CourseSection{catalog["cs101"].Sections[0], cs201}, nil, catalog, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictPrerequisite, conflicts[0].Type)
	assert.Equal(t, models.SeverityWarning, conflicts[0].Severity)
}

func TestDetectConflictsCorequisites(t *testing.T) {
	catalog := fixtureCatalog()
	cs210 := catalog["cs210"].Sections[0]
	lab := catalog["cs210l"].Sections[0]

	// Neither completed nor co-scheduled: error.
	conflicts, err := DetectConflicts([]models.CourseSection{cs210}, nil, catalog, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictCorequisite, conflicts[0].Type)
	assert.Equal(t, models.SeverityError, conflicts[0].Severity)

	// Co-scheduled: soft warning.
	conflicts, err = DetectConflicts([]models.CourseSection{cs210, lab}, nil, catalog, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictCorequisite, conflicts[0].Type)
	assert.Equal(t, models.SeverityWarning, conflicts[0].Severity)

	// Completed: satisfied.
	conflicts, err = DetectConflicts([]models.CourseSection{cs210}, nil, catalog, []string{"CS210L"})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDetectConflictsStableOrdering(t *testing.T) {
	catalog := fixtureCatalog()
	sections := []models.CourseSection{
		catalog["cs101"].Sections[0],
		catalog["math105"].Sections[0],
		catalog["cs201"].Sections[0],
	}
	busy := []models.BusyTime{{
		ID: "busy-1", Title: "Club", Type: models.BusyTimeEvent,
		Days: []string{"T"}, StartTime: "14:00", EndTime: "15:00",
	}}

	first, err := DetectConflicts(sections, busy, catalog, nil)
	require.NoError(t, err)
	second, err := DetectConflicts(sections, busy, catalog, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Section pairs come before busy-time overlaps, requisites last.
	require.Len(t, first, 3)
	assert.Equal(t, models.SeverityError, first[0].Severity)
	assert.Equal(t, []string{"cs101", "math105"}, first[0].CourseIDs)
	assert.Equal(t, models.SeverityWarning, first[1].Severity)
	assert.Equal(t, models.ConflictPrerequisite, first[2].Type)
}

func TestDetectConflictsMalformedCatalogData(t *testing.T) {
	catalog := fixtureCatalog()
	bad := section("bad-01", "cs101", []string{"M"}, "10:00", "09:00")

	_, err := DetectConflicts([]models.CourseSection{bad}, nil, catalog, nil)
	require.Error(t, err)
}
