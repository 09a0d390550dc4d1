package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/catalog"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

func newServiceCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.New()
	require.NoError(t, err)
	return store
}

func newPlannerFixture(t *testing.T, cfg PlannerConfig) *PlannerService {
	t.Helper()
	return NewPlannerService(newServiceCatalog(t), nil, nil, nil, cfg)
}

func TestPlannerServiceGenerate(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		TermID:    "fall-2025",
		CourseIDs: []string{"cs101", "math105"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Schedules)
	assert.Greater(t, resp.NodesVisited, 0)

	for i, schedule := range resp.Schedules {
		assert.Len(t, schedule.Sections, 2)
		assert.Equal(t, 6, schedule.TotalCredits)
		assert.Equal(t, "fall-2025", schedule.TermID)
		if i > 0 {
			assert.GreaterOrEqual(t, schedule.Score, resp.Schedules[i-1].Score)
		}
	}
}

func TestPlannerServiceGenerateValidation(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		CourseIDs: []string{"cs101"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestPlannerServiceGenerateEmptySelection(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{TermID: "fall-2025"})
	require.NoError(t, err)
	require.Len(t, resp.Schedules, 1)
	assert.Empty(t, resp.Schedules[0].Sections)
	assert.Equal(t, 0, resp.Schedules[0].TotalCredits)
	assert.Equal(t, "Option 1", resp.Schedules[0].Name)
	assert.False(t, resp.Truncated)
}

func TestPlannerServiceGenerateUnknownCourse(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		TermID:    "fall-2025",
		CourseIDs: []string{"nope"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestPlannerServiceGenerateFixedSection(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		TermID:        "fall-2025",
		CourseIDs:     []string{"cs101", "math105"},
		FixedSections: []string{"cs101-02"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Schedules)
	for _, schedule := range resp.Schedules {
		found := false
		for _, section := range schedule.Sections {
			if section.ID == "cs101-02" {
				found = true
			}
		}
		assert.True(t, found, "every schedule must honor the locked section")
	}
}

func TestPlannerServiceGenerateMaxResults(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		TermID:     "fall-2025",
		CourseIDs:  []string{"cs101", "math105"},
		MaxResults: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Schedules, 1)
	assert.True(t, resp.Truncated)
}

func TestPlannerServiceGenerateUsesStudentHistory(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	// Without history CS201's prerequisite is unmet.
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		TermID:    "fall-2025",
		CourseIDs: []string{"cs201"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Schedules)
	require.NotEmpty(t, resp.Schedules[0].Conflicts)
	assert.Equal(t, models.ConflictPrerequisite, resp.Schedules[0].Conflicts[0].Type)

	// student-1 completed CS101, which satisfies it.
	resp, err = svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		StudentID: "student-1",
		TermID:    "fall-2025",
		CourseIDs: []string{"cs201"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Schedules)
	assert.Empty(t, resp.Schedules[0].Conflicts)
}

func TestPlannerServiceCheckConflicts(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	resp, err := svc.CheckConflicts(context.Background(), dto.ConflictCheckRequest{
		SectionIDs:       []string{"cs101-01", "math105-01"},
		CompletedCourses: []string{"MATH105"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, models.ConflictTime, resp.Conflicts[0].Type)
	assert.Equal(t, models.SeverityError, resp.Conflicts[0].Severity)
}

func TestPlannerServiceCheckConflictsCleanSelection(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	resp, err := svc.CheckConflicts(context.Background(), dto.ConflictCheckRequest{
		SectionIDs:       []string{"cs101-02", "math105-01"},
		CompletedCourses: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
	assert.NotNil(t, resp.Conflicts)
}

func TestPlannerServiceCheckConflictsUnknownSection(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})

	_, err := svc.CheckConflicts(context.Background(), dto.ConflictCheckRequest{
		SectionIDs: []string{"ghost-01"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestPlannerServiceSavedScheduleLifecycle(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{})
	ctx := context.Background()

	saved, err := svc.Save(ctx, dto.SaveScheduleRequest{Schedule: models.Schedule{
		Name:   "Plan A",
		TermID: "fall-2025",
	}})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan A", got.Name)

	renamed, err := svc.Rename(ctx, saved.ID, dto.RenameScheduleRequest{Name: "Plan B"})
	require.NoError(t, err)
	assert.Equal(t, "Plan B", renamed.Name)

	dup, err := svc.Duplicate(ctx, saved.ID)
	require.NoError(t, err)
	assert.NotEqual(t, saved.ID, dup.ID)
	assert.Equal(t, "Plan B (copy)", dup.Name)

	assert.Len(t, svc.List(ctx), 2)

	svc.Delete(ctx, saved.ID)
	assert.Len(t, svc.List(ctx), 1)

	_, err = svc.Get(ctx, saved.ID)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestPlannerServiceSavedScheduleExpiry(t *testing.T) {
	svc := newPlannerFixture(t, PlannerConfig{SessionTTL: time.Millisecond})
	ctx := context.Background()

	saved, err := svc.Save(ctx, dto.SaveScheduleRequest{Schedule: models.Schedule{Name: "Ephemeral"}})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Get(ctx, saved.ID)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	assert.Empty(t, svc.List(ctx))
}

func TestPlannerServiceSaveComputesCredits(t *testing.T) {
	store := newServiceCatalog(t)
	svc := NewPlannerService(store, nil, nil, nil, PlannerConfig{})

	section, _, ok := store.SectionByID("cs101-01")
	require.True(t, ok)

	saved, err := svc.Save(context.Background(), dto.SaveScheduleRequest{Schedule: models.Schedule{
		Name:     "One course",
		Sections: []models.CourseSection{section},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, saved.TotalCredits)
}
