package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	return NewExportService(newServiceCatalog(t), nil, nil, nil, nil)
}

func exportFixtureSchedule(t *testing.T) models.Schedule {
	t.Helper()
	store := newServiceCatalog(t)
	cs, _, ok := store.SectionByID("cs101-01")
	require.True(t, ok)
	math, _, ok := store.SectionByID("math105-02")
	require.True(t, ok)
	return models.Schedule{
		ID:           "plan-a",
		Name:         "Plan A",
		TermID:       "fall-2025",
		Sections:     []models.CourseSection{cs, math},
		TotalCredits: 6,
	}
}

func TestExportServiceRoundTrip(t *testing.T) {
	svc := newExportFixture(t)
	ctx := context.Background()
	schedule := exportFixtureSchedule(t)

	envelope, err := svc.Export(ctx, dto.ExportScheduleRequest{Schedule: schedule})
	require.NoError(t, err)
	assert.Equal(t, dto.ScheduleExportVersion, envelope.Version)
	assert.Len(t, envelope.Sections, 2)
	assert.Equal(t, 6, envelope.TotalCredits)

	raw, err := json.Marshal(envelope)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"exported_sections"`)

	imported, err := svc.Import(ctx, raw)
	require.NoError(t, err)
	assert.Empty(t, imported.Notices)
	assert.Equal(t, schedule.Name, imported.Schedule.Name)
	assert.Equal(t, schedule.TermID, imported.Schedule.TermID)
	require.Len(t, imported.Schedule.Sections, 2)
	assert.Equal(t, "cs101-01", imported.Schedule.Sections[0].ID)
	assert.Equal(t, 6, imported.Schedule.TotalCredits)
}

func TestExportServiceImportRejectsGarbage(t *testing.T) {
	svc := newExportFixture(t)

	_, err := svc.Import(context.Background(), []byte("not json"))
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidScheduleFormat))
}

func TestExportServiceImportRejectsUnknownVersion(t *testing.T) {
	svc := newExportFixture(t)

	raw, err := json.Marshal(dto.ScheduleExport{Version: "2.0"})
	require.NoError(t, err)

	_, err = svc.Import(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidScheduleFormat))
}

func TestExportServiceImportFailsClosedOnUnknownSection(t *testing.T) {
	svc := newExportFixture(t)

	raw, err := json.Marshal(dto.ScheduleExport{
		Version:  dto.ScheduleExportVersion,
		Sections: []dto.ExportedSection{{CourseID: "cs101", SectionID: "cs101-99"}},
	})
	require.NoError(t, err)

	_, err = svc.Import(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnresolvedCourseReference))
}

func TestExportServiceImportFailsClosedOnMismatchedOwner(t *testing.T) {
	svc := newExportFixture(t)

	raw, err := json.Marshal(dto.ScheduleExport{
		Version:  dto.ScheduleExportVersion,
		Sections: []dto.ExportedSection{{CourseID: "math105", SectionID: "cs101-01"}},
	})
	require.NoError(t, err)

	_, err = svc.Import(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnresolvedCourseReference))
}

func TestExportServiceImportReconcilesCredits(t *testing.T) {
	svc := newExportFixture(t)

	raw, err := json.Marshal(dto.ScheduleExport{
		Version:      dto.ScheduleExportVersion,
		Name:         "Stale file",
		Sections:     []dto.ExportedSection{{CourseID: "cs101", SectionID: "cs101-01"}},
		TotalCredits: 99,
	})
	require.NoError(t, err)

	imported, err := svc.Import(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 3, imported.Schedule.TotalCredits)
	require.Len(t, imported.Notices, 1)
	assert.Contains(t, imported.Notices[0], "adjusted from 99 to 3")
}

func TestExportServiceDownloadCSV(t *testing.T) {
	svc := newExportFixture(t)
	schedule := exportFixtureSchedule(t)

	result, err := svc.Download(context.Background(), "plan a/../x", dto.DownloadScheduleRequest{Schedule: schedule}, DownloadCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.False(t, strings.ContainsAny(result.FileName, "/\\ "))
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

	body := string(result.Data)
	assert.Contains(t, body, "# Schedule: Plan A")
	assert.Contains(t, body, "CS101 Introduction to Computer Science")
	assert.Contains(t, body, "09:00-10:00")
}

func TestExportServiceDownloadPDF(t *testing.T) {
	svc := newExportFixture(t)
	schedule := exportFixtureSchedule(t)

	result, err := svc.Download(context.Background(), "plan-a", dto.DownloadScheduleRequest{Schedule: schedule}, DownloadPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "plan-a.pdf", result.FileName)
	assert.True(t, len(result.Data) > 0)
	assert.Equal(t, "%PDF", string(result.Data[:4]))
}

func TestExportServiceDownloadUnknownFormat(t *testing.T) {
	svc := newExportFixture(t)

	_, err := svc.Download(context.Background(), "plan-a", dto.DownloadScheduleRequest{Schedule: exportFixtureSchedule(t)}, DownloadFormat("docx"))
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
