package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

type plannerMock struct {
	captured  dto.GenerateScheduleRequest
	generated *dto.GenerateScheduleResponse
	err       error
}

func (m *plannerMock) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return m.generated, nil
}

func (m *plannerMock) CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	return &dto.ConflictCheckResponse{Conflicts: []models.ScheduleConflict{}}, nil
}

func (m *plannerMock) Save(ctx context.Context, req dto.SaveScheduleRequest) (models.Schedule, error) {
	schedule := req.Schedule
	schedule.ID = "saved-1"
	return schedule, nil
}

func (m *plannerMock) List(ctx context.Context) []models.Schedule { return nil }

func (m *plannerMock) Get(ctx context.Context, id string) (models.Schedule, error) {
	return models.Schedule{}, appErrors.Clone(appErrors.ErrNotFound, "schedule "+id+" not found")
}

func (m *plannerMock) Rename(ctx context.Context, id string, req dto.RenameScheduleRequest) (models.Schedule, error) {
	return models.Schedule{ID: id, Name: req.Name}, nil
}

func (m *plannerMock) Duplicate(ctx context.Context, id string) (models.Schedule, error) {
	return models.Schedule{ID: id + "-copy"}, nil
}

func (m *plannerMock) Delete(ctx context.Context, id string) {}

func postJSON(t *testing.T, handlerFn gin.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handlerFn(c)
	return w
}

func TestPlannerHandlerGenerate(t *testing.T) {
	mockSvc := &plannerMock{generated: &dto.GenerateScheduleResponse{
		Schedules:    []models.Schedule{{ID: "option-1", Name: "Option 1"}},
		NodesVisited: 42,
	}}
	handler := &PlannerHandler{service: mockSvc}

	w := postJSON(t, handler.Generate, "/schedules/generate", dto.GenerateScheduleRequest{
		TermID:    "fall-2025",
		CourseIDs: []string{"cs101"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fall-2025", mockSvc.captured.TermID)
	assert.Contains(t, w.Body.String(), `"nodes_visited":42`)
}

func TestPlannerHandlerGenerateBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &PlannerHandler{service: &plannerMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}

func TestPlannerHandlerGenerateServiceError(t *testing.T) {
	handler := &PlannerHandler{service: &plannerMock{
		err: appErrors.Clone(appErrors.ErrNoEligibleSections, "course cs101 has no eligible sections"),
	}}

	w := postJSON(t, handler.Generate, "/schedules/generate", dto.GenerateScheduleRequest{
		TermID:    "fall-2025",
		CourseIDs: []string{"cs101"},
	})

	require.Equal(t, appErrors.ErrNoEligibleSections.Status, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrNoEligibleSections.Code)
}

func TestPlannerHandlerSave(t *testing.T) {
	handler := &PlannerHandler{service: &plannerMock{}}

	w := postJSON(t, handler.Save, "/schedules", dto.SaveScheduleRequest{
		Schedule: models.Schedule{Name: "Plan A"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "saved-1")
}

func TestPlannerHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &PlannerHandler{service: &plannerMock{}}

	req, _ := http.NewRequest(http.MethodGet, "/schedules/ghost", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
