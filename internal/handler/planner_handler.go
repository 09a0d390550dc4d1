package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/service"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/response"
)

type schedulePlanner interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
	Save(ctx context.Context, req dto.SaveScheduleRequest) (models.Schedule, error)
	List(ctx context.Context) []models.Schedule
	Get(ctx context.Context, id string) (models.Schedule, error)
	Rename(ctx context.Context, id string, req dto.RenameScheduleRequest) (models.Schedule, error)
	Duplicate(ctx context.Context, id string) (models.Schedule, error)
	Delete(ctx context.Context, id string)
}

// PlannerHandler exposes schedule generation and the saved-schedule session.
type PlannerHandler struct {
	service schedulePlanner
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: svc}
}

// Generate godoc
// @Summary Generate ranked conflict-free schedules
// @Description Builds every conflict-free section combination for the selected courses around the supplied busy times, then ranks them by preference fit (lower score first). An empty course selection yields one trivial empty schedule. When the search budget runs out after at least one candidate was found, the partial set is returned with truncated=true; only a search that exhausts its budget with nothing found fails with GENERATION_BUDGET_EXCEEDED.
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *PlannerHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// CheckConflicts godoc
// @Summary Detect conflicts in a section selection
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.ConflictCheckRequest true "Conflict check payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/conflicts [post]
func (h *PlannerHandler) CheckConflicts(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict check payload"))
		return
	}
	resp, err := h.service.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Save godoc
// @Summary Save a schedule to the session
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.SaveScheduleRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *PlannerHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	schedule, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// List godoc
// @Summary List saved schedules
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *PlannerHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Get godoc
// @Summary Get one saved schedule
// @Tags Planner
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *PlannerHandler) Get(c *gin.Context) {
	schedule, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Rename godoc
// @Summary Rename a saved schedule
// @Tags Planner
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body dto.RenameScheduleRequest true "Rename payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [patch]
func (h *PlannerHandler) Rename(c *gin.Context) {
	var req dto.RenameScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rename payload"))
		return
	}
	schedule, err := h.service.Rename(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Duplicate godoc
// @Summary Duplicate a saved schedule
// @Tags Planner
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 201 {object} response.Envelope
// @Router /schedules/{id}/duplicate [post]
func (h *PlannerHandler) Duplicate(c *gin.Context) {
	schedule, err := h.service.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Delete godoc
// @Summary Delete a saved schedule
// @Tags Planner
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *PlannerHandler) Delete(c *gin.Context) {
	h.service.Delete(c.Request.Context(), c.Param("id"))
	response.NoContent(c)
}
