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

type degreeAuditor interface {
	Audit(ctx context.Context, req dto.AuditRequest) (*models.DegreeAuditResults, error)
	WhatIf(ctx context.Context, req dto.WhatIfRequest) (*dto.WhatIfResponse, error)
}

// AuditHandler exposes degree audit endpoints.
type AuditHandler struct {
	service degreeAuditor
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// Audit godoc
// @Summary Run the canonical degree audit for a student
// @Tags Audit
// @Accept json
// @Produce json
// @Param payload body dto.AuditRequest true "Audit payload"
// @Success 200 {object} response.Envelope
// @Router /audit [post]
func (h *AuditHandler) Audit(c *gin.Context) {
	var req dto.AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid audit payload"))
		return
	}
	results, err := h.service.Audit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// WhatIf godoc
// @Summary Audit a hypothetical plan against any program
// @Description Evaluates an arbitrary completed-course set against the chosen program without touching stored student state.
// @Tags Audit
// @Accept json
// @Produce json
// @Param payload body dto.WhatIfRequest true "What-if payload"
// @Success 200 {object} response.Envelope
// @Router /audit/what-if [post]
func (h *AuditHandler) WhatIf(c *gin.Context) {
	var req dto.WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid what-if payload"))
		return
	}
	results, err := h.service.WhatIf(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}
