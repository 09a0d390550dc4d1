package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/service"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/response"
)

type advisorChatter interface {
	Chat(ctx context.Context, req dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error)
}

// AdvisorHandler exposes the canned advisor chat endpoint.
type AdvisorHandler struct {
	service advisorChatter
}

// NewAdvisorHandler constructs the handler.
func NewAdvisorHandler(svc *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: svc}
}

// Chat godoc
// @Summary Ask the advisor a question
// @Description Replies are deterministic canned responses matched on keywords; there is no language model behind this endpoint.
// @Tags Advisor
// @Accept json
// @Produce json
// @Param payload body dto.AdvisorChatRequest true "Chat payload"
// @Success 200 {object} response.Envelope
// @Router /advisor/chat [post]
func (h *AdvisorHandler) Chat(c *gin.Context) {
	var req dto.AdvisorChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}
	resp, err := h.service.Chat(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
