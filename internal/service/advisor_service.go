package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

// advisorTopic maps trigger keywords to a canned reply. The first topic whose
// keyword appears in the lowercased message wins; order is significant.
type advisorTopic struct {
	Name     string
	Keywords []string
	Reply    string
}

var advisorTopics = []advisorTopic{
	{
		Name:     "conflicts",
		Keywords: []string{"conflict", "overlap", "clash"},
		Reply:    "Open the schedule view and run a conflict check: overlapping class meetings are flagged as errors, while busy-time collisions are warnings you can choose to accept. Switching one course to a different section usually clears a time conflict.",
	},
	{
		Name:     "prerequisites",
		Keywords: []string{"prerequisite", "prereq", "requisite", "coreq"},
		Reply:    "Prerequisites must be completed before the term you are planning; planning one alongside its dependent course is flagged as a warning. Corequisites need to be taken in the same term unless already completed.",
	},
	{
		Name:     "degree",
		Keywords: []string{"degree", "graduation", "graduate", "requirement", "progress", "audit"},
		Reply:    "The degree audit page shows each requirement with its progress bar. Use the what-if mode to preview how a different major or minor would count the courses you have already completed.",
	},
	{
		Name:     "schedule",
		Keywords: []string{"schedule", "plan", "generate", "section", "register", "busy"},
		Reply:    "Pick the courses you want, add your busy times, then generate schedules: the planner builds conflict-free combinations and ranks them by how well they match your time-of-day preferences.",
	},
}

const advisorFallback = "I can help with schedule planning, time conflicts, prerequisites, and degree progress. Try asking about one of those, for example: \"How do I resolve a time conflict?\""

// AdvisorService produces deterministic, pattern-matched advisor replies.
// There is no language model behind it.
type AdvisorService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdvisorService wires the advisor stub.
func NewAdvisorService(validate *validator.Validate, logger *zap.Logger) *AdvisorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorService{validator: validate, logger: logger}
}

// Chat matches the message against the known topics and returns the canned
// reply, falling back to a generic hint.
func (s *AdvisorService) Chat(ctx context.Context, req dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid advisor payload")
	}
	message := strings.ToLower(req.Message)
	for _, topic := range advisorTopics {
		for _, keyword := range topic.Keywords {
			if strings.Contains(message, keyword) {
				return &dto.AdvisorChatResponse{Topic: topic.Name, Reply: topic.Reply}, nil
			}
		}
	}
	return &dto.AdvisorChatResponse{Topic: "general", Reply: advisorFallback}, nil
}
