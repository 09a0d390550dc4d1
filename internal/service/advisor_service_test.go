package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

func TestAdvisorServiceTopics(t *testing.T) {
	svc := NewAdvisorService(nil, nil)
	ctx := context.Background()

	cases := []struct {
		message string
		topic   string
	}{
		{"How do I resolve a time conflict between two classes?", "conflicts"},
		{"What prerequisites does data structures have?", "prerequisites"},
		{"Am I on track to graduate?", "degree"},
		{"Help me generate a schedule around my job", "schedule"},
		{"Can you build me a plan for next term?", "schedule"},
	}
	for _, tc := range cases {
		resp, err := svc.Chat(ctx, dto.AdvisorChatRequest{Message: tc.message})
		require.NoError(t, err)
		assert.Equal(t, tc.topic, resp.Topic, "message %q", tc.message)
		assert.NotEmpty(t, resp.Reply)
	}
}

func TestAdvisorServiceFallback(t *testing.T) {
	svc := NewAdvisorService(nil, nil)

	resp, err := svc.Chat(context.Background(), dto.AdvisorChatRequest{Message: "What's the dining hall menu today?"})
	require.NoError(t, err)
	assert.Equal(t, "general", resp.Topic)
	assert.Contains(t, resp.Reply, "schedule planning")
}

func TestAdvisorServiceDeterministic(t *testing.T) {
	svc := NewAdvisorService(nil, nil)
	ctx := context.Background()

	first, err := svc.Chat(ctx, dto.AdvisorChatRequest{Message: "degree progress?"})
	require.NoError(t, err)
	second, err := svc.Chat(ctx, dto.AdvisorChatRequest{Message: "degree progress?"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAdvisorServiceValidation(t *testing.T) {
	svc := NewAdvisorService(nil, nil)

	_, err := svc.Chat(context.Background(), dto.AdvisorChatRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
