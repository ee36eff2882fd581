package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/testutil"
)

func TestGenerateContent_PrefixesSystemPrompt(t *testing.T) {
	gen := &testutil.MockTextGenerator{Response: "Here is a plan."}
	svc := NewAssistantService(gen)

	text, err := svc.GenerateContent(context.Background(), "How should I start?", "")
	require.NoError(t, err)
	assert.Equal(t, "Here is a plan.", text)

	require.Len(t, gen.Prompts, 1)
	assert.Contains(t, gen.Prompts[0], `Project Management Assistant for a platform called "Fizz"`)
	assert.Contains(t, gen.Prompts[0], "User Question: How should I start?")
	assert.NotContains(t, gen.Prompts[0], "Context:")
}

func TestGenerateContent_IncludesContextBlock(t *testing.T) {
	gen := &testutil.MockTextGenerator{Response: "ok"}
	svc := NewAssistantService(gen)

	_, err := svc.GenerateContent(context.Background(), "What next?", "Project Alpha is behind schedule")
	require.NoError(t, err)

	require.Len(t, gen.Prompts, 1)
	assert.Contains(t, gen.Prompts[0], "Context: Project Alpha is behind schedule")
	assert.Contains(t, gen.Prompts[0], "User Question: What next?")
}

func TestGenerateContent_MasksUpstreamFailure(t *testing.T) {
	gen := &testutil.MockTextGenerator{Err: errors.New("quota exceeded: key abc123")}
	svc := NewAssistantService(gen)

	text, err := svc.GenerateContent(context.Background(), "Hello", "")
	require.ErrorIs(t, err, domain.ErrAssistantUnavailable)
	assert.Empty(t, text)
	// The upstream detail must not leak through the returned error.
	assert.NotContains(t, err.Error(), "quota")
}

func TestProjectSuggestions_BuildsContextFromProject(t *testing.T) {
	gen := &testutil.MockTextGenerator{Response: "1. Ship it"}
	svc := NewAssistantService(gen)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	project := domain.Project{
		ID:          "P1",
		Name:        "Alpha",
		Description: "Rewrite the billing pipeline",
		StartDate:   &start,
	}
	tasks := []domain.Task{
		{ID: "T1", Title: "Design schema"},
		{ID: "T2", Title: "Spike importer"},
	}

	text, err := svc.ProjectSuggestions(context.Background(), project, tasks)
	require.NoError(t, err)
	assert.Equal(t, "1. Ship it", text)

	require.Len(t, gen.Prompts, 1)
	prompt := gen.Prompts[0]
	assert.Contains(t, prompt, "Project Name: Alpha")
	assert.Contains(t, prompt, "Description: Rewrite the billing pipeline")
	assert.Contains(t, prompt, "Start Date: 2026-02-01")
	assert.Contains(t, prompt, "End Date: \n")
	assert.Contains(t, prompt, "Current Tasks: Design schema, Spike importer")
	assert.Contains(t, prompt, "Suggest 3-5 next logical tasks")
}
