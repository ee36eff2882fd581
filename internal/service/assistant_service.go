package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/repository/genai"
)

const assistantSystemPrompt = `
You are an expert Project Management Assistant for a platform called "Fizz".
Your goal is to help users plan, organize, and manage their projects effectively.
You have access to project details and task lists.
When suggesting tasks, provide:
1. Title
2. Short Description
3. Suggested Due Date (relative to today or project timeline)
4. Priority (LOW, MEDIUM, HIGH)

Be concise, professional, and encouraging.
`

// AssistantService wraps the external generative-text service. Stateless: no
// retry, no rate limiting, no conversation history. Upstream failures are
// logged and masked behind a generic error.
type AssistantService struct {
	generator genai.TextGenerator
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(generator genai.TextGenerator) *AssistantService {
	return &AssistantService{generator: generator}
}

// GenerateContent submits the prompt, prefixed with the system instruction and
// the optional context block, and returns the plain-text completion.
func (s *AssistantService) GenerateContent(ctx context.Context, prompt, contextBlock string) (string, error) {
	var full string
	if contextBlock != "" {
		full = fmt.Sprintf("%s\n\nContext: %s\n\nUser Question: %s", assistantSystemPrompt, contextBlock, prompt)
	} else {
		full = fmt.Sprintf("%s\n\nUser Question: %s", assistantSystemPrompt, prompt)
	}

	text, err := s.generator.GenerateContent(ctx, full)
	if err != nil {
		log.Error().Err(err).Msg("Assistant generation failed")
		return "", domain.ErrAssistantUnavailable
	}
	return text, nil
}

// ProjectSuggestions asks for the next logical tasks for a project, passing
// its metadata and current task titles as context.
func (s *AssistantService) ProjectSuggestions(ctx context.Context, project domain.Project, tasks []domain.Task) (string, error) {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	contextBlock := fmt.Sprintf(
		"Project Name: %s\nDescription: %s\nStart Date: %s\nEnd Date: %s\nCurrent Tasks: %s",
		project.Name,
		project.Description,
		formatDate(project.StartDate),
		formatDate(project.EndDate),
		strings.Join(titles, ", "),
	)
	prompt := "Suggest 3-5 next logical tasks I should add to this project to ensure its success. Provide them in a structured format."
	return s.GenerateContent(ctx, prompt, contextBlock)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
