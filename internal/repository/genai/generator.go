package genai

import "context"

// TextGenerator produces a plain-text completion for a prompt. Implementations
// wrap an external generative-text service; the model choice is theirs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
