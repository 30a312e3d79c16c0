// Package llm defines the text completion boundary used by every workflow.
// Concrete backends wrap langchaingo models or the OpenAI-compatible HTTP
// API; tests use the scripted completer.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a backend produces no text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Completer produces one text completion for a system and user prompt pair.
// An empty system prompt is allowed and means no system message is sent.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}
