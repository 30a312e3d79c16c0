package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// LangchainCompleter adapts a langchaingo model to the Completer interface.
type LangchainCompleter struct {
	model llms.Model
}

var _ Completer = (*LangchainCompleter)(nil)

// NewLangchainCompleter wraps an existing langchaingo model.
func NewLangchainCompleter(model llms.Model) *LangchainCompleter {
	return &LangchainCompleter{model: model}
}

// Complete sends the prompts as chat messages and returns the first choice.
func (c *LangchainCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := c.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
