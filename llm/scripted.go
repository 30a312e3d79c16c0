package llm

import (
	"context"
	"sync"
)

// ScriptedCompleter replays a fixed sequence of responses. Once the script
// is exhausted it keeps returning the last entry. Intended for tests.
type ScriptedCompleter struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []string
	systems   []string
}

var _ Completer = (*ScriptedCompleter)(nil)

// NewScriptedCompleter creates a completer that returns the given responses
// in order.
func NewScriptedCompleter(responses ...string) *ScriptedCompleter {
	return &ScriptedCompleter{responses: responses}
}

// NewFailingCompleter creates a completer whose every call fails with err.
func NewFailingCompleter(err error) *ScriptedCompleter {
	return &ScriptedCompleter{err: err}
}

// Complete records the prompts and returns the next scripted response.
func (s *ScriptedCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, prompt)
	s.systems = append(s.systems, system)

	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", ErrEmptyResponse
	}

	idx := len(s.calls) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

// Calls returns the user prompts seen so far.
func (s *ScriptedCompleter) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Systems returns the system prompts seen so far.
func (s *ScriptedCompleter) Systems() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.systems))
	copy(out, s.systems)
	return out
}
