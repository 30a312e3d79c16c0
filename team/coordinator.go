package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuflow/docuflow/llm"
	"github.com/docuflow/docuflow/log"
)

// TerminationReason explains why a conversation stopped.
type TerminationReason string

const (
	// ReasonMarkerMatched means a message contained a termination marker.
	ReasonMarkerMatched TerminationReason = "termination_marker_matched"

	// ReasonBudgetExhausted means the round budget ran out.
	ReasonBudgetExhausted TerminationReason = "round_budget_exhausted"
)

// NoResultSentinel is returned by result extraction when no transcript
// message qualifies as a result.
const NoResultSentinel = "no extractable result"

// DefaultSignificanceThreshold is the minimum content length, in bytes, a
// message must exceed to qualify as an extractable result. Short
// acknowledgements fall below it.
const DefaultSignificanceThreshold = 50

// TerminationPredicate reports whether a message content terminates the
// conversation. The matching rule is isolated here so it can be tested and
// swapped independently of the turn loop.
type TerminationPredicate func(content string) bool

// MarkerPredicate builds the default predicate: case-sensitive substring
// match against any of the given markers.
func MarkerPredicate(markers []string) TerminationPredicate {
	return func(content string) bool {
		for _, marker := range markers {
			if marker != "" && strings.Contains(content, marker) {
				return true
			}
		}
		return false
	}
}

// Result is the outcome of one team run.
type Result struct {
	Transcript []Message
	Summary    string
	Reason     TerminationReason
	Turns      int
	TeamName   string
}

// Coordinator runs the round-robin conversation for one team config. It
// posts the initiating task, prompts each role in order through the
// completion backend, and judges termination after every appended message.
// The coordinator itself never calls the completion backend.
type Coordinator struct {
	config       Config
	completer    llm.Completer
	terminate    TerminationPredicate
	significance int
	logger       log.Logger
}

// NewCoordinator creates a coordinator for the given team config and
// completion backend.
func NewCoordinator(config Config, completer llm.Completer) *Coordinator {
	if config.MaxRounds <= 0 {
		config.MaxRounds = DefaultMaxRounds
	}
	return &Coordinator{
		config:       config,
		completer:    completer,
		terminate:    MarkerPredicate(config.TerminationMarkers),
		significance: DefaultSignificanceThreshold,
		logger:       &log.NoOpLogger{},
	}
}

// SetLogger sets the trace logger.
func (c *Coordinator) SetLogger(logger log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetTerminationPredicate replaces the default marker predicate.
func (c *Coordinator) SetTerminationPredicate(p TerminationPredicate) {
	if p != nil {
		c.terminate = p
	}
}

// Run executes the conversation for the given task. A turn failure is
// recorded as an error entry in the transcript and never aborts the run;
// the only returned errors are context cancellation and an empty role set.
func (c *Coordinator) Run(ctx context.Context, task string) (Result, error) {
	if len(c.config.Roles) == 0 {
		return Result{}, fmt.Errorf("team %q has no roles", c.config.Name)
	}

	transcript := &Transcript{}
	transcript.Append(Message{Role: CoordinatorRole, Content: task})

	c.logger.Info("team %s: starting run, %d roles, %d round budget",
		c.config.Name, len(c.config.Roles), c.config.MaxRounds)

	reason := ReasonBudgetExhausted
	turns := 0

loop:
	for turns < c.config.MaxRounds {
		for _, role := range c.config.Roles {
			if turns >= c.config.MaxRounds {
				break loop
			}
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}

			content, err := c.completer.Complete(ctx, role.SystemPrompt, c.buildPrompt(role, task, transcript))
			turns++

			if err != nil {
				c.logger.Warn("team %s: turn %d (%s) failed: %v", c.config.Name, turns, role.Name, err)
				transcript.Append(Message{
					Role:    role.Name,
					Content: fmt.Sprintf("[ERROR] completion failed: %v", err),
					IsError: true,
				})
				continue
			}

			transcript.Append(Message{Role: role.Name, Content: content})
			c.logger.Debug("team %s: turn %d, %s produced %d chars", c.config.Name, turns, role.Name, len(content))

			if c.terminate(content) {
				reason = ReasonMarkerMatched
				break loop
			}
		}
	}

	messages := transcript.Messages()
	summary := ExtractResult(messages, c.config.PrimaryRole, c.significance)

	c.logger.Info("team %s: terminated after %d turns (%s)", c.config.Name, turns, reason)

	return Result{
		Transcript: messages,
		Summary:    summary,
		Reason:     reason,
		Turns:      turns,
		TeamName:   c.config.Name,
	}, nil
}

func (c *Coordinator) buildPrompt(role Role, task string, transcript *Transcript) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Task: %s\n\n", task)
	sb.WriteString("Conversation so far:\n")
	sb.WriteString(transcript.Render())
	fmt.Fprintf(&sb, "\nYou are %s. Provide your next contribution.", role.Name)
	return sb.String()
}

// ExtractResult scans the transcript in reverse chronological order and
// returns the first message from the primary role longer than the
// significance threshold, then falls back to the first message of any role
// above the threshold, and finally to NoResultSentinel. The coordinator's
// task entry and error entries never qualify.
func ExtractResult(messages []Message, primaryRole string, significance int) string {
	if primaryRole != "" {
		for i := len(messages) - 1; i >= 0; i-- {
			msg := messages[i]
			if msg.IsError || msg.Role != primaryRole {
				continue
			}
			if len(msg.Content) > significance {
				return msg.Content
			}
		}
	}

	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.IsError || msg.Role == CoordinatorRole {
			continue
		}
		if len(msg.Content) > significance {
			return msg.Content
		}
	}

	return NoResultSentinel
}
