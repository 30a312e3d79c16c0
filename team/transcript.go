package team

import (
	"fmt"
	"strings"
)

// CoordinatorRole is the sender name used for the initiating task message.
const CoordinatorRole = "Coordinator"

// Message is one transcript entry.
type Message struct {
	Role    string
	Content string

	// IsError marks entries recording a failed completion call. Error
	// entries stay in the transcript for auditability but are skipped
	// during result extraction.
	IsError bool
}

// Transcript is the append-only message log of one team run.
type Transcript struct {
	messages []Message
}

// Append adds a message to the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the transcript entries in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Render formats the transcript as "Role: content" lines for inclusion in
// a role's prompt.
func (t *Transcript) Render() string {
	var sb strings.Builder
	for _, msg := range t.messages {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
	}
	return sb.String()
}
