// Package memory keeps the in-process conversation history of one chat session.
//
// A Buffer only grows: turns are appended in the order they happen and are
// never removed or reordered. Nothing is persisted beyond the process.
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Buffer is an append-only conversation history.
type Buffer struct {
	id    string
	mu    sync.RWMutex
	turns []Turn
}

// NewBuffer creates an empty Buffer with a UUIDv7 identifier.
func NewBuffer() *Buffer {
	return &Buffer{id: uuid.Must(uuid.NewV7()).String()}
}

// ID returns the session identifier.
func (b *Buffer) ID() string {
	return b.id
}

// Append adds turns to the end of the history.
func (b *Buffer) Append(turns ...Turn) error {
	for i, t := range turns {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			return fmt.Errorf("invalid turn role at index %d: %q", i, t.Role)
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turns = append(b.turns, turns...)
	return nil
}

// AppendExchange records a completed user input and assistant output pair.
func (b *Buffer) AppendExchange(input, output string) error {
	return b.Append(
		Turn{Role: RoleUser, Text: input},
		Turn{Role: RoleAssistant, Text: output},
	)
}

// Turns returns a copy of the history in chronological order.
func (b *Buffer) Turns() []Turn {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.turns)
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.turns)
}
