package observer

import (
	"context"
	"sync"

	"contactd/internal/directory"
)

// Memory records delivered events in-memory for tests.
type Memory struct {
	mu     sync.Mutex
	events []directory.Event
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) OnEvent(_ context.Context, e directory.Event) error {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Events() []directory.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]directory.Event, len(m.events))
	copy(out, m.events)
	return out
}
