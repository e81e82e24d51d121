package adapter

import (
	"context"
	"sync"

	"github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
)

// MemoryStore keeps dialog state in process memory. This is the baseline:
// state is lost on restart, which the design accepts. Use RedisStore when
// restart resilience is required.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]port.DialogState
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]port.DialogState)}
}

// Ensure interface compliance at compile time
var _ port.Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(ctx context.Context, userID int64) (port.DialogState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[userID]
	if !ok {
		return port.DialogState{}, port.ErrMiss
	}
	return clone(s), nil
}

func (m *MemoryStore) Set(ctx context.Context, userID int64, s port.DialogState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = clone(s)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}

// clone copies the answer map so callers cannot mutate stored state through
// a shared reference.
func clone(s port.DialogState) port.DialogState {
	out := port.DialogState{Dialog: s.Dialog, State: s.State, Answers: make(map[string]string, len(s.Answers))}
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	return out
}
