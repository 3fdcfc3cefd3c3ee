package attempt

import (
	"context"
	"sync"
)

// MemorySlot keeps the value in memory.
type MemorySlot struct {
	mu    sync.Mutex
	value string
	ok    bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith starts with a stored value, which does not need to be valid.
func NewMemorySlotWith(value string) *MemorySlot {
	return &MemorySlot{value: value, ok: true}
}

func (s *MemorySlot) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.ok, nil
}

func (s *MemorySlot) Set(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.ok = true
	return nil
}
