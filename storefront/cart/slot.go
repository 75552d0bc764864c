package cart

import (
	"context"
	"errors"
	"sync"
)

// SlotKey is the fixed key the serialized cart lives under.
const SlotKey = "cart"

// ErrSlotEmpty indicates the slot holds no cart yet.
var ErrSlotEmpty = errors.New("cart slot is empty")

// Slot is the durable, process-external key-value slot the cart is
// written through to. Implementations hold a single value under
// SlotKey; concurrent writers are last-writer-wins.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// MemorySlot is an in-process Slot for tests and frontend-only runs.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemorySlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}
