// Package cart is the single source of truth for the shopping cart:
// an ordered list of line items with write-through persistence to a
// durable key-value slot.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dombialcz/SevenTestsShop/storefront/catalog"
	"github.com/dombialcz/SevenTestsShop/storefront/coffee"
	"go.uber.org/zap"
)

// Item is one cart line. Index within the cart is the identity used
// by remove and update; insertion order is preserved for display only.
type Item struct {
	ProductID     string                `json:"id"`
	Name          string                `json:"name"`
	Price         float64               `json:"price"`
	Image         string                `json:"image"`
	Quantity      int                   `json:"quantity"`
	Customization *coffee.Customization `json:"customCoffee,omitempty"`
}

// Store owns the cart. All mutations are serialized through one mutex
// and flushed to the slot before subscribers are notified.
type Store struct {
	mu    sync.Mutex
	items []Item
	slot  Slot
	log   *zap.Logger
	subs  []func(items []Item)
}

// NewStore rehydrates the cart from the slot. An absent or corrupt
// slot yields an empty cart; corruption is logged, never surfaced.
func NewStore(ctx context.Context, slot Slot, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{slot: slot, log: log}

	data, err := slot.Load(ctx)
	if err == ErrSlotEmpty {
		return s
	}
	if err != nil {
		log.Warn("Failed to load cart slot, starting empty", zap.Error(err))
		return s
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Warn("Corrupt cart slot, starting empty", zap.Error(err))
		s.items = nil
	}
	return s
}

// Subscribe registers a callback invoked with a snapshot of the items
// after every mutation.
func (s *Store) Subscribe(fn func(items []Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// AddItem puts the product into the cart. When custom is nil and an
// existing entry shares the product id and also has no customization,
// the quantities merge; otherwise a new entry is appended. Quantity
// must be positive; that is the caller's contract.
func (s *Store) AddItem(ctx context.Context, p catalog.Product, quantity int, custom *coffee.Customization) {
	s.mu.Lock()
	if custom == nil {
		for i, existing := range s.items {
			if existing.ProductID == p.ID && existing.Customization == nil {
				s.items[i].Quantity += quantity
				s.flushLocked(ctx)
				return
			}
		}
	}

	s.items = append(s.items, Item{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		Quantity:      quantity,
		Customization: custom,
	})
	s.flushLocked(ctx)
}

// RemoveItem deletes the entry at index. Out-of-range is a no-op.
func (s *Store) RemoveItem(ctx context.Context, index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.flushLocked(ctx)
}

// UpdateQuantity sets the entry's quantity to exactly quantity. A
// value of zero or less removes the entry instead.
func (s *Store) UpdateQuantity(ctx context.Context, index, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, index)
		return
	}
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		return
	}
	s.items[index].Quantity = quantity
	s.flushLocked(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.flushLocked(ctx)
}

// Items returns a snapshot of the cart entries in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Count returns the summed quantity across entries (cart badge).
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total returns the summed price*quantity at full precision. Currency
// rounding is a display concern.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// flushLocked persists the cart and notifies subscribers. It unlocks
// the mutex; subscribers run outside the critical section.
func (s *Store) flushLocked(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err == nil {
		if saveErr := s.slot.Save(ctx, data); saveErr != nil {
			s.log.Warn("Failed to persist cart", zap.Error(saveErr))
		}
	} else {
		s.log.Warn("Failed to serialize cart", zap.Error(err))
	}

	snapshot := s.snapshotLocked()
	subs := make([]func([]Item), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) snapshotLocked() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
