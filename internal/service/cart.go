package service

import (
	"sync"

	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/metrics"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the sales tax applied to the cart subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Observer receives the full cart snapshot after every mutation.
// Observers run on the mutating goroutine and must not mutate the store.
type Observer func(model.CartSnapshot)

type subscription struct {
	id uint64
	fn Observer
}

// CartStore owns the cart lines and publishes snapshots to observers.
type CartStore struct {
	// notifyMu serializes mutate+notify so observers see mutations in order.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	lines     []model.CartLine
	taxRate   decimal.Decimal
	observers []subscription
	nextID    uint64
}

// CartOption configures a CartStore.
type CartOption func(*CartStore)

// WithTaxRate overrides the default tax rate.
func WithTaxRate(rate decimal.Decimal) CartOption {
	return func(s *CartStore) {
		s.taxRate = rate
	}
}

// NewCartStore creates an empty cart.
func NewCartStore(opts ...CartOption) *CartStore {
	s := &CartStore{taxRate: DefaultTaxRate}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add increments the quantity of item, inserting a new line when absent.
func (s *CartStore) Add(item model.FlavorItem) {
	s.mutate("add", func() {
		for i := range s.lines {
			if s.lines[i].Item.ID == item.ID {
				s.lines[i].Quantity++
				return
			}
		}
		s.lines = append(s.lines, model.CartLine{Item: item, Quantity: 1})
	})
}

// SetQuantity updates the quantity of a line. A quantity <= 0 removes it.
// Unknown ids leave the cart unchanged but still notify.
func (s *CartStore) SetQuantity(itemID, qty int) {
	if qty <= 0 {
		s.Remove(itemID)
		return
	}
	s.mutate("set_quantity", func() {
		for i := range s.lines {
			if s.lines[i].Item.ID == itemID {
				s.lines[i].Quantity = qty
				return
			}
		}
	})
}

// Remove deletes the line for itemID if present.
func (s *CartStore) Remove(itemID int) {
	s.mutate("remove", func() {
		s.removeLocked(itemID)
	})
}

// Clear empties the cart.
func (s *CartStore) Clear() {
	s.mutate("clear", func() {
		s.lines = nil
	})
}

// Snapshot returns the current cart contents and totals.
func (s *CartStore) Snapshot() model.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.NewCartSnapshot(s.lines, s.taxRate)
}

// Quantity returns the quantity held for itemID, or zero.
func (s *CartStore) Quantity(itemID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lines {
		if l.Item.ID == itemID {
			return l.Quantity
		}
	}
	return 0
}

// TaxRate returns the configured tax rate.
func (s *CartStore) TaxRate() decimal.Decimal {
	return s.taxRate
}

// Subscribe registers fn for change notifications and returns a func that unregisters it.
func (s *CartStore) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.observers {
				if sub.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *CartStore) removeLocked(itemID int) {
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			s.lines = append(s.lines[:i:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *CartStore) mutate(operation string, fn func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn()
	snap := model.NewCartSnapshot(s.lines, s.taxRate)
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	metrics.RecordCartMutation(operation, snap.ItemCount)

	for _, sub := range observers {
		sub.fn(snap)
	}
}
