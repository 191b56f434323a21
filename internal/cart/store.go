package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/SifatU360/SwiftCart/internal/domain"
	"github.com/SifatU360/SwiftCart/internal/storage"
)

// ProductFinder reports a product from the currently resident catalog
// snapshot. Consumers define this interface; the catalog cache implements it.
type ProductFinder interface {
	Find(id int64) (domain.Product, bool)
}

// Store is the cart state machine: an ordered sequence of lines, unique by
// product id, with insertion order fixed by the first add. Every successful
// mutation writes the full sequence to the slot before it returns; a failed
// write leaves the in-memory sequence at its pre-mutation state.
type Store struct {
	mu     sync.Mutex
	lines  []domain.CartLine
	finder ProductFinder
	slot   storage.Slot
}

func NewStore(finder ProductFinder, slot storage.Slot) *Store {
	return &Store{finder: finder, slot: slot}
}

// Hydrate replaces the in-memory sequence with the persisted snapshot. A
// missing snapshot is an empty cart. A corrupt snapshot is also an empty
// cart: the failure is logged for the operator and the stored bytes are left
// alone until the next successful save.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.slot.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoSnapshot):
		case errors.Is(err, storage.ErrCorruptSnapshot):
			log.WithError(err).Warn("persisted cart is corrupt, starting empty")
		default:
			log.WithError(err).Warn("could not load persisted cart, starting empty")
		}
		s.lines = nil
		return
	}
	s.lines = lines
}

// Add puts one unit of the given product in the cart. Ids not present in the
// resident catalog snapshot are ignored; the returned bool reports whether
// the cart changed.
func (s *Store) Add(ctx context.Context, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.finder.Find(productID)
	if !ok {
		return false, nil
	}

	next := s.copyLines()
	if i := indexOf(next, productID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, domain.NewCartLine(product))
	}

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the line with the given id. Absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.lines, productID)
	if i < 0 {
		return nil
	}

	next := s.copyLines()
	next = append(next[:i], next[i+1:]...)
	return s.commit(ctx, next)
}

// ChangeQuantity applies a signed delta to an existing line. A result of
// zero or less removes the line; a non-positive quantity is never stored.
// Absent ids are a no-op.
func (s *Store) ChangeQuantity(ctx context.Context, productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.lines, productID)
	if i < 0 {
		return nil
	}

	next := s.copyLines()
	next[i].Quantity += delta
	if next[i].Quantity <= 0 {
		next = append(next[:i], next[i+1:]...)
	}
	return s.commit(ctx, next)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, nil)
}

// Lines returns a copy of the ordered line sequence.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

// Summary recomputes the aggregates over the current sequence.
func (s *Store) Summary() Summary {
	return Summarize(s.Lines())
}

func (s *Store) commit(ctx context.Context, next []domain.CartLine) error {
	if err := s.slot.Save(ctx, next); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.lines = next
	return nil
}

func (s *Store) copyLines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func indexOf(lines []domain.CartLine, productID int64) int {
	for i := range lines {
		if lines[i].ID == productID {
			return i
		}
	}
	return -1
}
