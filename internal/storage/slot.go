package storage

import (
	"context"
	"errors"

	"github.com/SifatU360/SwiftCart/internal/domain"
)

// SlotName is the single durable slot the cart persists under, carried over
// from the browser build's localStorage key.
const SlotName = "swiftcart-cart"

var (
	// ErrNoSnapshot means the slot has never been written. Hydration treats
	// it as an empty cart.
	ErrNoSnapshot = errors.New("no cart snapshot")

	// ErrCorruptSnapshot means the slot holds data that does not parse as a
	// line sequence. The stored bytes are left in place; only the next
	// successful Save replaces them.
	ErrCorruptSnapshot = errors.New("corrupt cart snapshot")
)

// Slot persists the full cart line sequence to one named durable slot.
// Consumers define this interface, not the backing store.
type Slot interface {
	Save(ctx context.Context, lines []domain.CartLine) error
	Load(ctx context.Context) ([]domain.CartLine, error)
}
