// Package cart holds the session-scoped shopping carts. A cart is an
// in-memory ordered sequence of product snapshots with quantities,
// keyed by an opaque session id and discarded on process restart.
package cart

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// Store keeps one cart per session. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]models.CartItem
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{sessions: make(map[string][]models.CartItem)}
}

// Add appends an item to the session's cart. Adding the same product
// twice yields two lines rather than incrementing the first one.
func (s *Store) Add(session string, item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session] = append(s.sessions[session], item)
}

// Remove filters out every line holding the given product id
func (s *Store) Remove(session string, productID primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[session]
	kept := items[:0]
	for _, item := range items {
		if item.Product != productID {
			kept = append(kept, item)
		}
	}
	s.sessions[session] = kept
}

// Clear empties the session's cart
func (s *Store) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
}

// Items returns a copy of the session's cart lines in insertion order
func (s *Store) Items(session string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.sessions[session]))
	copy(items, s.sessions[session])
	return items
}

// Total computes the cart total as the sum of price times quantity over
// every line, treating a missing quantity as 1.
func (s *Store) Total(session string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.sessions[session] {
		total += item.Price * float64(Quantity(item.Quantity))
	}
	return total
}

// Quantity resolves a cart or order line quantity, defaulting to 1 when
// the value was never set.
func Quantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
