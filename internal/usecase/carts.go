package usecase

import (
	"sync"

	"promenu/internal/domain/cart"

	"github.com/google/uuid"
)

// CartRegistry maps UI sessions to their cart engines. Carts have no TTL;
// they live for the session and are dropped only by an explicit clear or
// process restart.
type CartRegistry struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*cart.Cart
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[uuid.UUID]*cart.Cart)}
}

// Get returns the session's cart, creating an empty one on first use.
func (r *CartRegistry) Get(session uuid.UUID) *cart.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[session]
	if !ok {
		c = cart.New()
		r.carts[session] = c
	}
	return c
}

func (r *CartRegistry) Drop(session uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, session)
}
