package repositories

import (
	"context"
	"sync"

	"coffee-order/models"
)

// CartRepository stores one cart per owner key. Get returns an empty cart
// for owners that have none yet.
//
// Update loads the owner's cart, applies fn and saves the result as one
// atomic step. fn may run more than once and must not have side effects
// outside the cart. Nothing is saved when fn returns an error, and that
// error is returned unchanged.
type CartRepository interface {
	Get(ctx context.Context, owner string) (*models.Cart, error)
	Save(ctx context.Context, owner string, cart *models.Cart) error
	Delete(ctx context.Context, owner string) error
	Update(ctx context.Context, owner string, fn func(cart *models.Cart) error) (*models.Cart, error)
}

type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]models.CartLineItem
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string][]models.CartLineItem)}
}

func (r *MemoryCartRepository) Get(ctx context.Context, owner string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load(owner), nil
}

func (r *MemoryCartRepository) Save(ctx context.Context, owner string, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store(owner, cart)
	return nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, owner)
	return nil
}

func (r *MemoryCartRepository) Update(ctx context.Context, owner string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.load(owner)
	if err := fn(cart); err != nil {
		return nil, err
	}
	r.store(owner, cart)
	return cart, nil
}

func (r *MemoryCartRepository) load(owner string) *models.Cart {
	cart := models.NewCart()
	cart.Items = append(cart.Items, r.carts[owner]...)
	return cart
}

func (r *MemoryCartRepository) store(owner string, cart *models.Cart) {
	if cart.IsEmpty() {
		delete(r.carts, owner)
		return
	}
	r.carts[owner] = cart.Snapshot()
}
