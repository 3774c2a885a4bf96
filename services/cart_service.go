package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"coffee-order/models"
	"coffee-order/repositories"

	"go.uber.org/zap"
)

const cartLockStripes = 64

type CatalogLookup interface {
	Get(id string) (models.CatalogItem, error)
}

// CartService applies cart operations for an owner key. Each call is a
// load, mutate, save cycle serialized per owner.
type CartService struct {
	carts   repositories.CartRepository
	catalog CatalogLookup
	logger  *zap.Logger
	locks   [cartLockStripes]sync.Mutex
}

func NewCartService(carts repositories.CartRepository, catalog CatalogLookup, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, catalog: catalog, logger: logger}
}

func (s *CartService) lock(owner string) func() {
	h := fnv.New32a()
	h.Write([]byte(owner))
	mu := &s.locks[h.Sum32()%cartLockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *CartService) GetCart(ctx context.Context, owner string) (models.CartView, error) {
	cart, err := s.carts.Get(ctx, owner)
	if err != nil {
		return models.CartView{}, fmt.Errorf("load cart: %w", err)
	}
	return models.NewCartView(cart), nil
}

func (s *CartService) AddItem(ctx context.Context, owner, productID string) (models.CartView, error) {
	item, err := s.catalog.Get(productID)
	if err != nil {
		return models.CartView{}, err
	}

	view, err := s.Update(ctx, owner, func(cart *models.Cart) error {
		cart.AddItem(item)
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}

	s.logger.Debug("cart item added",
		zap.String("owner", owner),
		zap.String("product_id", productID),
		zap.Int("item_count", view.ItemCount))
	return view, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, owner, productID string, delta int) (models.CartView, error) {
	return s.Update(ctx, owner, func(cart *models.Cart) error {
		cart.UpdateQuantity(productID, delta)
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, owner, productID string) (models.CartView, error) {
	return s.Update(ctx, owner, func(cart *models.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
}

func (s *CartService) ClearCart(ctx context.Context, owner string) (models.CartView, error) {
	return s.Update(ctx, owner, func(cart *models.Cart) error {
		cart.Clear()
		return nil
	})
}

// Update runs fn on the owner's cart and saves the result. The owner's lock
// serializes callers in this process; the repository keeps the update atomic
// against other processes sharing the store. fn errors are returned as is and
// nothing is saved.
func (s *CartService) Update(ctx context.Context, owner string, fn func(cart *models.Cart) error) (models.CartView, error) {
	unlock := s.lock(owner)
	defer unlock()

	var fnErr error
	cart, err := s.carts.Update(ctx, owner, func(cart *models.Cart) error {
		fnErr = fn(cart)
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return models.CartView{}, fnErr
		}
		return models.CartView{}, fmt.Errorf("update cart: %w", err)
	}
	return models.NewCartView(cart), nil
}
