package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coffee-order/models"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "cart:"

	// every lost WATCH race means another writer committed, so this bounds
	// the number of concurrent writers a single update can outlast
	maxCartTxAttempts = 64
)

var ErrCartConflict = errors.New("cart update conflict")

// RedisCartRepository keeps carts as JSON documents that expire ttl after
// the last write.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

func cartKey(owner string) string {
	return cartKeyPrefix + owner
}

type cartGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadCart(ctx context.Context, c cartGetter, key string) (*models.Cart, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	cart := models.NewCart()
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartLineItem{}
	}
	return cart, nil
}

// writeCart queues the write for cart on pipe. Empty carts are removed.
func (r *RedisCartRepository) writeCart(ctx context.Context, pipe redis.Cmdable, key string, cart *models.Cart) error {
	if cart.IsEmpty() {
		return pipe.Del(ctx, key).Err()
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return pipe.Set(ctx, key, raw, r.ttl).Err()
}

func (r *RedisCartRepository) Get(ctx context.Context, owner string) (*models.Cart, error) {
	return loadCart(ctx, r.client, cartKey(owner))
}

func (r *RedisCartRepository) Save(ctx context.Context, owner string, cart *models.Cart) error {
	if err := r.writeCart(ctx, r.client, cartKey(owner), cart); err != nil {
		return fmt.Errorf("redis save cart: %w", err)
	}
	return nil
}

func (r *RedisCartRepository) Delete(ctx context.Context, owner string) error {
	if err := r.client.Del(ctx, cartKey(owner)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

// Update runs fn under WATCH on the cart key and writes the result in a
// MULTI/EXEC block. A concurrent write to the same key aborts the
// transaction and the whole load, fn, write cycle starts again.
func (r *RedisCartRepository) Update(ctx context.Context, owner string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	key := cartKey(owner)

	var result *models.Cart
	txf := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return r.writeCart(ctx, pipe, key, cart)
		})
		if err != nil {
			return err
		}
		result = cart
		return nil
	}

	for attempt := 0; attempt < maxCartTxAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s after %d attempts", ErrCartConflict, owner, maxCartTxAttempts)
}
