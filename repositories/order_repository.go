package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"coffee-order/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByOwner(ctx context.Context, owner string) ([]models.Order, error)
	FindByNumber(ctx context.Context, owner, number string) (*models.Order, error)
}

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, owner, user_id, subtotal, service_fee, total, status,
			email, notes, pickup_address, ready_at, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8, $9, $10, $11, $12, $13)`,
		order.ID, order.Number, order.Owner, order.UserID,
		order.Subtotal.String(), order.ServiceFee.String(), order.Total.String(), order.Status,
		order.Email, order.Notes, order.PickupAddress, order.ReadyAt, order.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for pos, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, position, product_id, product_name, category, quantity, unit_price, line_total)
			VALUES ($1::uuid, $2, $3, $4, $5, $6, $7::numeric, $8::numeric)`,
			order.ID, pos, item.ProductID, item.ProductName, item.Category, item.Quantity,
			item.UnitPrice.String(), item.LineTotal.String(),
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

const orderColumns = `id::text, order_number, owner, user_id, subtotal::text, service_fee::text, total::text,
	status, email, notes, pickup_address, ready_at, created_at`

func (r *PostgresOrderRepository) ListByOwner(ctx context.Context, owner string) ([]models.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	rows.Close()

	for i := range orders {
		items, err := r.items(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresOrderRepository) FindByNumber(ctx context.Context, owner, number string) (*models.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE owner = $1 AND order_number = $2`, owner, number)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	order.Items, err = r.items(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresOrderRepository) items(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, product_name, category, quantity, unit_price::text, line_total::text
		FROM order_items WHERE order_id = $1::uuid ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		var unitPrice, lineTotal string
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Category, &item.Quantity, &unitPrice, &lineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		item.LineTotal, err = decimal.NewFromString(lineTotal)
		if err != nil {
			return nil, fmt.Errorf("parse line total: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var subtotal, fee, total string
	err := row.Scan(&order.ID, &order.Number, &order.Owner, &order.UserID, &subtotal, &fee, &total,
		&order.Status, &order.Email, &order.Notes, &order.PickupAddress, &order.ReadyAt, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	for _, f := range []struct {
		src string
		dst *decimal.Decimal
	}{{subtotal, &order.Subtotal}, {fee, &order.ServiceFee}, {total, &order.Total}} {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return nil, fmt.Errorf("parse order amount: %w", err)
		}
		*f.dst = d
	}
	return &order, nil
}

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.Number == order.Number || o.ID == order.ID {
			return ErrDuplicate
		}
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders = append(r.orders, stored)
	return nil
}

func (r *MemoryOrderRepository) ListByOwner(ctx context.Context, owner string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range r.orders {
		if o.Owner == owner {
			orders = append(orders, o)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *MemoryOrderRepository) FindByNumber(ctx context.Context, owner, number string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.Owner == owner && o.Number == number {
			found := o
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
