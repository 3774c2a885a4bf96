package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"coffee-order/models"
	"coffee-order/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	orderNumberAttempts = 3
	readyMinMinutes     = 15
	readySpreadMinutes  = 10
)

type ReceiptSender interface {
	SendOrderReceipt(order models.Order) error
}

type CheckoutOptions struct {
	ServiceFee    decimal.Decimal
	PickupAddress string
}

// Customer identifies who is checking out. UserID is zero for guests.
type Customer struct {
	Owner  string
	UserID int
	Email  string
}

type CheckoutService struct {
	carts   *CartService
	orders  repositories.OrderRepository
	mailer  ReceiptSender
	logger  *zap.Logger
	opts    CheckoutOptions
	now     func() time.Time
	randInt func(n int) int
}

// NewCheckoutService builds the service. mailer may be nil, in which case no
// receipts are sent.
func NewCheckoutService(carts *CartService, orders repositories.OrderRepository, mailer ReceiptSender, logger *zap.Logger, opts CheckoutOptions) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		orders:  orders,
		mailer:  mailer,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
		randInt: rand.IntN,
	}
}

// Checkout turns the customer's cart into a confirmed order. The cart is
// emptied in the same atomic step that snapshots it, so two checkouts of one
// cart cannot both produce an order. If the order cannot be stored the lines
// are put back.
func (s *CheckoutService) Checkout(ctx context.Context, customer Customer, req models.CheckoutRequest) (*models.Order, error) {
	var (
		order *models.Order
		lines []models.CartLineItem
	)

	_, err := s.carts.Update(ctx, customer.Owner, func(cart *models.Cart) error {
		if cart.IsEmpty() {
			return ErrCartEmpty
		}
		order = s.buildOrder(customer, cart, req)
		lines = cart.Snapshot()
		cart.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, order); err != nil {
		s.restoreCart(context.WithoutCancel(ctx), customer.Owner, lines)
		return nil, err
	}

	s.logger.Info("order confirmed",
		zap.String("order_number", order.Number),
		zap.String("owner", customer.Owner),
		zap.String("total", order.Total.StringFixed(2)))

	s.sendReceipt(*order)
	return order, nil
}

func (s *CheckoutService) restoreCart(ctx context.Context, owner string, lines []models.CartLineItem) {
	if _, err := s.carts.Update(ctx, owner, func(cart *models.Cart) error {
		cart.Merge(lines)
		return nil
	}); err != nil {
		s.logger.Error("cart lost after failed checkout",
			zap.String("owner", owner),
			zap.Int("lines", len(lines)),
			zap.Error(err))
	}
}

func (s *CheckoutService) buildOrder(customer Customer, cart *models.Cart, req models.CheckoutRequest) *models.Order {
	now := s.now()

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, li := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:   li.ID,
			ProductName: li.Name,
			Category:    li.Category,
			Quantity:    li.Quantity,
			UnitPrice:   li.Price,
			LineTotal:   li.Subtotal(),
		})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = customer.Email
	}

	var userID *int
	if customer.UserID > 0 {
		id := customer.UserID
		userID = &id
	}

	subtotal := cart.Total()
	return &models.Order{
		ID:            uuid.NewString(),
		Owner:         customer.Owner,
		UserID:        userID,
		Items:         items,
		Subtotal:      subtotal,
		ServiceFee:    s.opts.ServiceFee,
		Total:         subtotal.Add(s.opts.ServiceFee),
		Status:        models.OrderStatusConfirmed,
		Email:         email,
		Notes:         strings.TrimSpace(req.Notes),
		PickupAddress: s.opts.PickupAddress,
		ReadyAt:       now.Add(time.Duration(readyMinMinutes+s.randInt(readySpreadMinutes)) * time.Minute),
		CreatedAt:     now,
	}
}

// store persists the order, drawing a fresh order number when one collides.
func (s *CheckoutService) store(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.Number = fmt.Sprintf("#%d", 100000+s.randInt(900000))

		err := s.orders.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("save order: %w", err)
		}
	}
	return fmt.Errorf("save order: no free order number after %d attempts", orderNumberAttempts)
}

func (s *CheckoutService) sendReceipt(order models.Order) {
	if s.mailer == nil || order.Email == "" {
		return
	}
	if err := s.mailer.SendOrderReceipt(order); err != nil {
		s.logger.Warn("order receipt not sent",
			zap.String("order_number", order.Number),
			zap.Error(err))
	}
}

func (s *CheckoutService) ListOrders(ctx context.Context, owner string) ([]models.Order, error) {
	orders, err := s.orders.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, owner, number string) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, owner, number)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}
