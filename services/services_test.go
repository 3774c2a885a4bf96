package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coffee-order/models"
	"coffee-order/repositories"
	"coffee-order/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type prefixImages struct{}

func (prefixImages) Resolve(ref string) string { return "cdn/" + ref }

func newCatalog(t *testing.T) *CatalogService {
	t.Helper()
	repo, err := repositories.ParseCatalog([]byte(`{
		"items": [
			{"id": "a", "name": "Caffe Latte", "price": "3.5", "image": "a", "category": "Milk Coffee"},
			{"id": "b", "name": "Espresso", "price": "2", "image": "b", "category": "Espresso"},
			{"id": "c", "name": "Iced Latte", "price": "5", "image": "c", "category": "Cold Coffee"},
			{"id": "d", "name": "Flat White", "price": "4", "image": "d", "category": "Milk Coffee"}
		],
		"promotions": [{"id": "p", "title": "Promo", "image": "p"}]
	}`))
	require.NoError(t, err)
	return NewCatalogService(repo, prefixImages{})
}

func ids(items []models.CatalogItem) []string {
	out := []string{}
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestCatalogService(t *testing.T) {
	catalog := newCatalog(t)

	assert.Equal(t, []string{"All", "Milk Coffee", "Espresso", "Cold Coffee"}, catalog.Categories())
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(catalog.List(models.CatalogFilter{})))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(catalog.List(models.CatalogFilter{Category: "All"})))
	assert.Equal(t, []string{"a", "d"}, ids(catalog.List(models.CatalogFilter{Category: "Milk Coffee"})))
	assert.Equal(t, []string{"a", "c"}, ids(catalog.List(models.CatalogFilter{Search: "LATTE"})))
	assert.Equal(t, []string{"a"}, ids(catalog.List(models.CatalogFilter{Category: "Milk Coffee", Search: "latte"})))
	assert.Empty(t, catalog.List(models.CatalogFilter{Category: "Tea"}))

	item, err := catalog.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "cdn/b", item.Image)

	_, err = catalog.Get("zzz")
	assert.ErrorIs(t, err, ErrProductNotFound)

	promos := catalog.Promotions()
	require.Len(t, promos, 1)
	assert.Equal(t, "cdn/p", promos[0].Image)
}

func newCartService(t *testing.T) (*CartService, *repositories.MemoryCartRepository) {
	t.Helper()
	repo := repositories.NewMemoryCartRepository()
	return NewCartService(repo, newCatalog(t), zap.NewNop()), repo
}

func TestCartService_Flow(t *testing.T) {
	ctx := context.Background()
	carts, _ := newCartService(t)
	owner := "guest:1"

	view, err := carts.AddItem(ctx, owner, "a")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "cdn/a", view.Items[0].Image)
	assert.True(t, decimal.RequireFromString("3.5").Equal(view.Total))

	view, err = carts.AddItem(ctx, owner, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, decimal.RequireFromString("7").Equal(view.Total))

	view, err = carts.UpdateQuantity(ctx, owner, "a", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ItemCount)

	view, err = carts.UpdateQuantity(ctx, owner, "missing", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ItemCount)

	view, err = carts.RemoveItem(ctx, owner, "a")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())

	_, err = carts.AddItem(ctx, owner, "b")
	require.NoError(t, err)
	view, err = carts.ClearCart(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, view.ItemCount)

	view, err = carts.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_UnknownProduct(t *testing.T) {
	carts, _ := newCartService(t)

	_, err := carts.AddItem(context.Background(), "guest:1", "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_OwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	carts, _ := newCartService(t)

	_, err := carts.AddItem(ctx, "guest:1", "a")
	require.NoError(t, err)

	view, err := carts.GetCart(ctx, "guest:2")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	carts, _ := newCartService(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := carts.AddItem(ctx, "guest:1", "b")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := carts.GetCart(ctx, "guest:1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, n, view.Items[0].Quantity)
}

type failingOrders struct {
	repositories.OrderRepository
	err   error
	calls int
}

func (f *failingOrders) Create(ctx context.Context, order *models.Order) error {
	f.calls++
	return f.err
}

type recordingMailer struct {
	sent []models.Order
	err  error
}

func (m *recordingMailer) SendOrderReceipt(order models.Order) error {
	m.sent = append(m.sent, order)
	return m.err
}

var fixedNow = time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)

func newCheckout(t *testing.T, orders repositories.OrderRepository, mailer ReceiptSender) (*CheckoutService, *CartService) {
	t.Helper()
	return newCheckoutWithCarts(t, repositories.NewMemoryCartRepository(), orders, mailer)
}

func newCheckoutWithCarts(t *testing.T, repo repositories.CartRepository, orders repositories.OrderRepository, mailer ReceiptSender) (*CheckoutService, *CartService) {
	t.Helper()
	carts := NewCartService(repo, newCatalog(t), zap.NewNop())
	checkout := NewCheckoutService(carts, orders, mailer, zap.NewNop(), CheckoutOptions{
		ServiceFee:    decimal.NewFromInt(2),
		PickupAddress: "123 Coffee St, Your City",
	})
	checkout.now = func() time.Time { return fixedNow }
	checkout.randInt = func(n int) int { return n - 1 }
	return checkout, carts
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	orders := repositories.NewMemoryOrderRepository()
	checkout, carts := newCheckout(t, orders, mailer)
	customer := Customer{Owner: "user:3", UserID: 3, Email: "ana@example.com"}

	_, err := carts.AddItem(ctx, customer.Owner, "b")
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, customer.Owner, "c")
	require.NoError(t, err)
	_, err = carts.UpdateQuantity(ctx, customer.Owner, "c", 3)
	require.NoError(t, err)

	order, err := checkout.Checkout(ctx, customer, models.CheckoutRequest{Notes: "  oat milk  "})
	require.NoError(t, err)

	assert.Equal(t, "#999999", order.Number)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.True(t, decimal.NewFromInt(22).Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(24).Equal(order.Total))
	assert.Equal(t, "oat milk", order.Notes)
	assert.Equal(t, "ana@example.com", order.Email)
	require.NotNil(t, order.UserID)
	assert.Equal(t, 3, *order.UserID)
	assert.Equal(t, fixedNow.Add(24*time.Minute), order.ReadyAt)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 4, order.Items[1].Quantity)
	assert.True(t, decimal.NewFromInt(20).Equal(order.Items[1].LineTotal))

	view, err := carts.GetCart(ctx, customer.Owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, order.Number, mailer.sent[0].Number)

	listed, err := checkout.ListOrders(ctx, customer.Owner)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	found, err := checkout.GetOrder(ctx, customer.Owner, order.Number)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = checkout.GetOrder(ctx, "guest:other", order.Number)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	orders := repositories.NewMemoryOrderRepository()
	checkout, _ := newCheckout(t, orders, nil)

	_, err := checkout.Checkout(context.Background(), Customer{Owner: "guest:1"}, models.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrCartEmpty)

	listed, err := checkout.ListOrders(context.Background(), "guest:1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCheckoutService_StoreFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	orders := &failingOrders{err: errors.New("db down")}
	checkout, carts := newCheckout(t, orders, nil)

	_, err := carts.AddItem(ctx, "guest:1", "a")
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, Customer{Owner: "guest:1"}, models.CheckoutRequest{})
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 1, orders.calls)

	view, err := carts.GetCart(ctx, "guest:1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestCheckoutService_RetriesOrderNumber(t *testing.T) {
	ctx := context.Background()
	orders := &failingOrders{err: repositories.ErrDuplicate}
	checkout, carts := newCheckout(t, orders, nil)

	_, err := carts.AddItem(ctx, "guest:1", "a")
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, Customer{Owner: "guest:1"}, models.CheckoutRequest{})
	assert.Error(t, err)
	assert.Equal(t, orderNumberAttempts, orders.calls)
}

func TestCheckoutService_MailFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{err: errors.New("smtp down")}
	checkout, carts := newCheckout(t, repositories.NewMemoryOrderRepository(), mailer)

	_, err := carts.AddItem(ctx, "guest:1", "a")
	require.NoError(t, err)

	order, err := checkout.Checkout(ctx, Customer{Owner: "guest:1"}, models.CheckoutRequest{Email: "g@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", order.Email)
	assert.Nil(t, order.UserID)
	assert.Len(t, mailer.sent, 1)
}

func newTokens() *utils.TokenManager {
	return utils.NewTokenManager("test", time.Hour)
}

func newAuth() *AuthService {
	return NewAuthService(repositories.NewMemoryUserRepository(), newTokens())
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	auth := newAuth()
	tokens := utils.NewTokenManager("test", time.Hour)

	registered, err := auth.Register(ctx, models.RegisterRequest{
		Email: "ana@example.com", Password: "secret1", FullName: "Ana Maria",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleCustomer, registered.User.Role)

	claims, err := tokens.Validate(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	_, err = auth.Register(ctx, models.RegisterRequest{Email: "ana@example.com", Password: "other12", FullName: "Ana"})
	assert.ErrorIs(t, err, ErrEmailExists)

	loggedIn, err := auth.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = auth.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, models.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	profile, err := auth.Profile(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", profile.FullName)

	_, err = auth.Profile(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_StartSession(t *testing.T) {
	auth := newAuth()
	tokens := utils.NewTokenManager("test", time.Hour)

	session, err := auth.StartSession()
	require.NoError(t, err)

	claims, err := tokens.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "guest:"+session.SessionID, claims.CartOwner())
	assert.Equal(t, models.RoleGuest, claims.Role)
}
