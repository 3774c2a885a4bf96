package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coffee-order/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_Default(t *testing.T) {
	repo, err := NewCatalogRepository("")
	require.NoError(t, err)

	items := repo.All()
	require.NotEmpty(t, items)

	latte, ok := repo.FindByID("latte")
	require.True(t, ok)
	assert.Equal(t, "Caffe Latte", latte.Name)
	assert.True(t, decimal.RequireFromString("3.75").Equal(latte.Price))

	_, ok = repo.FindByID("nope")
	assert.False(t, ok)

	assert.NotEmpty(t, repo.Promotions())
}

func TestCatalogRepository_ReturnsCopies(t *testing.T) {
	repo, err := NewCatalogRepository("")
	require.NoError(t, err)

	items := repo.All()
	items[0].Name = "changed"

	again, _ := repo.FindByID(items[0].ID)
	assert.NotEqual(t, "changed", again.Name)
}

func TestCatalogRepository_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[{"id":"x","name":"X","price":1.5,"category":"C"}]}`), 0o600))

	repo, err := NewCatalogRepository(path)
	require.NoError(t, err)
	assert.Len(t, repo.All(), 1)

	_, err = NewCatalogRepository(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad json":       `{"items": [`,
		"empty id":       `{"items":[{"id":"","price":"1"}]}`,
		"negative price": `{"items":[{"id":"a","price":"-1"}]}`,
		"duplicate id":   `{"items":[{"id":"a","price":"1"},{"id":"a","price":"2"}]}`,
		"sub-cent price": `{"items":[{"id":"a","price":"3.755"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestMemoryCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCartRepository()

	cart, err := repo.Get(ctx, "guest:1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart.AddItem(models.CatalogItem{ID: "a", Price: decimal.NewFromInt(2)})
	require.NoError(t, repo.Save(ctx, "guest:1", cart))

	// mutating the loaded copy does not leak into the store
	cart.AddItem(models.CatalogItem{ID: "b", Price: decimal.NewFromInt(2)})

	stored, err := repo.Get(ctx, "guest:1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "a", stored.Items[0].ID)

	other, err := repo.Get(ctx, "guest:2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())

	require.NoError(t, repo.Delete(ctx, "guest:1"))
	stored, err = repo.Get(ctx, "guest:1")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &models.User{Email: "Ana@Example.com", Password: "hash", FullName: "Ana", Role: models.RoleCustomer}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, 1, user.ID)

	err := repo.Create(ctx, &models.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.FindByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", found.Email)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	first := &models.Order{ID: "1", Number: "#100001", Owner: "guest:a", CreatedAt: base}
	second := &models.Order{ID: "2", Number: "#100002", Owner: "guest:a", CreatedAt: base.Add(time.Minute)}
	foreign := &models.Order{ID: "3", Number: "#100003", Owner: "guest:b", CreatedAt: base}
	for _, o := range []*models.Order{first, second, foreign} {
		require.NoError(t, repo.Create(ctx, o))
	}

	assert.ErrorIs(t, repo.Create(ctx, &models.Order{ID: "4", Number: "#100001"}), ErrDuplicate)

	orders, err := repo.ListByOwner(ctx, "guest:a")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "#100002", orders[0].Number)
	assert.Equal(t, "#100001", orders[1].Number)

	found, err := repo.FindByNumber(ctx, "guest:a", "#100001")
	require.NoError(t, err)
	assert.Equal(t, "1", found.ID)

	_, err = repo.FindByNumber(ctx, "guest:a", "#100003")
	assert.ErrorIs(t, err, ErrNotFound)
}
