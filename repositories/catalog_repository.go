package repositories

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"coffee-order/models"
)

//go:embed data/catalog.json
var defaultCatalog []byte

// CatalogRepository serves the static menu. It is read-only after load.
type CatalogRepository struct {
	items      []models.CatalogItem
	index      map[string]int
	promotions []models.Promotion
}

// NewCatalogRepository loads the catalog from path, or the bundled catalog
// when path is empty.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*CatalogRepository, error) {
	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	index := make(map[string]int, len(catalog.Items))
	for i, item := range catalog.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", models.ErrInvalidCatalogItem, item.ID)
		}
		index[item.ID] = i
	}

	return &CatalogRepository{
		items:      catalog.Items,
		index:      index,
		promotions: catalog.Promotions,
	}, nil
}

func (r *CatalogRepository) All() []models.CatalogItem {
	items := make([]models.CatalogItem, len(r.items))
	copy(items, r.items)
	return items
}

func (r *CatalogRepository) FindByID(id string) (models.CatalogItem, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.CatalogItem{}, false
	}
	return r.items[i], true
}

func (r *CatalogRepository) Promotions() []models.Promotion {
	promos := make([]models.Promotion, len(r.promotions))
	copy(promos, r.promotions)
	return promos
}
