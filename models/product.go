package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCatalogItem = errors.New("invalid catalog item")
)

type CatalogItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Validate checks the fields a cart relies on.
func (i CatalogItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidCatalogItem)
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("%w: negative price for %s", ErrInvalidCatalogItem, i.ID)
	}
	// orders store money with two decimal places
	if !i.Price.Equal(i.Price.Round(2)) {
		return fmt.Errorf("%w: price %s for %s has more than 2 decimal places", ErrInvalidCatalogItem, i.Price, i.ID)
	}
	return nil
}

type Promotion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
	Image       string `json:"image"`
}

type Catalog struct {
	Items      []CatalogItem `json:"items"`
	Promotions []Promotion   `json:"promotions"`
}

type CatalogFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}
