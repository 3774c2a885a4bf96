package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusConfirmed = "confirmed"

type Order struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Owner         string          `json:"-"`
	UserID        *int            `json:"user_id,omitempty"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string"`
	ServiceFee    decimal.Decimal `json:"service_fee" swaggertype:"string"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	Status        string          `json:"status"`
	Email         string          `json:"email,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PickupAddress string          `json:"pickup_address"`
	ReadyAt       time.Time       `json:"ready_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
	LineTotal   decimal.Decimal `json:"line_total" swaggertype:"string"`
}
