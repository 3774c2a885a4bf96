package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// CartView is what the storefront renders for a cart.
type CartView struct {
	Items []CartLineItem `json:"items"`
	CartTotals
}

func NewCartView(cart *Cart) CartView {
	return CartView{
		Items:      cart.Snapshot(),
		CartTotals: cart.Totals(),
	}
}
