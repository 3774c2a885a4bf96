package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AddCartItemRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

type UpdateCartItemRequest struct {
	Delta *int `json:"delta" form:"delta" binding:"required"`
}

type CheckoutRequest struct {
	Email string `json:"email" form:"email" binding:"omitempty,email"`
	Notes string `json:"notes" form:"notes" binding:"omitempty,max=500"`
}
