package controllers

import (
	"errors"
	"net/http"

	"coffee-order/middleware"
	"coffee-order/models"
	"coffee-order/services"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}

// respondError maps service errors to HTTP statuses. Anything unrecognised is
// a 500 and the detail stays in the logs.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		status, message = http.StatusNotFound, "Product not found"
	case errors.Is(err, services.ErrOrderNotFound):
		status, message = http.StatusNotFound, "Order not found"
	case errors.Is(err, services.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrCartEmpty):
		status, message = http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, services.ErrEmailExists):
		status, message = http.StatusConflict, "Email already registered"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid email or password"
	default:
		_ = c.Error(err)
	}

	c.JSON(status, models.ErrorResponse{Success: false, Message: message})
}

func cartOwner(c *gin.Context) (string, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: "Unauthorized"})
		return "", false
	}
	return claims.CartOwner(), true
}
