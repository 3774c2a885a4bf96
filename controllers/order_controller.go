package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"coffee-order/middleware"
	"coffee-order/models"
	"coffee-order/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	checkout *services.CheckoutService
}

func NewOrderController(checkout *services.CheckoutService) *OrderController {
	return &OrderController{checkout: checkout}
}

// @Summary Checkout
// @Description Confirms the current cart as an order and empties the cart
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest false "Receipt email and notes"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: "Unauthorized"})
		return
	}

	// the body is optional
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, err)
		return
	}

	order, err := ctrl.checkout.Checkout(c.Request.Context(), services.Customer{
		Owner:  claims.CartOwner(),
		UserID: claims.UserID,
		Email:  claims.Email,
	}, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Order confirmed", order)
}

// @Summary Order history
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	orders, err := ctrl.checkout.ListOrders(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Orders retrieved", orders)
}

// @Summary Get order
// @Description Order by number, with or without the leading #
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{number} [get]
func (ctrl *OrderController) GetOrderByNumber(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	number := c.Param("number")
	if !strings.HasPrefix(number, "#") {
		number = "#" + number
	}

	order, err := ctrl.checkout.GetOrder(c.Request.Context(), owner, number)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}
