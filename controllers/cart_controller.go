package controllers

import (
	"net/http"

	"coffee-order/models"
	"coffee-order/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// @Summary Get cart
// @Description Current cart with derived total and item count
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 401 {object} models.ErrorResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	view, err := ctrl.carts.GetCart(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved", view)
}

// @Summary Add item to cart
// @Description Adds one unit of a catalog item, creating the line when needed
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Catalog item id"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	view, err := ctrl.carts.AddItem(c.Request.Context(), owner, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item added to cart", view)
}

// @Summary Change item quantity
// @Description Adds delta to the line quantity; lines reaching zero are removed, unknown ids are ignored
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Catalog item id"
// @Param request body models.UpdateCartItemRequest true "Quantity delta"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	view, err := ctrl.carts.UpdateQuantity(c.Request.Context(), owner, c.Param("id"), *req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart updated", view)
}

// @Summary Remove item from cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Catalog item id"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	view, err := ctrl.carts.RemoveItem(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed from cart", view)
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 401 {object} models.ErrorResponse
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	view, err := ctrl.carts.ClearCart(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart cleared", view)
}
