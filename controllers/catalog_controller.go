package controllers

import (
	"net/http"

	"coffee-order/models"
	"coffee-order/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// @Summary List menu
// @Description Menu items filtered by category and name search
// @Tags Catalog
// @Produce json
// @Param category query string false "Category, All for every category"
// @Param search query string false "Case-insensitive name search"
// @Success 200 {object} models.Response{data=[]models.CatalogItem}
// @Router /catalog [get]
func (ctrl *CatalogController) GetCatalog(c *gin.Context) {
	var filter models.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBadRequest(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Catalog retrieved", ctrl.catalog.List(filter))
}

// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response{data=[]string}
// @Router /catalog/categories [get]
func (ctrl *CatalogController) GetCategories(c *gin.Context) {
	respondOK(c, http.StatusOK, "Categories retrieved", ctrl.catalog.Categories())
}

// @Summary Get menu item
// @Tags Catalog
// @Produce json
// @Param id path string true "Catalog item id"
// @Success 200 {object} models.Response{data=models.CatalogItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /catalog/{id} [get]
func (ctrl *CatalogController) GetCatalogItem(c *gin.Context) {
	item, err := ctrl.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", item)
}

// @Summary List promotions
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Promotion}
// @Router /promotions [get]
func (ctrl *CatalogController) GetPromotions(c *gin.Context) {
	respondOK(c, http.StatusOK, "Promotions retrieved", ctrl.catalog.Promotions())
}
