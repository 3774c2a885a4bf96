package handler

import (
	"net/http"

	"coffee-order/models"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// ServiceInfo describes the running instance at the API root.
type ServiceInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	CatalogItems int      `json:"catalog_items"`
	Categories   []string `json:"categories"`
	CartStore    string   `json:"cart_store"`
	OrderStore   string   `json:"order_store"`
	Receipts     bool     `json:"receipts"`
	Docs         string   `json:"docs"`
}

// Index answers GET / with info. The payload is fixed at startup.
func Index(info ServiceInfo) gin.HandlerFunc {
	if info.Name == "" {
		info.Name = "Coffee Order API"
	}
	if info.Version == "" {
		info.Version = Version
	}
	if info.Docs == "" {
		info.Docs = "/swagger/index.html"
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Response{Success: true, Message: info.Name, Data: info})
	}
}
