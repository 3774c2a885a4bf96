package routes

import (
	"net/http"

	"coffee-order/controllers"
	"coffee-order/middleware"
	"coffee-order/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Index   gin.HandlerFunc
	Auth    *controllers.AuthController
	Catalog *controllers.CatalogController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
}

func SetupRoutes(router *gin.Engine, ctrls Controllers, tokens *utils.TokenManager) {
	router.GET("/", ctrls.Index)
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/sessions", ctrls.Auth.StartSession)
	router.POST("/auth/register", ctrls.Auth.Register)
	router.POST("/auth/login", ctrls.Auth.Login)

	router.GET("/catalog", ctrls.Catalog.GetCatalog)
	router.GET("/catalog/categories", ctrls.Catalog.GetCategories)
	router.GET("/catalog/:id", ctrls.Catalog.GetCatalogItem)
	router.GET("/promotions", ctrls.Catalog.GetPromotions)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.GET("/cart", ctrls.Cart.GetCart)
		auth.DELETE("/cart", ctrls.Cart.ClearCart)
		auth.POST("/cart/items", ctrls.Cart.AddItem)
		auth.PATCH("/cart/items/:id", ctrls.Cart.UpdateQuantity)
		auth.DELETE("/cart/items/:id", ctrls.Cart.RemoveItem)

		auth.POST("/checkout", ctrls.Order.Checkout)
		auth.GET("/orders", ctrls.Order.GetOrders)
		auth.GET("/orders/:number", ctrls.Order.GetOrderByNumber)

		auth.GET("/auth/profile", middleware.UserMiddleware(), ctrls.Auth.GetProfile)
	}
}
