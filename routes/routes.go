package routes

import (
	"github.com/dombialcz/SevenTestsShop/controllers"
	"github.com/dombialcz/SevenTestsShop/repository"
	"github.com/gin-gonic/gin"
)

// Register wires the API routes onto the router.
func Register(r *gin.Engine, products repository.ProductRepository, orders repository.OrderRepository) {
	productController := controllers.NewProductController(products)
	orderController := controllers.NewOrderController(orders)

	api := r.Group("/api")
	{
		api.GET("/products", productController.GetProducts)
		api.GET("/products/categories/all", productController.GetCategories)
		api.GET("/products/:id", productController.GetProductByID)
		api.PUT("/products/:id", productController.UpdateProduct)

		api.POST("/orders", orderController.CreateOrder)
		api.GET("/orders", orderController.GetOrders)
	}
}
