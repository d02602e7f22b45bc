package routes

import (
	"github.com/gin-gonic/gin"

	"eshop/controllers"
)

// RegisterRoutes wires the versioned API surface. Write routes rely on the
// authorization gate installed on the engine; the gate's public allow-list
// mirrors the read routes registered here.
func RegisterRoutes(r *gin.Engine, pc *controllers.ProductController, cc *controllers.CategoryController, ac *controllers.AuthController) {
	api := r.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.GET("", pc.GetProducts)
			products.GET("/:id", pc.GetProduct)
			products.POST("", pc.CreateProduct)
			products.PUT("/:id", pc.UpdateProduct)
			products.DELETE("/:id", pc.DeleteProduct)
			products.GET("/get/count", pc.GetProductCount)
			products.GET("/get/featured", pc.GetFeaturedProducts)
			products.GET("/get/featured/:count", pc.GetFeaturedProducts)
			products.PUT("/gallery-images/:id", pc.UpdateGalleryImages)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", cc.GetCategories)
			categories.GET("/:id", cc.GetCategory)
			categories.POST("", cc.CreateCategory)
			categories.PUT("/:id", cc.UpdateCategory)
			categories.DELETE("/:id", cc.DeleteCategory)
		}

		users := api.Group("/users")
		{
			users.POST("/register", ac.Register)
			users.POST("/login", ac.Login)
		}
	}
}
