package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"eshop/config"
	"eshop/controllers"
	"eshop/database"
	"eshop/middleware"
	"eshop/repositories"
	"eshop/routes"
	"eshop/uploads"
)

func main() {
	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(cors.Default())

	secret := []byte(config.GetEnv("JWT_SECRET", ""))
	r.Use(middleware.AuthGuard(secret, middleware.AdminOnly))

	r.Static(uploads.RoutePrefix, "./"+uploads.DefaultDir)

	productRepo := repositories.NewMongoProductRepository(database.ProductCollection, database.CategoryCollection)
	categoryRepo := repositories.NewMongoCategoryRepository(database.CategoryCollection)

	pc := controllers.NewProductController(productRepo, categoryRepo, uploads.NewStore(uploads.DefaultDir))
	cc := controllers.NewCategoryController(categoryRepo)
	ac := controllers.NewAuthController(database.UserCollection, secret)

	routes.RegisterRoutes(r, pc, cc, ac)

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}
