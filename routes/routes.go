package routes

import (
	"foodcart-api/handlers"
	"foodcart-api/middleware"
	"foodcart-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Storefront (no auth needed)
		public.GET("/banners", handlers.ListBanners)
		public.GET("/products", handlers.ListProducts)
		public.GET("/restaurants", handlers.ListRestaurants)

		// Order submission
		public.POST("/orders", handlers.CreateOrder)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Manager console ────────────────────────────────────────────
	manager := r.Group("/api/manager")
	manager.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleManager, models.RoleAdmin))
	{
		// Orders
		manager.GET("/orders", handlers.ManagerListOrders)
		manager.GET("/orders/:id/restaurants", handlers.ManagerGetOrderRestaurants)
		manager.PUT("/orders/:id/assign", handlers.ManagerAssignRestaurant)
		manager.PUT("/orders/:id/status", handlers.ManagerUpdateOrderStatus)
		manager.PUT("/orders/:id/address", handlers.ManagerUpdateOrderAddress)

		// Order items
		manager.POST("/orders/:id/items", handlers.ManagerAddOrderItem)
		manager.PUT("/orders/:id/items/:itemId", handlers.ManagerUpdateOrderItem)
		manager.DELETE("/orders/:id/items/:itemId", handlers.ManagerDeleteOrderItem)

		// Restaurants & menus
		manager.POST("/restaurants", handlers.CreateRestaurant)
		manager.PUT("/restaurants/:id", handlers.UpdateRestaurant)
		manager.PUT("/restaurants/:id/menu", handlers.SetMenuItem)

		// Catalog
		manager.POST("/products", handlers.CreateProduct)
		manager.POST("/categories", handlers.CreateCategory)
	}
}
