package handlers

import (
	"net/http"

	"foodcart-api/config"
	"foodcart-api/models"

	"github.com/gin-gonic/gin"
)

// ListBanners returns the storefront banners (public)
func ListBanners(c *gin.Context) {
	c.JSON(http.StatusOK, []gin.H{
		{
			"title": "Burger",
			"src":   "/static/burger.jpg",
			"text":  "Tasty Burger at your door step",
		},
		{
			"title": "Spices",
			"src":   "/static/food.jpg",
			"text":  "All Cuisines",
		},
		{
			"title": "New York",
			"src":   "/static/tasty.jpg",
			"text":  "Food is incomplete without a tasty dessert",
		},
	})
}

// ListProducts returns the products at least one restaurant currently sells
// (public)
func ListProducts(c *gin.Context) {
	products, err := models.AvailableProducts(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	out := make([]gin.H, 0, len(products))
	for _, product := range products {
		var category gin.H
		if product.Category != nil {
			category = gin.H{"id": product.Category.ID, "name": product.Category.Name}
		}
		out = append(out, gin.H{
			"id":             product.ID,
			"name":           product.Name,
			"price":          product.Price,
			"special_status": product.SpecialStatus,
			"description":    product.Description,
			"category":       category,
			"image":          product.ImageURL,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListRestaurants returns all restaurants (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	info := []gin.H{
		{"from": "new", "to": "processing", "actor": "manager"},
		{"from": "processing", "to": "restaurant", "actor": "manager"},
		{"from": "restaurant", "to": "delivery", "actor": "manager"},
		{"from": "delivery", "to": "completed", "actor": "manager"},
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"completed"},
		"description":     "Order lifecycle for the staff console",
	})
}
