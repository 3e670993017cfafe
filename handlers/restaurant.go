package handlers

import (
	"net/http"

	"foodcart-api/config"
	"foodcart-api/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management (staff console) ───────────────────────────────────

type CreateRestaurantRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address" binding:"required,min=10,max=200"`
	ContactPhone string `json:"contact_phone"`
}

// CreateRestaurant registers a restaurant and geocodes its address through
// the cache. Geocoding failure leaves coordinates absent; the restaurant is
// created regardless and simply won't appear in distance rankings.
func CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	}
	restaurant.SetCoordinates(resolveCoordinates(c.Request.Context(), req.Address))

	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

type UpdateRestaurantRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address" binding:"omitempty,min=10,max=200"`
	ContactPhone *string `json:"contact_phone"`
}

// UpdateRestaurant updates restaurant details. The row just loaded is the
// previous-value snapshot: the address is re-geocoded only when it actually
// changed.
func UpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.ContactPhone != nil {
		restaurant.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil && *req.Address != restaurant.Address {
		restaurant.Address = *req.Address
		restaurant.SetCoordinates(resolveCoordinates(c.Request.Context(), *req.Address))
	}

	if err := config.DB.Model(&restaurant).Updates(map[string]interface{}{
		"name":          restaurant.Name,
		"contact_phone": restaurant.ContactPhone,
		"address":       restaurant.Address,
		"latitude":      restaurant.Latitude,
		"longitude":     restaurant.Longitude,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type SetMenuItemRequest struct {
	ProductID    uint  `json:"product_id" binding:"required"`
	Availability *bool `json:"availability" binding:"required"`
}

// SetMenuItem creates or updates the (restaurant, product) availability row.
func SetMenuItem(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req SetMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
		return
	}

	var row models.RestaurantMenuItem
	err := config.DB.Where("restaurant_id = ? AND product_id = ?", restaurant.ID, product.ID).First(&row).Error
	if err != nil {
		row = models.RestaurantMenuItem{
			RestaurantID: restaurant.ID,
			ProductID:    product.ID,
			Availability: *req.Availability,
		}
		if err := config.DB.Create(&row).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu row"})
			return
		}
	} else if err := config.DB.Model(&row).Update("availability", *req.Availability).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu row"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu updated", "menu_item": row})
}

// ── Catalog Management ──────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,max=50"`
	CategoryID    *uint   `json:"category_id"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	ImageURL      string  `json:"image"`
	SpecialStatus bool    `json:"special_status"`
	Description   string  `json:"description" binding:"max=200"`
}

// CreateProduct adds a catalog product.
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CategoryID != nil {
		var category models.ProductCategory
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
	}

	product := models.Product{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		SpecialStatus: req.SpecialStatus,
		Description:   req.Description,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CreateCategory adds a product category.
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.ProductCategory{Name: req.Name}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}
