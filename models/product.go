package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

type Product struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"not null"`
	CategoryID    *uint            `json:"category_id"`
	Category      *ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Price         float64          `json:"price" gorm:"not null"`
	ImageURL      string           `json:"image"`
	SpecialStatus bool             `json:"special_status" gorm:"default:false;index"`
	Description   string           `json:"description" gorm:"size:200"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// RestaurantMenuItem says whether a restaurant currently sells a product.
// One row per (restaurant, product) pair.
type RestaurantMenuItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	RestaurantID uint    `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_restaurant_product"`
	ProductID    uint    `json:"product_id" gorm:"not null;uniqueIndex:idx_restaurant_product"`
	Product      Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Availability bool    `json:"availability" gorm:"default:true;index"`
}

// AvailableProducts returns the products at least one restaurant currently
// sells. Explicit query function, no queryset state hiding the filter.
func AvailableProducts(db *gorm.DB) ([]Product, error) {
	sub := db.Model(&RestaurantMenuItem{}).
		Select("product_id").
		Where("availability = ?", true)

	var products []Product
	err := db.Preload("Category").Where("id IN (?)", sub).Find(&products).Error
	return products, err
}
