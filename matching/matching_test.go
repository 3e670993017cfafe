package matching

import (
	"testing"

	"foodcart-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ProductCategory{},
		&models.Product{},
		&models.Restaurant{},
		&models.RestaurantMenuItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string, lat, lon *float64) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, Address: name + " address", Latitude: lat, Longitude: lon}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedMenuRow(t *testing.T, db *gorm.DB, restaurantID, productID uint, available bool) {
	t.Helper()
	row := models.RestaurantMenuItem{
		RestaurantID: restaurantID,
		ProductID:    productID,
		Availability: available,
	}
	require.NoError(t, db.Create(&row).Error)
}

func ptr(v float64) *float64 { return &v }

func restaurantIDs(rs []models.Restaurant) []uint {
	ids := make([]uint, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}
