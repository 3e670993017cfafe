package matching

import (
	"foodcart-api/models"

	"gorm.io/gorm"
)

// AvailableRestaurants returns the restaurants whose menu carries every one
// of the given products with availability on. A restaurant qualifies when
// its distinct available-product count over the set equals the set size, so
// duplicate ids count once. An empty product set matches every restaurant
// vacuously; the order API rejects empty orders before this is reachable.
func AvailableRestaurants(db *gorm.DB, productIDs []uint) ([]models.Restaurant, error) {
	distinct := dedupe(productIDs)

	if len(distinct) == 0 {
		var all []models.Restaurant
		err := db.Order("id").Find(&all).Error
		return all, err
	}

	var ids []uint
	err := db.Model(&models.RestaurantMenuItem{}).
		Where("product_id IN ? AND availability = ?", distinct, true).
		Group("restaurant_id").
		Having("COUNT(DISTINCT product_id) = ?", len(distinct)).
		Pluck("restaurant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Restaurant{}, nil
	}

	var restaurants []models.Restaurant
	err = db.Where("id IN ?", ids).Order("id").Find(&restaurants).Error
	return restaurants, err
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
