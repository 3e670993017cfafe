package matching

import (
	"sort"

	"foodcart-api/geo"
	"foodcart-api/models"

	"gorm.io/gorm"
)

// RankedRestaurant pairs a fulfilling restaurant with its straight-line
// distance from the order's delivery point.
type RankedRestaurant struct {
	Restaurant models.Restaurant `json:"restaurant"`
	DistanceKm float64           `json:"distance_km"`
}

// RankRestaurants lists the restaurants able to fulfil the whole order,
// closest first. An order with an unresolved delivery address ranks as an
// empty list, not an error, and restaurants without resolved coordinates
// are left out rather than ranked at infinity. Ties break on restaurant id
// so the ordering is deterministic.
func RankRestaurants(db *gorm.DB, order *models.Order) ([]RankedRestaurant, error) {
	orderCoords := order.Coordinates()
	if orderCoords == nil {
		return nil, nil
	}

	productIDs := order.ProductIDs()
	if len(productIDs) == 0 {
		var err error
		productIDs, err = orderProductIDs(db, order.ID)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := AvailableRestaurants(db, productIDs)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedRestaurant, 0, len(candidates))
	for _, restaurant := range candidates {
		km, ok := geo.Distance(orderCoords, restaurant.Coordinates())
		if !ok {
			continue
		}
		ranked = append(ranked, RankedRestaurant{Restaurant: restaurant, DistanceKm: km})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Restaurant.ID < ranked[j].Restaurant.ID
	})
	return ranked, nil
}

func orderProductIDs(db *gorm.DB, orderID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Distinct().
		Pluck("product_id", &ids).Error
	return ids, err
}
