package models

import (
	"time"

	"foodcart-api/geo"
)

type Restaurant struct {
	ID           uint                 `json:"id" gorm:"primaryKey"`
	Name         string               `json:"name" gorm:"not null"`
	Address      string               `json:"address" gorm:"size:200"`
	ContactPhone string               `json:"contact_phone"`
	Latitude     *float64             `json:"latitude"`
	Longitude    *float64             `json:"longitude"`
	MenuItems    []RestaurantMenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Coordinates returns the restaurant's resolved location, nil when geocoding
// its address never succeeded.
func (r *Restaurant) Coordinates() *geo.Coordinates {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &geo.Coordinates{Lat: *r.Latitude, Lon: *r.Longitude}
}

// SetCoordinates stores a resolved point, or clears both fields when nil.
func (r *Restaurant) SetCoordinates(c *geo.Coordinates) {
	if c == nil {
		r.Latitude, r.Longitude = nil, nil
		return
	}
	lat, lon := c.Lat, c.Lon
	r.Latitude, r.Longitude = &lat, &lon
}
