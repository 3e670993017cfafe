package models

import (
	"time"

	"foodcart-api/geo"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusRestaurant OrderStatus = "restaurant"
	StatusDelivery   OrderStatus = "delivery"
	StatusCompleted  OrderStatus = "completed"
)

// PaymentMethod is how the customer pays for the order
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentElectronic PaymentMethod = "electronic"
)

type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Number        string        `json:"number" gorm:"uniqueIndex;not null"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'new';index"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null;default:'cash'"`
	RestaurantID  *uint         `json:"restaurant_id"`
	Restaurant    *Restaurant   `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Firstname     string        `json:"firstname" gorm:"not null"`
	Lastname      string        `json:"lastname" gorm:"not null"`
	Phonenumber   string        `json:"phonenumber" gorm:"not null"`
	Address       string        `json:"address" gorm:"size:200;not null"`
	Latitude      *float64      `json:"latitude"`
	Longitude     *float64      `json:"longitude"`
	Comment       string        `json:"comment"`
	Items         []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CalledAt      *time.Time    `json:"called_at"`
	DeliveredAt   *time.Time    `json:"delivered_at"`
}

type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	// FixedPrice is the catalog price captured when the item was added and
	// never changes afterwards, whatever happens to the product later.
	FixedPrice float64 `json:"fixed_price" gorm:"not null"`
}

// TotalPrice is the order's derived total: sum of quantity × fixed price
// over its items. It is computed on demand, never stored.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.FixedPrice
	}
	return total
}

// Coordinates returns the delivery point, nil when the address never
// geocoded successfully.
func (o *Order) Coordinates() *geo.Coordinates {
	if o.Latitude == nil || o.Longitude == nil {
		return nil
	}
	return &geo.Coordinates{Lat: *o.Latitude, Lon: *o.Longitude}
}

// SetCoordinates stores a resolved delivery point, or clears both fields
// when nil.
func (o *Order) SetCoordinates(c *geo.Coordinates) {
	if c == nil {
		o.Latitude, o.Longitude = nil, nil
		return
	}
	lat, lon := c.Lat, c.Lon
	o.Latitude, o.Longitude = &lat, &lon
}

// ProductIDs returns the distinct product ids across the order's items.
// Duplicate lines for the same product count once.
func (o *Order) ProductIDs() []uint {
	seen := make(map[uint]bool, len(o.Items))
	var ids []uint
	for _, item := range o.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
