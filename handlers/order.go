package handlers

import (
	"context"
	"log"
	"net/http"

	"foodcart-api/config"
	"foodcart-api/geo"
	"foodcart-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Resolver turns a free-form address into coordinates. nil coordinates with
// a nil error means the address is legitimately unresolvable.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*geo.Coordinates, error)
}

// Geo is the shared geocode cache, set once at startup.
var Geo Resolver

// resolveCoordinates geocodes best-effort: a provider failure is logged and
// degrades to absent coordinates instead of failing the caller's write.
func resolveCoordinates(ctx context.Context, address string) *geo.Coordinates {
	if Geo == nil {
		return nil
	}
	coords, err := Geo.Resolve(ctx, address)
	if err != nil {
		log.Printf("geocoding failed for %q: %v", address, err)
		return nil
	}
	return coords
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=20"`
}

type CreateOrderRequest struct {
	Firstname     string               `json:"firstname" binding:"required,min=2,max=50"`
	Lastname      string               `json:"lastname" binding:"required,min=2,max=50"`
	Phonenumber   string               `json:"phonenumber" binding:"required,e164"`
	Address       string               `json:"address" binding:"required,min=10,max=200"`
	Comment       string               `json:"comment"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"omitempty,oneof=cash electronic"`
	Items         []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder is the public order-submission endpoint. Item prices are
// snapshotted from the catalog at creation time; the delivery address is
// geocoded through the cache, and the order is created even when geocoding
// fails — only the derived coordinates end up absent.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fetch each product once, duplicates share the snapshot.
	productMap := make(map[uint]models.Product)
	for _, item := range req.Items {
		if _, exists := productMap[item.ProductID]; exists {
			continue
		}
		var product models.Product
		if err := config.DB.First(&product, item.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		productMap[item.ProductID] = product
	}

	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			FixedPrice: productMap[item.ProductID].Price,
		})
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}

	order := models.Order{
		Number:        uuid.New().String(),
		Status:        models.StatusNew,
		PaymentMethod: paymentMethod,
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Phonenumber:   req.Phonenumber,
		Address:       req.Address,
		Comment:       req.Comment,
		Items:         orderItems,
	}
	order.SetCoordinates(resolveCoordinates(c.Request.Context(), req.Address))

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed successfully",
		"order":       order,
		"total_price": order.TotalPrice(),
	})
}
