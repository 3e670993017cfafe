package handlers

import (
	"net/http"
	"time"

	"foodcart-api/config"
	"foodcart-api/matching"
	"foodcart-api/middleware"
	"foodcart-api/models"
	"foodcart-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ManagerListOrders returns all orders with their derived totals and, for
// unassigned orders, the restaurants able to fulfil them ranked by distance.
// A geocoding gap shows up as an empty restaurant list, never as an error.
func ManagerListOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.Product").Preload("Restaurant")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	query.Order("created_at desc").Find(&orders)

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		row := gin.H{
			"order":       order,
			"total_price": order.TotalPrice(),
		}
		if order.RestaurantID == nil {
			ranked, err := matching.RankRestaurants(config.DB, order)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank restaurants"})
				return
			}
			row["available_restaurants"] = ranked
		}
		out = append(out, row)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(out), "orders": out})
}

// ManagerGetOrderRestaurants ranks the restaurants able to fulfil one order.
func ManagerGetOrderRestaurants(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	ranked, err := matching.RankRestaurants(config.DB, &order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":    order.ID,
		"count":       len(ranked),
		"restaurants": ranked,
	})
}

type AssignRestaurantRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
}

// ManagerAssignRestaurant assigns a fulfilling restaurant to an order. The
// restaurant must carry every ordered product; status stays untouched, the
// transition endpoint guards the lifecycle.
func ManagerAssignRestaurant(c *gin.Context) {
	var req AssignRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	candidates, err := matching.AvailableRestaurants(config.DB, order.ProductIDs())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}
	eligible := false
	for _, candidate := range candidates {
		if candidate.ID == restaurant.ID {
			eligible = true
			break
		}
	}
	if !eligible {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Restaurant cannot fulfil this order: it does not carry every ordered product",
		})
		return
	}

	if err := config.DB.Model(&order).Update("restaurant_id", restaurant.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Restaurant assigned",
		"order_id":      order.ID,
		"restaurant_id": restaurant.ID,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// ManagerUpdateOrderStatus moves an order through its lifecycle. Handing an
// order to a restaurant requires one to be assigned first.
func ManagerUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, string(middleware.GetRole(c))); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}
	if req.Status == models.StatusRestaurant && order.RestaurantID == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Assign a restaurant before handing the order over",
		})
		return
	}

	update := map[string]interface{}{"status": req.Status}
	now := time.Now()
	switch req.Status {
	case models.StatusProcessing:
		update["called_at"] = &now
	case models.StatusCompleted:
		update["delivered_at"] = &now
	}

	prevStatus := order.Status
	if err := config.DB.Model(&order).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}

type UpdateOrderAddressRequest struct {
	Address string `json:"address" binding:"required,min=10,max=200"`
}

// ManagerUpdateOrderAddress changes the delivery address. The in-memory
// value just loaded is the previous-address snapshot: coordinates are
// re-resolved only when the address actually changed, no re-fetch of the
// row to find out.
func ManagerUpdateOrderAddress(c *gin.Context) {
	var req UpdateOrderAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if req.Address == order.Address {
		c.JSON(http.StatusOK, gin.H{"message": "Address unchanged", "order": order})
		return
	}

	order.Address = req.Address
	order.SetCoordinates(resolveCoordinates(c.Request.Context(), req.Address))

	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		"address":   order.Address,
		"latitude":  order.Latitude,
		"longitude": order.Longitude,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "order": order})
}

// ── Order item edits ────────────────────────────────────────────────────────
// Every mutation returns the recomputed total; nothing recomputes behind the
// caller's back.

type AddOrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=20"`
}

// ManagerAddOrderItem appends an item, snapshotting the current catalog
// price, and returns the new total.
func ManagerAddOrderItem(c *gin.Context) {
	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
		return
	}

	item := models.OrderItem{
		OrderID:    order.ID,
		ProductID:  product.ID,
		Quantity:   req.Quantity,
		FixedPrice: product.Price,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Item added",
		"item":        item,
		"total_price": orderTotal(order.ID),
	})
}

type UpdateOrderItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=20"`
}

// ManagerUpdateOrderItem changes an item's quantity. The fixed price is
// immutable; only the quantity moves.
func ManagerUpdateOrderItem(c *gin.Context) {
	var req UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.OrderItem
	if err := config.DB.Where("order_id = ?", c.Param("id")).First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}

	if err := config.DB.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Item updated",
		"item":        item,
		"total_price": orderTotal(item.OrderID),
	})
}

// ManagerDeleteOrderItem removes an item and returns the new total.
func ManagerDeleteOrderItem(c *gin.Context) {
	var item models.OrderItem
	if err := config.DB.Where("order_id = ?", c.Param("id")).First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Item deleted",
		"total_price": orderTotal(item.OrderID),
	})
}

func orderTotal(orderID uint) float64 {
	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		return 0
	}
	return order.TotalPrice()
}
