package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodcart-api/config"
	"foodcart-api/geo"
	"foodcart-api/geocoder"
	"foodcart-api/matching"
	"foodcart-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeResolver replays a scripted geocoding result and counts calls.
type fakeResolver struct {
	coords *geo.Coordinates
	err    error
	calls  int
}

func (f *fakeResolver) Resolve(ctx context.Context, address string) (*geo.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

func setupHandlerTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Restaurant{},
		&models.RestaurantMenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&geocoder.AddressCoordinates{},
	))
	config.DB = db
	Geo = nil
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func orderRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/orders", CreateOrder)
	return r
}

func seedProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price}
	require.NoError(t, config.DB.Create(&p).Error)
	return p
}

func validOrderPayload(items []gin.H) gin.H {
	return gin.H{
		"firstname":   "Ivan",
		"lastname":    "Petrov",
		"phonenumber": "+79991234567",
		"address":     "Москва, Тверская улица, 7",
		"items":       items,
	}
}

func TestCreateOrder(t *testing.T) {
	setupHandlerTest(t)
	burger := seedProduct(t, "Burger", 250)
	fries := seedProduct(t, "Fries", 120)
	Geo = &fakeResolver{coords: &geo.Coordinates{Lat: 55.75, Lon: 37.62}}

	w := postJSON(orderRouter(), "/api/orders", validOrderPayload([]gin.H{
		{"product_id": burger.ID, "quantity": 2},
		{"product_id": fries.ID, "quantity": 1},
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order).Error)
	assert.Equal(t, models.StatusNew, order.Status)
	require.NotNil(t, order.Latitude)
	assert.Equal(t, 55.75, *order.Latitude)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 620.0, order.TotalPrice())
}

func TestCreateOrderSurvivesGeocodingFailure(t *testing.T) {
	setupHandlerTest(t)
	burger := seedProduct(t, "Burger", 250)
	Geo = &fakeResolver{err: &geocoder.ProviderError{Address: "x", Err: errors.New("unreachable")}}

	w := postJSON(orderRouter(), "/api/orders", validOrderPayload([]gin.H{
		{"product_id": burger.ID, "quantity": 1},
	}))
	require.Equal(t, http.StatusCreated, w.Code, "order creation must not fail on geocoding errors")

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order).Error)
	assert.Nil(t, order.Latitude)
	assert.Nil(t, order.Longitude)

	// An unresolved delivery address ranks as an empty list, not an error.
	ranked, err := matching.RankRestaurants(config.DB, &order)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestCreateOrderValidation(t *testing.T) {
	setupHandlerTest(t)
	burger := seedProduct(t, "Burger", 250)
	Geo = &fakeResolver{coords: &geo.Coordinates{Lat: 55.75, Lon: 37.62}}
	router := orderRouter()

	item := gin.H{"product_id": burger.ID, "quantity": 1}

	tests := []struct {
		name    string
		mutate  func(payload gin.H)
	}{
		{name: "empty items", mutate: func(p gin.H) { p["items"] = []gin.H{} }},
		{name: "missing items", mutate: func(p gin.H) { delete(p, "items") }},
		{name: "firstname too short", mutate: func(p gin.H) { p["firstname"] = "A" }},
		{name: "address too short", mutate: func(p gin.H) { p["address"] = "short" }},
		{name: "bad phone", mutate: func(p gin.H) { p["phonenumber"] = "not-a-phone" }},
		{name: "zero quantity", mutate: func(p gin.H) {
			p["items"] = []gin.H{{"product_id": burger.ID, "quantity": 0}}
		}},
		{name: "quantity over limit", mutate: func(p gin.H) {
			p["items"] = []gin.H{{"product_id": burger.ID, "quantity": 21}}
		}},
		{name: "unknown payment method", mutate: func(p gin.H) { p["payment_method"] = "crypto" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validOrderPayload([]gin.H{item})
			tt.mutate(payload)
			w := postJSON(router, "/api/orders", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	setupHandlerTest(t)
	Geo = &fakeResolver{coords: &geo.Coordinates{Lat: 55.75, Lon: 37.62}}

	w := postJSON(orderRouter(), "/api/orders", validOrderPayload([]gin.H{
		{"product_id": 9999, "quantity": 1},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderFixedPriceIndependentOfCatalog(t *testing.T) {
	setupHandlerTest(t)
	burger := seedProduct(t, "Burger", 250)
	Geo = &fakeResolver{coords: &geo.Coordinates{Lat: 55.75, Lon: 37.62}}

	w := postJSON(orderRouter(), "/api/orders", validOrderPayload([]gin.H{
		{"product_id": burger.ID, "quantity": 2},
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	// The catalog price changes after the order was placed.
	require.NoError(t, config.DB.Model(&burger).Update("price", 999.0).Error)

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order).Error)
	assert.Equal(t, 500.0, order.TotalPrice(), "snapshotted price must not follow the catalog")
	assert.Equal(t, 250.0, order.Items[0].FixedPrice)
}

func TestCreateOrderDefaultsToCashPayment(t *testing.T) {
	setupHandlerTest(t)
	burger := seedProduct(t, "Burger", 250)
	Geo = &fakeResolver{coords: &geo.Coordinates{Lat: 55.75, Lon: 37.62}}

	w := postJSON(orderRouter(), "/api/orders", validOrderPayload([]gin.H{
		{"product_id": burger.ID, "quantity": 1},
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, config.DB.First(&order).Error)
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)
	assert.NotEmpty(t, order.Number)
}

func TestListProductsOnlyAvailable(t *testing.T) {
	setupHandlerTest(t)
	sold := seedProduct(t, "Burger", 250)
	_ = seedProduct(t, "Ghost item", 100)

	restaurant := models.Restaurant{Name: "R", Address: "Москва, Арбат, 1"}
	require.NoError(t, config.DB.Create(&restaurant).Error)
	require.NoError(t, config.DB.Create(&models.RestaurantMenuItem{
		RestaurantID: restaurant.ID,
		ProductID:    sold.ID,
		Availability: true,
	}).Error)

	r := gin.New()
	r.GET("/api/products", ListProducts)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, fmt.Sprintf("%v", sold.ID), fmt.Sprintf("%v", out[0]["id"]))
}
