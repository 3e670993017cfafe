package config

import (
	"log"
	"time"

	"foodcart-api/geocoder"
	"foodcart-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — overridden by Load from config/env
var JWTSecret = []byte("foodcart_super_secret_2024")

// Config holds all runtime settings. Every key can be overridden through
// the environment (viper.AutomaticEnv) or a foodcart.yaml next to the
// binary.
type Config struct {
	Port            string
	GinMode         string
	DBPath          string
	JWTSecret       string
	GeocoderAPIKey  string
	GeocoderBaseURL string
	GeocoderTimeout time.Duration
	GeocodeCacheTTL time.Duration
}

// Load reads configuration from an optional foodcart.yaml and the
// environment, with sensible defaults for local runs.
func Load() *Config {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db_path", "foodcart.db")
	v.SetDefault("jwt_secret", string(JWTSecret))
	v.SetDefault("geocoder_api_key", "")
	v.SetDefault("geocoder_base_url", "https://geocode-maps.yandex.ru/1.x")
	v.SetDefault("geocoder_timeout", geocoder.DefaultTimeout)
	v.SetDefault("geocode_cache_ttl", geocoder.DefaultTTL)

	v.SetConfigName("foodcart")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		GinMode:         v.GetString("gin_mode"),
		DBPath:          v.GetString("db_path"),
		JWTSecret:       v.GetString("jwt_secret"),
		GeocoderAPIKey:  v.GetString("geocoder_api_key"),
		GeocoderBaseURL: v.GetString("geocoder_base_url"),
		GeocoderTimeout: v.GetDuration("geocoder_timeout"),
		GeocodeCacheTTL: v.GetDuration("geocode_cache_ttl"),
	}
	JWTSecret = []byte(cfg.JWTSecret)
	return cfg
}

func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Restaurant{},
		&models.RestaurantMenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&geocoder.AddressCoordinates{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}
