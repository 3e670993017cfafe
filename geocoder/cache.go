package geocoder

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodcart-api/geo"

	"gorm.io/gorm"
)

// DefaultTTL is the freshness window for cached coordinates.
const DefaultTTL = 30 * 24 * time.Hour

// AddressCoordinates is one geocode cache row, keyed by normalized address.
// Nil latitude/longitude records a definitive "provider found nothing" so
// known-bad addresses don't trigger a call on every lookup.
type AddressCoordinates struct {
	ID        uint      `gorm:"primaryKey"`
	Address   string    `gorm:"uniqueIndex;size:200;not null"`
	Latitude  *float64  `gorm:"type:real"`
	Longitude *float64  `gorm:"type:real"`
	UpdatedAt time.Time `gorm:"index"`
}

// Coordinates returns the cached point, or nil if the address is unresolved.
func (a *AddressCoordinates) Coordinates() *geo.Coordinates {
	if a.Latitude == nil || a.Longitude == nil {
		return nil
	}
	return &geo.Coordinates{Lat: *a.Latitude, Lon: *a.Longitude}
}

// Fresh reports whether the row is within its freshness window.
func (a *AddressCoordinates) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(a.UpdatedAt) < ttl
}

// GeocodeClient is the slice of Client the cache needs.
type GeocodeClient interface {
	Geocode(ctx context.Context, address string) (*geo.Coordinates, error)
}

// Cache resolves addresses through a persistent coordinate cache, calling
// the provider only for addresses it has never seen or whose entry has
// outlived the TTL.
type Cache struct {
	db     *gorm.DB
	client GeocodeClient
	ttl    time.Duration
	now    func() time.Time
}

func NewCache(db *gorm.DB, client GeocodeClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, client: client, ttl: ttl, now: time.Now}
}

// NormalizeAddress is the cache-key policy: leading/trailing whitespace is
// trimmed and internal runs collapse to a single space. Case is preserved.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

// Resolve returns the coordinates for an address, or nil when the provider
// has no match. A fresh cache row answers without any external call; a
// missing or stale row triggers exactly one provider call, and both found
// and not-found results are written back with a new timestamp.
//
// On provider failure an existing row is left untouched (still stale, still
// eligible for refresh) and nothing is written for a never-seen address, so
// the next Resolve is a clean miss. Two concurrent misses for the same
// address may both call the provider and both write; last write wins, the
// values are equivalent.
func (c *Cache) Resolve(ctx context.Context, address string) (*geo.Coordinates, error) {
	addr := NormalizeAddress(address)

	var entry AddressCoordinates
	err := c.db.WithContext(ctx).Where("address = ?", addr).First(&entry).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if found && entry.Fresh(c.now(), c.ttl) {
		return entry.Coordinates(), nil
	}

	coords, err := c.client.Geocode(ctx, addr)
	if err != nil {
		return nil, err
	}

	entry.Address = addr
	if coords != nil {
		lat, lon := coords.Lat, coords.Lon
		entry.Latitude, entry.Longitude = &lat, &lon
	} else {
		entry.Latitude, entry.Longitude = nil, nil
	}
	entry.UpdatedAt = c.now()

	if found {
		// UpdateColumns keeps the refresh timestamp we chose instead of
		// letting gorm stamp its own.
		err = c.db.WithContext(ctx).Model(&entry).UpdateColumns(map[string]interface{}{
			"latitude":   entry.Latitude,
			"longitude":  entry.Longitude,
			"updated_at": entry.UpdatedAt,
		}).Error
	} else {
		err = c.db.WithContext(ctx).Create(&entry).Error
	}
	if err != nil {
		return nil, err
	}

	return coords, nil
}
