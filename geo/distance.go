package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers, rounded to one decimal place (haversine formula).
func DistanceKm(a, b Coordinates) float64 {
	lat1 := degreesToRadians(a.Lat)
	lon1 := degreesToRadians(a.Lon)
	lat2 := degreesToRadians(b.Lat)
	lon2 := degreesToRadians(b.Lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}

// Distance is the nil-safe form of DistanceKm. It reports ok=false when
// either point is unresolved; callers are expected to skip the pair rather
// than treat it as an error.
func Distance(a, b *Coordinates) (km float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return DistanceKm(*a, *b), true
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
