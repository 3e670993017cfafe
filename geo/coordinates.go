package geo

// Coordinates is a geographic point (WGS 84). A nil *Coordinates means the
// point could not be resolved.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
