package valueobject

import "fmt"

// Coordinate is an immutable value object representing a WGS84 point.
type Coordinate struct {
	lat float64
	lon float64
}

// NewCoordinate creates a Coordinate after validating latitude and longitude ranges.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// Lat returns the latitude in decimal degrees.
func (c Coordinate) Lat() float64 {
	return c.lat
}

// Lon returns the longitude in decimal degrees.
func (c Coordinate) Lon() float64 {
	return c.lon
}

// String returns the coordinate formatted as "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.lat, c.lon)
}
