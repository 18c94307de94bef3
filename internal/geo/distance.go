// Package geo computes great-circle distance between the fixed site and a
// reported position, and gates location-checked events on a site radius.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusM is the mean Earth radius in meters.
const earthRadiusM = 6371008.8

// Point is a WGS-84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// String renders the point the way it is stored in the location cell.
func (p Point) String() string {
	return fmt.Sprintf("%v,%v", p.Lat, p.Lon)
}

// Distance returns the great-circle distance in meters between two points,
// via the haversine formula.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// Gate is the site radius check for location-gated events.
type Gate struct {
	Site    Point
	RadiusM float64
}

// Check returns the distance from the site to p and whether p is inside
// the allowed radius. The boundary is inclusive: exactly RadiusM passes.
func (g Gate) Check(p Point) (distance float64, ok bool) {
	distance = Distance(g.Site, p)
	return distance, distance <= g.RadiusM
}

// FormatMeters renders a distance the way the sheet stores it: one
// decimal with the meter suffix, e.g. "73.1m".
func FormatMeters(d float64) string {
	return fmt.Sprintf("%.1fm", d)
}
