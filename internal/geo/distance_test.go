package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var site = Point{Lat: 37.456461, Lon: 126.952096}

func TestDistance_Zero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(site, site))
}

func TestDistance_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111.19 km on a spherical Earth.
	d := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 111195, d, 50)
}

func TestDistance_Symmetric(t *testing.T) {
	a := site
	b := Point{Lat: 37.5665, Lon: 126.9780}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestGate_InclusiveBoundary(t *testing.T) {
	p := Point{Lat: site.Lat + 0.0009, Lon: site.Lon}
	d := Distance(site, p)

	// Exactly at the radius passes; a tenth of a meter beyond fails.
	_, ok := Gate{Site: site, RadiusM: d}.Check(p)
	assert.True(t, ok, "boundary is inclusive")

	_, ok = Gate{Site: site, RadiusM: d - 0.1}.Check(p)
	assert.False(t, ok)
}

func TestGate_NearAndFar(t *testing.T) {
	g := Gate{Site: site, RadiusM: 100}

	d, ok := g.Check(Point{Lat: site.Lat + 0.0001, Lon: site.Lon})
	assert.True(t, ok)
	assert.Less(t, d, 100.0)

	d, ok = g.Check(Point{Lat: site.Lat + 0.01, Lon: site.Lon})
	assert.False(t, ok)
	assert.Greater(t, d, 1000.0)
}

func TestFormatMeters(t *testing.T) {
	assert.Equal(t, "73.1m", FormatMeters(73.08))
	assert.Equal(t, "100.0m", FormatMeters(100.04))
	assert.Equal(t, "0.0m", FormatMeters(0))
}
