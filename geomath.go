package osm2exits

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

func (gp GeoPoint) orbPoint() orb.Point {
	return orb.Point{gp.Lon, gp.Lat}
}

// normalizeAngle maps any angle (degrees) into [0; 360)
func normalizeAngle(a float64) float64 {
	m := math.Mod(a, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// AngularDiff returns difference between two bearings (degrees). Result is always in [0; 180].
func AngularDiff(a, b float64) float64 {
	diff := math.Abs(normalizeAngle(a) - normalizeAngle(b))
	return math.Min(diff, 360-diff)
}

// bearingBetween returns compass bearing (degrees in [0; 360)) to head from p to q
func bearingBetween(p, q GeoPoint) float64 {
	return normalizeAngle(geo.Bearing(p.orbPoint(), q.orbPoint()))
}

// distanceBetween returns distance between two geo-points (meters)
func distanceBetween(p, q GeoPoint) float64 {
	return geo.DistanceHaversine(p.orbPoint(), q.orbPoint())
}

// averagePoint returns arithmetic mean of coordinates. Good enough for points of a single station.
func averagePoint(pts []GeoPoint) GeoPoint {
	if len(pts) == 0 {
		return GeoPoint{}
	}
	var lat, lon float64
	for _, pt := range pts {
		lat += pt.Lat
		lon += pt.Lon
	}
	return GeoPoint{
		Lat: lat / float64(len(pts)),
		Lon: lon / float64(len(pts)),
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
