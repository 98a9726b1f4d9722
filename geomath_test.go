package osm2exits

import (
	"math"
	"testing"
)

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestAngularDiff(t *testing.T) {
	cases := []struct {
		a, b float64
		diff float64
	}{
		{10, 10, 0},
		{10, 0, 10},
		{10, -10, 20},
		{360, 0, 0},
		{360, 10, 10},
		{360, -360, 0},
		{360, 720, 0},
		{360 * 4, -360 * 3, 0},
		{1, 181, 180},
		{350, 10, 20},
	}
	for _, c := range cases {
		diff := AngularDiff(c.a, c.b)
		if diff != c.diff {
			t.Errorf("%f° and %f° must be %f° apart, but got %f°", c.a, c.b, c.diff, diff)
		}
		// Symmetric and periodic
		if mirrored := AngularDiff(c.b, c.a); mirrored != diff {
			t.Errorf("Diff between %f° and %f° must be symmetric: %f vs %f", c.a, c.b, diff, mirrored)
		}
		if shifted := AngularDiff(c.a+360, c.b); Round(shifted, 0.000001) != Round(diff, 0.000001) {
			t.Errorf("Diff between %f° and %f° must be periodic: %f vs %f", c.a, c.b, diff, shifted)
		}
	}
}

func TestDistanceBetween(t *testing.T) {
	p1 := GeoPoint{
		Lon: 37.6417350769043,
		Lat: 55.751849391735284,
	}
	p2 := GeoPoint{
		Lon: 37.668514251708984,
		Lat: 55.73261980350401,
	}
	res := 2719.97 // meters
	dist := distanceBetween(p1, p2)
	if Round(dist, 0.5) != Round(res, 0.5) {
		t.Errorf("Distance must be %f, but got %f", res, dist)
	}
}

func TestBearingBetween(t *testing.T) {
	origin := GeoPoint{Lon: 0, Lat: 0}
	cases := []struct {
		to      GeoPoint
		bearing float64
	}{
		{GeoPoint{Lon: 0, Lat: 1}, 0},
		{GeoPoint{Lon: 1, Lat: 0}, 90},
		{GeoPoint{Lon: 0, Lat: -1}, 180},
		{GeoPoint{Lon: -1, Lat: 0}, 270},
	}
	for _, c := range cases {
		bearing := bearingBetween(origin, c.to)
		if Round(bearing, 0.001) != Round(c.bearing, 0.001) {
			t.Errorf("Bearing to %s must be %f, but got %f", c.to, c.bearing, bearing)
		}
	}
}

func TestAveragePoint(t *testing.T) {
	pts := []GeoPoint{
		{Lon: 151.0, Lat: -33.0},
		{Lon: 151.2, Lat: -33.2},
	}
	res := GeoPoint{Lon: 151.1, Lat: -33.1}
	avg := averagePoint(pts)
	if math.Abs(avg.Lon-res.Lon) > 1e-9 || math.Abs(avg.Lat-res.Lat) > 1e-9 {
		t.Errorf("Average point must be %v, but got %v", res, avg)
	}
	if !math.IsNaN(average(nil)) {
		t.Errorf("Average of nothing must be NaN")
	}
}
