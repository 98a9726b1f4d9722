package osm2exits

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPrepareGeometry(t *testing.T) {
	pt := GeoPoint{Lon: 151.2, Lat: -33.8}
	if wkt := PrepareWKTPoint(pt); wkt != "POINT(151.2 -33.8)" {
		t.Errorf("Wrong WKT: %s", wkt)
	}
	if gj := PrepareGeoJSONPoint(pt); !strings.Contains(gj, `"coordinates":[151.2,-33.8]`) {
		t.Errorf("Wrong GeoJSON: %s", gj)
	}

	flip := true
	station := &Station{
		ID:            "CEN",
		Name:          map[string]string{"": "Central"},
		FlipAlgorithm: FLIP_BY_STOP_LOCATION,
		Stops: []*Stop{
			{NodeID: 1, Platform: "1", Lon: 151.2, Lat: -33.8, Direction: DIRECTION_FORWARD, BiDiMode: BIDI_NONE, ExitSide: EXIT_SIDE_LEFT, Flip: &flip},
			{NodeID: 2, Platform: "2", Lon: 151.3, Lat: -33.9, Direction: DIRECTION_BOTH_WAYS, BiDiMode: BIDI_REGULAR, ExitSide: EXIT_SIDE_UNSPECIFIED},
		},
	}
	if wkt := PrepareWKTMultiPoint(station); wkt != "MULTIPOINT((151.2 -33.8),(151.3 -33.9))" {
		t.Errorf("Wrong WKT: %s", wkt)
	}

	fc := PrepareGeoJSONStops([]*Station{station})
	if len(fc.Features) != 2 {
		t.Errorf("There must be 2 features, but got %d", len(fc.Features))
		return
	}
	if fc.Features[0].Properties["flip"] != true || fc.Features[0].Properties["flip_algorithm"] != "stop_location" {
		t.Errorf("Wrong properties: %v", fc.Features[0].Properties)
	}
	if _, ok := fc.Features[1].Properties["flip"]; ok {
		t.Errorf("Unknown flip must be omitted")
	}
}

func TestZeroValues(t *testing.T) {
	if s := Direction(0).String(); s != "undefined" {
		t.Errorf("Zero direction must be 'undefined', but got '%s'", s)
	}
	stop := &Stop{}
	b, err := json.Marshal(stop)
	if err != nil {
		t.Error(err)
		return
	}
	if !strings.Contains(string(b), `"direction":"undefined"`) || !strings.Contains(string(b), `"biDiMode":"undefined"`) {
		t.Errorf("Zero values must be marshalled as 'undefined': %s", b)
	}
	fc := PrepareGeoJSONStops([]*Station{{Stops: []*Stop{stop}}})
	if len(fc.Features) != 1 || fc.Features[0].Properties["direction"] != "undefined" {
		t.Errorf("Stop with zero values must be exported")
	}
}
