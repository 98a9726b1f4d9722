package osm2exits

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt GeoPoint) string {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONStops returns FeatureCollection with a point per stop of every station
func PrepareGeoJSONStops(stations []*Station) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, station := range stations {
		for _, stop := range station.Stops {
			feature := geojson.NewPointFeature([]float64{stop.Lon, stop.Lat})
			feature.ID = int64(stop.NodeID)
			feature.SetProperty("station", station.ID)
			feature.SetProperty("name", station.Name[""])
			feature.SetProperty("platform", stop.Platform)
			feature.SetProperty("direction", stop.Direction.String())
			feature.SetProperty("bidi_mode", stop.BiDiMode.String())
			feature.SetProperty("exit_side", stop.ExitSide.String())
			feature.SetProperty("carriages", len(stop.Carriages))
			feature.SetProperty("inaccessible", stop.Inaccessible)
			if stop.Flip != nil {
				feature.SetProperty("flip", *stop.Flip)
				feature.SetProperty("flip_algorithm", string(station.FlipAlgorithm))
			}
			fc.AddFeature(feature)
		}
	}
	return fc
}
