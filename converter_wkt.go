package osm2exits

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt GeoPoint) string {
	return wkt.MarshalString(pt.orbPoint())
}

// PrepareWKTMultiPoint returns WKT representation of every stop of a station
func PrepareWKTMultiPoint(station *Station) string {
	mp := make(orb.MultiPoint, 0, len(station.Stops))
	for _, stop := range station.Stops {
		mp = append(mp, stop.Point().orbPoint())
	}
	return wkt.MarshalString(mp)
}
