package osm2exits

import (
	"github.com/paulmach/osm"
)

// ambiguousTrackDirection returns stops with carriages whose track has no preferred direction.
// Such stops need `exit:carriages:forward` / `exit:carriages:backward` tagging to be oriented.
func ambiguousTrackDirection(stops []*Stop) []osm.NodeID {
	ids := []osm.NodeID{}
	for _, stop := range stops {
		if len(stop.Carriages) > 0 && stop.Direction != DIRECTION_FORWARD && stop.Direction != DIRECTION_BACKWARD {
			ids = append(ids, stop.NodeID)
		}
	}
	return ids
}

// flipByTrackDirection clusters the bearings of stop tracks. Bearing is measured from the stop towards
// the next node of its track (or from the previous node towards the stop) and turned around for
// stops on backward tracks. Stops without carriages are never flipped.
// Gives up when any stop with carriages is on a track without preferred direction.
func flipByTrackDirection(stops []*Stop, index *FeatureIndex) []bool {
	if len(ambiguousTrackDirection(stops)) > 0 {
		return nil
	}
	bearings := make([]float64, 0, len(stops))
	positions := make([]int, 0, len(stops))
	for i, stop := range stops {
		if len(stop.Carriages) == 0 {
			continue
		}
		bearing, ok := trackBearingAt(stop, index)
		if !ok {
			return nil
		}
		if stop.Direction == DIRECTION_BACKWARD {
			bearing = normalizeAngle(bearing + 180)
		}
		bearings = append(bearings, bearing)
		positions = append(positions, i)
	}
	if len(bearings) == 0 {
		return nil
	}
	clusters := SplitInHalf(bearings)
	flips := make([]bool, len(stops))
	for i, position := range positions {
		flips[position] = clusters[i]
	}
	return flips
}

// trackBearingAt picks any track containing the stop. There could be several if the track is split at the stop.
func trackBearingAt(stop *Stop, index *FeatureIndex) (float64, bool) {
	here := stop.Point()
	for _, way := range index.WaysContainingNode(stop.NodeID) {
		nodeIdx := -1
		for i, wayNode := range way.Nodes {
			if wayNode.ID == stop.NodeID {
				nodeIdx = i
				break
			}
		}
		if nodeIdx == -1 {
			continue
		}
		if nodeIdx+1 < len(way.Nodes) {
			if next, ok := nodePoint(index, way.Nodes[nodeIdx+1].ID); ok {
				return bearingBetween(here, next), true
			}
		}
		if nodeIdx > 0 {
			if last, ok := nodePoint(index, way.Nodes[nodeIdx-1].ID); ok {
				return bearingBetween(last, here), true
			}
		}
	}
	return 0, false
}

func nodePoint(index *FeatureIndex, id osm.NodeID) (GeoPoint, bool) {
	node, ok := index.Nodes[id]
	if !ok {
		return GeoPoint{}, false
	}
	return GeoPoint{Lat: node.Lat, Lon: node.Lon}, true
}
