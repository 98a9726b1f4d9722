package osm2exits

import (
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// TravelDirection figures out whether the route traverses given track forward or backward.
// Only the topology is used (shared endpoints with adjacent way members), since the relation's
// member order is the only reliable signal of intended travel direction.
//
// DIRECTION_BOTH_WAYS is returned (with a warning) when neither adjacent member is an indexed track.
func TravelDirection(route *osm.Relation, track *osm.Way, index *FeatureIndex, diag *Diagnostics) (Direction, error) {
	memberIdx := -1
	for i, member := range route.Members {
		if member.Type == osm.TypeWay && osm.WayID(member.Ref) == track.ID {
			memberIdx = i
			break
		}
	}
	if memberIdx == -1 {
		return DIRECTION_UNKNOWN, errors.Wrapf(ErrTrackNotInRoute, "w%d in r%d", track.ID, route.ID)
	}
	if len(track.Nodes) == 0 {
		return DIRECTION_UNKNOWN, errors.Errorf("track w%d has no nodes", track.ID)
	}

	var nextTrack, prevTrack *osm.Way
	var nextRef, prevRef int64
	if memberIdx+1 < len(route.Members) {
		nextRef = route.Members[memberIdx+1].Ref
		if route.Members[memberIdx+1].Type == osm.TypeWay {
			nextTrack = index.Ways[osm.WayID(nextRef)]
		}
	}
	if memberIdx > 0 {
		prevRef = route.Members[memberIdx-1].Ref
		if route.Members[memberIdx-1].Type == osm.TypeWay {
			prevTrack = index.Ways[osm.WayID(prevRef)]
		}
	}

	head := track.Nodes[0].ID
	tail := track.Nodes[len(track.Nodes)-1].ID

	if nextTrack != nil && len(nextTrack.Nodes) > 0 {
		// (this) (next)    (this) (next)
		// -----> -----> or -----> <-----
		// If the next track is attached to the head of this one, the route travels backwards
		if head == nextTrack.Nodes[0].ID || head == nextTrack.Nodes[len(nextTrack.Nodes)-1].ID {
			return DIRECTION_BACKWARD, nil
		}
		return DIRECTION_FORWARD, nil
	}

	if prevTrack != nil && len(prevTrack.Nodes) > 0 {
		// If the previous track is attached to the tail of this one, the route travels backwards
		if tail == prevTrack.Nodes[0].ID || tail == prevTrack.Nodes[len(prevTrack.Nodes)-1].ID {
			return DIRECTION_BACKWARD, nil
		}
		return DIRECTION_FORWARD, nil
	}

	diag.Warnf(
		"The next/prev tracks within r%d are ostensibly w%d & w%d, but neither was downloaded. The relation is likely not sorted.",
		route.ID, nextRef, prevRef,
	)
	return DIRECTION_BOTH_WAYS, nil
}
