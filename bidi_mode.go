package osm2exits

import (
	"github.com/paulmach/osm"
)

// BiDiMode tells how bidirectional track is used by scheduled services
//
// - regular: the track is tagged `railway:bidirectional=regular`, or routes travel in both directions past it
//
// - occasional: the track supports bidirectional operation, but routes only travel in one direction
//
// - unknown: there is no directional info at all
//
// - none: the track is unidirectional
type BiDiMode uint16

const (
	BIDI_NONE = BiDiMode(iota + 1)
	BIDI_REGULAR
	BIDI_OCCASIONAL
	BIDI_UNKNOWN
	BIDI_UNDEFINED = BiDiMode(0)
)

func (iotaIdx BiDiMode) String() string {
	return [...]string{"undefined", "none", "regular", "occasional", "unknown"}[iotaIdx]
}

func (iotaIdx BiDiMode) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

type trackUsage struct {
	relations int
	// Tracks which precede this one in relations' untagged way members
	preceding map[osm.WayID]struct{}
}

// TrackGraph is a small directed multigraph: track -> set of tracks which routes come from
// before entering it. It is built once per run and then queried.
type TrackGraph struct {
	usage map[osm.WayID]*trackUsage
}

// NewTrackGraph walks every relation of the index once
func NewTrackGraph(index *FeatureIndex) *TrackGraph {
	graph := &TrackGraph{
		usage: make(map[osm.WayID]*trackUsage),
	}
	for _, relation := range index.SortedRelations() {
		counted := make(map[osm.WayID]struct{})
		// Only the first predecessor per relation counts
		preceded := make(map[osm.WayID]struct{})
		var previous osm.WayID
		for _, member := range relation.Members {
			if member.Type != osm.TypeWay {
				continue
			}
			wayID := osm.WayID(member.Ref)
			if _, ok := counted[wayID]; !ok {
				counted[wayID] = struct{}{}
				graph.get(wayID).relations++
			}
			if member.Role != "" {
				continue
			}
			if _, ok := preceded[wayID]; !ok && previous != 0 {
				preceded[wayID] = struct{}{}
				graph.get(wayID).preceding[previous] = struct{}{}
			}
			previous = wayID
		}
	}
	return graph
}

func (graph *TrackGraph) get(wayID osm.WayID) *trackUsage {
	usage, ok := graph.usage[wayID]
	if !ok {
		usage = &trackUsage{
			preceding: make(map[osm.WayID]struct{}),
		}
		graph.usage[wayID] = usage
	}
	return usage
}

// RelationsUsing returns number of relations which have given track as a member
func (graph *TrackGraph) RelationsUsing(wayID osm.WayID) int {
	if usage, ok := graph.usage[wayID]; ok {
		return usage.relations
	}
	return 0
}

// BiDiMode classifies bidirectional operation of the track
func (graph *TrackGraph) BiDiMode(track *osm.Way) BiDiMode {
	if track.Tags.Find("railway:bidirectional") == "regular" {
		return BIDI_REGULAR
	}
	direction := TrackDirection(track.Tags)
	if direction != DIRECTION_BOTH_WAYS && direction != DIRECTION_UNKNOWN {
		return BIDI_NONE
	}
	usage, ok := graph.usage[track.ID]
	if !ok || usage.relations == 0 {
		// Bidirectional and no regular service: assume it is fully bidirectional for the rare cases when it is used
		return BIDI_REGULAR
	}
	// Routes arrive from more than one side, so they pass in both directions
	if len(usage.preceding) > 1 {
		return BIDI_REGULAR
	}
	if direction == DIRECTION_UNKNOWN {
		return BIDI_UNKNOWN
	}
	return BIDI_OCCASIONAL
}
