package osm2exits

import (
	"sort"

	"github.com/paulmach/osm"
)

// stationFeature is any feature tagged `public_transport=station`
type stationFeature struct {
	Type osm.Type
	ID   int64
	Tags osm.Tags
}

// ownStation returns the first station among members of a stop area
func ownStation(stopArea *osm.Relation, index *FeatureIndex) *stationFeature {
	for _, member := range stopArea.Members {
		tags, ok := index.Tags(member.Type, member.Ref)
		if ok && isStation(tags) {
			return &stationFeature{Type: member.Type, ID: member.Ref, Tags: tags}
		}
	}
	return nil
}

// parseStopAreaGroups maps every stop area of a `stop_area_group` to the "main" station of the group.
// Some networks have separate station features per mode of transport, the group is used to merge them.
// The station with the lowest ID wins. Groups with a single station are ignored.
func parseStopAreaGroups(index *FeatureIndex) map[osm.RelationID]*stationFeature {
	groups := make(map[osm.RelationID]*stationFeature)
	for _, relation := range index.SortedRelations() {
		if relation.Tags.Find("public_transport") != "stop_area_group" {
			continue
		}
		stopAreas := []*osm.Relation{}
		for _, member := range relation.Members {
			if member.Type != osm.TypeRelation {
				continue
			}
			if stopArea, ok := index.Relations[osm.RelationID(member.Ref)]; ok {
				stopAreas = append(stopAreas, stopArea)
			}
		}

		seen := make(map[osm.FeatureID]struct{})
		stations := []*stationFeature{}
		for _, stopArea := range stopAreas {
			for _, member := range stopArea.Members {
				tags, ok := index.Tags(member.Type, member.Ref)
				if !ok || !isStation(tags) {
					continue
				}
				featureID := member.FeatureID()
				if _, ok := seen[featureID]; ok {
					continue
				}
				seen[featureID] = struct{}{}
				stations = append(stations, &stationFeature{Type: member.Type, ID: member.Ref, Tags: tags})
			}
		}
		if len(stations) < 2 {
			continue
		}
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].ID < stations[j].ID
		})
		for _, stopArea := range stopAreas {
			groups[stopArea.ID] = stations[0]
		}
	}
	return groups
}
