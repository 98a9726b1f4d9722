package osm2exits

import (
	"sort"

	"github.com/paulmach/osm"
)

// FeatureIndex is an id-keyed lookup over one immutable snapshot of OSM features.
// Duplicate ids overwrite each other (last write wins).
type FeatureIndex struct {
	Nodes     map[osm.NodeID]*osm.Node
	Ways      map[osm.WayID]*osm.Way
	Relations map[osm.RelationID]*osm.Relation

	nodeWays       map[osm.NodeID][]*osm.Way
	sortedRelation []*osm.Relation
}

// NewFeatureIndex splits flat list of features into typed lookup tables
func NewFeatureIndex(objects osm.Objects) *FeatureIndex {
	index := &FeatureIndex{
		Nodes:     make(map[osm.NodeID]*osm.Node),
		Ways:      make(map[osm.WayID]*osm.Way),
		Relations: make(map[osm.RelationID]*osm.Relation),
		nodeWays:  make(map[osm.NodeID][]*osm.Way),
	}
	for _, obj := range objects {
		switch feature := obj.(type) {
		case *osm.Node:
			index.Nodes[feature.ID] = feature
		case *osm.Way:
			index.Ways[feature.ID] = feature
		case *osm.Relation:
			index.Relations[feature.ID] = feature
		}
	}

	wayIDs := make([]osm.WayID, 0, len(index.Ways))
	for id := range index.Ways {
		wayIDs = append(wayIDs, id)
	}
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })
	for _, id := range wayIDs {
		way := index.Ways[id]
		seen := make(map[osm.NodeID]struct{}, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			if _, ok := seen[wayNode.ID]; ok {
				continue
			}
			seen[wayNode.ID] = struct{}{}
			index.nodeWays[wayNode.ID] = append(index.nodeWays[wayNode.ID], way)
		}
	}

	index.sortedRelation = make([]*osm.Relation, 0, len(index.Relations))
	for _, relation := range index.Relations {
		index.sortedRelation = append(index.sortedRelation, relation)
	}
	sort.Slice(index.sortedRelation, func(i, j int) bool {
		return index.sortedRelation[i].ID < index.sortedRelation[j].ID
	})
	return index
}

// WaysContainingNode returns every way which includes given node, ordered by way ID
func (index *FeatureIndex) WaysContainingNode(nodeID osm.NodeID) []*osm.Way {
	return index.nodeWays[nodeID]
}

// SortedRelations returns all relations ordered by relation ID
func (index *FeatureIndex) SortedRelations() []*osm.Relation {
	return index.sortedRelation
}

// Tags returns tags of any member-referenced feature. Returns nil if feature has not been indexed.
func (index *FeatureIndex) Tags(memberType osm.Type, ref int64) (osm.Tags, bool) {
	switch memberType {
	case osm.TypeNode:
		if node, ok := index.Nodes[osm.NodeID(ref)]; ok {
			return node.Tags, true
		}
	case osm.TypeWay:
		if way, ok := index.Ways[osm.WayID(ref)]; ok {
			return way.Tags, true
		}
	case osm.TypeRelation:
		if relation, ok := index.Relations[osm.RelationID(ref)]; ok {
			return relation.Tags, true
		}
	}
	return nil, false
}
