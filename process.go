package osm2exits

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const maxDescriptionLength = 20

// Result is the output of a single run
type Result struct {
	Stations        []*Station                    `json:"stations"`
	Warnings        []string                      `json:"warnings"`
	NodesWithNoData map[osm.NodeID]NodeWithNoData `json:"nodesWithNoData"`
}

// routeIndex is a lookup from stop nodes and tracks to the route relations using them
type routeIndex struct {
	stoppingAt map[osm.NodeID][]*osm.Relation
	usingTrack map[osm.WayID][]*osm.Relation
}

func newRouteIndex(index *FeatureIndex) *routeIndex {
	routes := &routeIndex{
		stoppingAt: make(map[osm.NodeID][]*osm.Relation),
		usingTrack: make(map[osm.WayID][]*osm.Relation),
	}
	for _, relation := range index.SortedRelations() {
		if relation.Tags.Find("route") == "" {
			continue
		}
		seenNodes := make(map[osm.NodeID]struct{})
		seenWays := make(map[osm.WayID]struct{})
		for _, member := range relation.Members {
			switch member.Type {
			case osm.TypeNode:
				if !isStopRole(member.Role) {
					continue
				}
				id := osm.NodeID(member.Ref)
				if _, ok := seenNodes[id]; ok {
					continue
				}
				seenNodes[id] = struct{}{}
				routes.stoppingAt[id] = append(routes.stoppingAt[id], relation)
			case osm.TypeWay:
				id := osm.WayID(member.Ref)
				if _, ok := seenWays[id]; ok {
					continue
				}
				seenWays[id] = struct{}{}
				routes.usingTrack[id] = append(routes.usingTrack[id], relation)
			}
		}
	}
	return routes
}

// stopLinkage holds IDs of adjacent stops until every station is built
type stopLinkage struct {
	last []osm.NodeID
	next []osm.NodeID
}

func appendUniqueNode(ids []osm.NodeID, id osm.NodeID) []osm.NodeID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// Process builds stations out of immutable snapshot of OSM features.
// Data problems never abort the run: they are reported as warnings.
func (parser *Parser) Process(objects osm.Objects) *Result {
	logger := parser.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	diag := newDiagnostics(logger)
	overrides := parser.overrides

	st := time.Now()
	index := NewFeatureIndex(objects)
	graph := NewTrackGraph(index)
	routes := newRouteIndex(index)
	stopAreaGroups := parseStopAreaGroups(index)
	logger.Debug("Index has been built",
		zap.Int("nodes", len(index.Nodes)),
		zap.Int("ways", len(index.Ways)),
		zap.Int("relations", len(index.Relations)),
		zap.Duration("elapsed", time.Since(st)),
	)
	if parser.verbose {
		fmt.Printf("\tIndex has been built in %v\n", time.Since(st))
	}

	st = time.Now()
	stations := []*Station{}
	stationsByID := make(map[string]*Station)
	linkage := make(map[*Stop]*stopLinkage)
	for _, relation := range index.SortedRelations() {
		if relation.Tags.Find("public_transport") != "stop_area" {
			continue
		}
		fromGroup := stopAreaGroups[relation.ID]
		fromOwn := ownStation(relation, index)
		mainStation := fromGroup
		if mainStation == nil {
			mainStation = fromOwn
		}
		if mainStation == nil {
			diag.Warnf("No station found for r%d", relation.ID)
			continue
		}

		gtfsID := getRef(mainStation.Tags)
		if gtfsID == "" {
			gtfsID = "_" + strconv.FormatInt(mainStation.ID, 10)
		}
		station, ok := stationsByID[gtfsID]
		if !ok {
			station = &Station{
				RelationID:    relation.ID,
				ID:            gtfsID,
				Name:          getNames(mainStation.Tags),
				Networks:      overrides.Networks(mainStation.Tags),
				FareGates:     fareGatesValues[mainStation.Tags.Find("fare_gates")],
				FareGatesNote: mainStation.Tags.Find("fare_gates:note"),
				Stops:         []*Stop{},
			}
			stationsByID[gtfsID] = station
			stations = append(stations, station)
		}

		for _, member := range relation.Members {
			if member.Type != osm.TypeNode || !isStopRole(member.Role) {
				continue
			}
			node, ok := index.Nodes[osm.NodeID(member.Ref)]
			if !ok {
				// Node has not been downloaded, since no route stops here
				continue
			}
			if station.hasStop(node.ID) {
				continue
			}
			stop, links, ok := parser.buildStop(node, relation, station, index, graph, routes, diag)
			if !ok {
				continue
			}
			if fromGroup != nil {
				var ownTags osm.Tags
				if fromOwn != nil {
					ownTags = fromOwn.Tags
				}
				stop.DisambiguationName = getNames(ownTags)
			}
			station.Stops = append(station.Stops, stop)
			linkage[stop] = links
		}
		sortPlatforms(station.Stops)
	}
	logger.Debug("Stations have been built", zap.Int("stations", len(stations)), zap.Duration("elapsed", time.Since(st)))
	if parser.verbose {
		fmt.Printf("\tStations have been built in %v (%d stations)\n", time.Since(st), len(stations))
	}

	st = time.Now()
	stationsByStopID := make(map[osm.NodeID]*Station)
	stopsByID := make(map[osm.NodeID]*Stop)
	for _, station := range stations {
		for _, stop := range station.Stops {
			stationsByStopID[stop.NodeID] = station
			stopsByID[stop.NodeID] = stop
		}
	}
	adjacent := func(id osm.NodeID, networks []string) (AdjacentStop, bool) {
		station, ok := stationsByStopID[id]
		if !ok {
			// The adjacent stop has no exit data, but it could be found in the raw data
			node, ok := index.Nodes[id]
			if !ok {
				return AdjacentStop{}, false
			}
			return AdjacentStop{
				NodeID:      id,
				StationName: getNames(node.Tags),
				Platform:    overrides.LocalRef(node.Tags, networks),
			}, true
		}
		return AdjacentStop{
			NodeID:      id,
			StationID:   station.ID,
			StationName: station.Name,
			Platform:    stopsByID[id].Platform,
		}, true
	}

	flipped := 0
	for _, station := range stations {
		for _, stop := range station.Stops {
			links := linkage[stop]
			stop.LastStop = []AdjacentStop{}
			stop.NextStop = []AdjacentStop{}
			for _, id := range links.last {
				if value, ok := adjacent(id, station.Networks); ok {
					stop.LastStop = append(stop.LastStop, value)
				}
			}
			for _, id := range links.next {
				if value, ok := adjacent(id, station.Networks); ok {
					stop.NextStop = append(stop.NextStop, value)
				}
			}
		}
		if len(station.Stops) > 1 {
			if ids := ambiguousTrackDirection(station.Stops); len(ids) > 0 {
				diag.Warnf("Ambiguous track direction at %s (%s)", station.Name[""], formatNodeIDs(ids))
			}
		}
		if ResolveFlips(station, index) {
			flipped++
			logger.Debug("Flips have been resolved", zap.String("station", station.ID), zap.String("algorithm", string(station.FlipAlgorithm)))
		} else if len(station.Stops) > 1 {
			logger.Debug("Flips are unknown", zap.String("station", station.ID))
		}
	}
	logger.Debug("Flips have been resolved", zap.Int("stations", flipped), zap.Duration("elapsed", time.Since(st)))
	if parser.verbose {
		fmt.Printf("\tFlips have been resolved in %v (%d stations)\n", time.Since(st), flipped)
	}

	return &Result{
		Stations:        stations,
		Warnings:        diag.Messages(),
		NodesWithNoData: nodesWithNoData(index, stationsByStopID, overrides),
	}
}

// buildStop creates stop out of a stop position node. Returns false if the node must be skipped.
func (parser *Parser) buildStop(node *osm.Node, stopArea *osm.Relation, station *Station, index *FeatureIndex, graph *TrackGraph, routes *routeIndex, diag *Diagnostics) (*Stop, *stopLinkage, bool) {
	overrides := parser.overrides
	exitMap, err := CreateExitMap(node, index, graph, overrides)
	if err != nil {
		diag.Warnf("Skipping stop: %v", err)
		return nil, nil, false
	}

	ownLocalRef := overrides.LocalRef(node.Tags, station.Networks)
	// Find a platform in the same stop area with a matching label
	var platformTags osm.Tags
	if ownLocalRef != "" {
		for _, member := range stopArea.Members {
			if member.Role != "platform" {
				continue
			}
			tags, ok := index.Tags(member.Type, member.Ref)
			if ok && overrides.LocalRef(tags, station.Networks) == ownLocalRef {
				platformTags = tags
				break
			}
		}
	}

	stoppingRoutes := routes.stoppingAt[node.ID]
	tracks := index.WaysContainingNode(node.ID)
	trackIDs := make(map[osm.WayID]struct{}, len(tracks))
	for _, track := range tracks {
		trackIDs[track.ID] = struct{}{}
	}

	links := &stopLinkage{}
	for _, route := range stoppingRoutes {
		// If the stop is a vertex between two tracks, only one of them could be in the route
		var track *osm.Way
		for _, member := range route.Members {
			if member.Type != osm.TypeWay {
				continue
			}
			if _, ok := trackIDs[osm.WayID(member.Ref)]; ok {
				track = index.Ways[osm.WayID(member.Ref)]
				break
			}
		}
		if track == nil {
			diag.Warnf("r%d includes n%d, but not that node's track/s (%s)", route.ID, node.ID, formatWayIDs(tracks))
			continue
		}
		station.addNetworks(overrides.Networks(route.Tags)...)

		stopsOnRoute := []osm.NodeID{}
		for _, member := range route.Members {
			if member.Type == osm.TypeNode && isStopRole(member.Role) {
				stopsOnRoute = append(stopsOnRoute, osm.NodeID(member.Ref))
			}
		}
		var lastID, nextID osm.NodeID
		for i, id := range stopsOnRoute {
			if id != node.ID {
				continue
			}
			if i > 0 {
				lastID = stopsOnRoute[i-1]
			}
			if i+1 < len(stopsOnRoute) {
				nextID = stopsOnRoute[i+1]
			}
			break
		}

		direction, err := TravelDirection(route, track, index, diag)
		if err != nil {
			diag.Warnf("Can't resolve travel direction: %v", err)
			continue
		}
		if direction == DIRECTION_BACKWARD {
			lastID, nextID = nextID, lastID
		}
		if lastNode, ok := index.Nodes[lastID]; ok && len(lastNode.Tags) > 0 {
			links.last = appendUniqueNode(links.last, lastID)
		}
		if nextNode, ok := index.Nodes[nextID]; ok && len(nextNode.Tags) > 0 {
			links.next = appendUniqueNode(links.next, nextID)
		}
	}

	groupedRoutes := GroupRoutesThatStopHere(stoppingRoutes, node, overrides)

	stopDirection := exitMap.Direction
	if stopDirection != DIRECTION_FORWARD && stopDirection != DIRECTION_BACKWARD {
		stopDirection = DIRECTION_BOTH_WAYS
	}
	stopID := node.Tags.Find("ref")
	if stopID == "" {
		stopID = strconv.FormatInt(int64(node.ID), 10)
	}
	description := node.Tags.Find("description")
	if utf8.RuneCountInString(description) >= maxDescriptionLength {
		description = ""
	}
	stop := &Stop{
		NodeID:        node.ID,
		ID:            stopID,
		Platform:      ownLocalRef,
		Description:   description,
		Inaccessible:  node.Tags.Find("wheelchair") == "no" || platformTags.Find("wheelchair") == "no",
		Lat:           node.Lat,
		Lon:           node.Lon,
		ExitSide:      exitMap.ExitSide,
		Direction:     stopDirection,
		BiDiMode:      exitMap.BiDiMode,
		Carriages:     exitMap.Carriages,
		ShortPlatform: exitMap.ShortPlatform,
		LastStop:      []AdjacentStop{},
		NextStop:      []AdjacentStop{},
		Routes:        groupedRoutes,
		LastUpdate: LastUpdate{
			User: node.User,
			Date: node.Timestamp,
		},
	}
	stop.PassThroughRoutes = passThroughRoutes(stoppingRoutes, trackIDs, routes, groupedRoutes, overrides)
	return stop, links, true
}

// passThroughRoutes returns routes which use the stop's tracks without stopping
func passThroughRoutes(stoppingRoutes []*osm.Relation, trackIDs map[osm.WayID]struct{}, routes *routeIndex, grouped []RouteGroup, overrides *Overrides) []PassThroughRoute {
	if len(trackIDs) == 0 {
		return nil
	}
	stopping := make(map[osm.RelationID]struct{}, len(stoppingRoutes))
	for _, route := range stoppingRoutes {
		stopping[route.ID] = struct{}{}
	}
	shieldKeys := make(map[string]struct{})
	destinations := make(map[string]struct{})
	for _, group := range grouped {
		destinations[group.Destination] = struct{}{}
		for _, route := range group.Routes {
			shieldKeys[route.RouteShield.Key()] = struct{}{}
		}
	}

	ids := make([]osm.WayID, 0, len(trackIDs))
	for id := range trackIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	seenRelations := make(map[osm.RelationID]struct{})
	candidates := []*osm.Relation{}
	for _, id := range ids {
		for _, route := range routes.usingTrack[id] {
			if _, ok := stopping[route.ID]; ok {
				continue
			}
			if _, ok := seenRelations[route.ID]; ok {
				continue
			}
			seenRelations[route.ID] = struct{}{}
			candidates = append(candidates, route)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	result := []PassThroughRoute{}
	for _, route := range candidates {
		shield := NewRouteShield(route.Tags, overrides)
		item := PassThroughRoute{RouteShield: shield}
		if _, ok := shieldKeys[shield.Key()]; ok {
			// Same shield as a route which stops here, so it is disambiguated using the destination
			to, from := route.Tags.Find("to"), route.Tags.Find("from")
			switch {
			case to == "" || from == "":
				item.IsDuplicate = &DuplicateOf{}
			case hasKey(destinations, to):
				item.IsDuplicate = &DuplicateOf{From: from}
			default:
				item.IsDuplicate = &DuplicateOf{To: to}
			}
		}
		result = append(result, item)
	}

	collator := collate.New(language.Und)
	sort.SliceStable(result, func(i, j int) bool {
		return collator.CompareString(result[i].Ref, result[j].Ref) < 0
	})

	unique := make([]PassThroughRoute, 0, len(result))
	seen := make(map[string]struct{})
	for _, item := range result {
		key := item.Key()
		if item.IsDuplicate != nil {
			key += "|" + item.IsDuplicate.To + "|" + item.IsDuplicate.From
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}
	if len(unique) == 0 {
		return nil
	}
	return unique
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

func formatWayIDs(ways []*osm.Way) string {
	ids := make([]string, 0, len(ways))
	for _, way := range ways {
		ids = append(ids, "w"+strconv.FormatInt(int64(way.ID), 10))
	}
	return strings.Join(ids, ",")
}

func formatNodeIDs(ids []osm.NodeID) string {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, "n"+strconv.FormatInt(int64(id), 10))
	}
	return strings.Join(values, ",")
}

func platformLabel(stop *Stop) string {
	if stop.Platform != "" {
		return stop.Platform
	}
	return stop.Description
}

// sortPlatforms orders stops naturally: numbers, letters, a mix of both (e.g. 14A) or names.
// Labels are left-padded with zeros up to the longest one.
func sortPlatforms(stops []*Stop) {
	longest := 0
	for _, stop := range stops {
		if n := utf8.RuneCountInString(platformLabel(stop)); n > longest {
			longest = n
		}
	}
	sortKey := func(stop *Stop) string {
		label := platformLabel(stop)
		padding := longest - utf8.RuneCountInString(label)
		return stop.DisambiguationName[""] + strings.Repeat("0", padding) + label
	}
	collator := collate.New(language.Und)
	sort.SliceStable(stops, func(i, j int) bool {
		return collator.CompareString(sortKey(stops[i]), sortKey(stops[j])) < 0
	})
}

// nodesWithNoData finds stop nodes of routes which have no exit data
func nodesWithNoData(index *FeatureIndex, stationsByStopID map[osm.NodeID]*Station, overrides *Overrides) map[osm.NodeID]NodeWithNoData {
	result := make(map[osm.NodeID]NodeWithNoData)
	for _, route := range index.SortedRelations() {
		if route.Tags.Find("route") == "" {
			continue
		}
		networks := overrides.Networks(route.Tags)
		for _, member := range route.Members {
			if member.Type != osm.TypeNode || !isStopRole(member.Role) {
				continue
			}
			id := osm.NodeID(member.Ref)
			if _, ok := stationsByStopID[id]; ok {
				continue
			}
			node, ok := index.Nodes[id]
			if !ok {
				continue
			}
			if _, ok := result[id]; ok {
				continue
			}
			result[id] = NodeWithNoData{
				Name:     getNames(node.Tags),
				Platform: overrides.LocalRef(node.Tags, networks),
			}
		}
	}
	return result
}
