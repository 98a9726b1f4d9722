package osm2exits

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/paulmach/osm"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// Joins a destination with its ref, e.g. "Central" + "CEN"
	destinationDelimiter = " · "
	// Joins destinations of a group for display
	destinationJoiner      = " & "
	unknownDestination     = "Unknown"
	shortDestinationLength = 20
)

// Disposition tells if a route departs towards its destination or arrives from its origin
type Disposition uint16

const (
	DISPOSITION_TO = Disposition(iota + 1)
	DISPOSITION_FROM
	DISPOSITION_BOTH
	DISPOSITION_UNDEFINED = Disposition(0)
)

func (iotaIdx Disposition) String() string {
	return [...]string{"undefined", "to", "from", "both"}[iotaIdx]
}

func (iotaIdx Disposition) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

// RouteThatStopsHere is a route serving the stop
type RouteThatStopsHere struct {
	RouteShield
	To          []string       `json:"to"`
	Disposition Disposition    `json:"type"`
	Networks    []string       `json:"qId"`
	ShieldKey   string         `json:"shieldKey"`
	RelationID  osm.RelationID `json:"osmId"`
}

// sameEntry compares everything except disposition and relation ID
func (route *RouteThatStopsHere) sameEntry(other *RouteThatStopsHere) bool {
	return route.RouteShield == other.RouteShield &&
		route.ShieldKey == other.ShieldKey &&
		equalStrings(route.To, other.To) &&
		equalStrings(route.Networks, other.Networks)
}

// RouteGroup is a display row: one destination text and every route going there
type RouteGroup struct {
	Destination string               `json:"destination"`
	Routes      []RouteThatStopsHere `json:"routes"`
}

func joinNonEmpty(values ...string) string {
	nonEmpty := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			nonEmpty = append(nonEmpty, value)
		}
	}
	return strings.Join(nonEmpty, destinationDelimiter)
}

// GroupRoutesThatStopHere groups routes serving the stop by destination, and then by route reference.
// Rows with `to` disposition come first, ordered by route reference.
func GroupRoutesThatStopHere(relations []*osm.Relation, node *osm.Node, overrides *Overrides) []RouteGroup {
	// Deduplicate by shield + disposition + destination. Later entries replace earlier ones.
	unique := make([]*RouteThatStopsHere, 0, len(relations))
	uniqueIdx := make(map[string]int)
	for _, relation := range relations {
		memberIdx := -1
		for i, member := range relation.Members {
			if member.Type == osm.TypeNode && osm.NodeID(member.Ref) == node.ID {
				memberIdx = i
				break
			}
		}
		if memberIdx == -1 {
			continue
		}
		// The last stop should have `stop_exit_only`, but if not we can figure out if it's the last
		hasNextStop := false
		for _, member := range relation.Members[memberIdx+1:] {
			if isStopRole(member.Role) {
				hasNextStop = true
				break
			}
		}
		isTerminating := relation.Members[memberIdx].Role == "stop_exit_only" || !hasNextStop

		tags := relation.Tags
		shield := NewRouteShield(tags, overrides)
		destination := joinNonEmpty(tags.Find("to"), tags.Find("to:ref"))
		disposition := DISPOSITION_TO
		if isTerminating {
			destination = joinNonEmpty(tags.Find("from"), tags.Find("from:ref"))
			disposition = DISPOSITION_FROM
		}
		if destination == "" {
			destination = unknownDestination
		}
		item := &RouteThatStopsHere{
			RouteShield: shield,
			To:          []string{destination},
			Disposition: disposition,
			Networks:    overrides.Networks(tags),
			ShieldKey:   shield.HashedKey(),
			RelationID:  relation.ID,
		}
		key := shield.Key() + disposition.String() + strings.Join(item.To, carriageDelimiter)
		if idx, ok := uniqueIdx[key]; ok {
			unique[idx] = item
			continue
		}
		uniqueIdx[key] = len(unique)
		unique = append(unique, item)
	}

	// If the route starts and ends here, merge the two entries
	removed := make([]bool, len(unique))
	for i, a := range unique {
		if removed[i] || a.Disposition != DISPOSITION_TO {
			continue
		}
		for j, b := range unique {
			if i == j || removed[j] {
				continue
			}
			if a.sameEntry(b) {
				removed[j] = true
				a.Disposition = DISPOSITION_BOTH
				break
			}
		}
	}

	// First pass: group by destination, e.g. (7) <7> to Flushing–Main St
	groupKeys := []string{}
	grouped := make(map[string][]*RouteThatStopsHere)
	for i, route := range unique {
		if removed[i] {
			continue
		}
		key := route.Disposition.String() + strings.Join(route.To, carriageDelimiter)
		if _, ok := grouped[key]; !ok {
			groupKeys = append(groupKeys, key)
		}
		grouped[key] = append(grouped[key], route)
	}

	// Second pass: group by route, e.g. T1 to Richmond and Emu Plains.
	// Only short destinations are grouped.
	singles := make(map[string]string)
	keys := make([]string, 0, len(groupKeys))
	for _, key := range groupKeys {
		group := grouped[key]
		if len(group) == 1 && utf8.RuneCountInString(group[0].To[0]) < shortDestinationLength {
			route := group[0]
			if existingKey, ok := singles[route.Ref]; ok {
				existing := grouped[existingKey][0]
				existing.To = append(existing.To, route.To[0])
				delete(grouped, key)
				continue
			}
			singles[route.Ref] = key
		}
		keys = append(keys, key)
	}

	collator := collate.New(language.Und)
	result := make([]RouteGroup, 0, len(keys))
	for _, key := range keys {
		group := grouped[key]
		// Order of columns when there are multiple refs on one row
		sort.SliceStable(group, func(i, j int) bool {
			return collator.CompareString(group[i].Ref, group[j].Ref) < 0
		})
		destinations := []string{}
		seen := make(map[string]struct{})
		routes := make([]RouteThatStopsHere, 0, len(group))
		for _, route := range group {
			routes = append(routes, *route)
			for _, to := range route.To {
				if _, ok := seen[to]; ok {
					continue
				}
				seen[to] = struct{}{}
				destinations = append(destinations, to)
			}
		}
		sort.SliceStable(destinations, func(i, j int) bool {
			return collator.CompareString(destinations[i], destinations[j]) < 0
		})
		result = append(result, RouteGroup{
			Destination: strings.Join(destinations, destinationJoiner),
			Routes:      routes,
		})
	}

	// Order of rows: departing routes first (by ref), then everything else
	sort.SliceStable(result, func(i, j int) bool {
		iTo := result[i].Routes[0].Disposition == DISPOSITION_TO
		jTo := result[j].Routes[0].Disposition == DISPOSITION_TO
		if iTo != jTo {
			return iTo
		}
		if !iTo {
			return false
		}
		return collator.CompareString(result[i].Routes[0].Ref, result[j].Routes[0].Ref) < 0
	})
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
