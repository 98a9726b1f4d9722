package osm2exits

import (
	"strings"

	"github.com/paulmach/osm"
)

const (
	tagExitCarriages              = "exit:carriages"
	tagDestinationCarriages       = "destination:carriages"
	tagDestinationRefCarriages    = "destination:ref:carriages"
	tagDestinationSymbolCarriages = "destination:symbol:carriages"
	tagAccessCarriages            = "access:carriages"

	carriageDelimiter = "|"
	valueDelimiter    = ";"
	gapMarker         = "*"
)

// onewayRule is a single row of the precedence table used to classify tracks.
type onewayRule struct {
	key    string
	values map[string]Direction
}

var (
	// Order matters: the first rule with a recognised value wins.
	// See ref.: https://wiki.openstreetmap.org/wiki/Key:railway:preferred_direction
	onewayRules = []onewayRule{
		{
			key: "oneway",
			values: map[string]Direction{
				"yes":         DIRECTION_FORWARD,
				"-1":          DIRECTION_BACKWARD,
				"alternating": DIRECTION_BOTH_WAYS,
				"reversible":  DIRECTION_BOTH_WAYS,
			},
		},
		{
			key: "railway:preferred_direction",
			values: map[string]Direction{
				"forward":  DIRECTION_FORWARD,
				"backward": DIRECTION_BACKWARD,
				"both":     DIRECTION_BOTH_WAYS,
			},
		},
		{
			key: "railway:bidirectional",
			values: map[string]Direction{
				"regular":  DIRECTION_BOTH_WAYS,
				"signals":  DIRECTION_BOTH_WAYS,
				"possible": DIRECTION_BOTH_WAYS,
				"yes":      DIRECTION_BOTH_WAYS,
			},
		},
	}

	// Values which mean "nothing here" in per-carriage tags
	falsyValues = map[string]struct{}{
		"":          {},
		"no":        {},
		"none":      {},
		"emergency": {},
	}

	// Best exit first
	exitHierarchy = []ExitType{
		EXIT_ESCALATOR,
		EXIT_FLAT,
		EXIT_RAMP,
		EXIT_STEPS,
		EXIT_STAIRS,
	}

	fareGatesValues = map[string]FareGates{
		"yes":     FARE_GATES_YES,
		"no":      FARE_GATES_NO,
		"partial": FARE_GATES_PARTIAL,
	}
)

func isFalsy(value string) bool {
	_, ok := falsyValues[value]
	return ok
}

func hasTagPrefix(tags osm.Tags, prefix string) bool {
	for _, tag := range tags {
		if strings.HasPrefix(tag.Key, prefix) {
			return true
		}
	}
	return false
}

// getRef returns `ref` falling back to `uic_ref`
func getRef(tags osm.Tags) string {
	if ref := tags.Find("ref"); ref != "" {
		return ref
	}
	return tags.Find("uic_ref")
}

// getNames extracts `name` and every `name:*` translation. The default name is stored under the empty key.
func getNames(tags osm.Tags) map[string]string {
	names := make(map[string]string)
	for _, tag := range tags {
		if strings.HasPrefix(tag.Key, "name:") {
			names[strings.TrimPrefix(tag.Key, "name:")] = tag.Value
		}
	}
	if name := tags.Find("name"); name != "" {
		names[""] = name
	}
	return names
}

func isStation(tags osm.Tags) bool {
	return tags.Find("public_transport") == "station"
}

func isStopRole(role string) bool {
	return strings.HasPrefix(role, "stop")
}

func splitNonEmpty(value, sep string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, sep)
}
