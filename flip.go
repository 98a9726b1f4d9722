package osm2exits

// FlipAlgorithm is the name of the strategy which decided flips of a station
type FlipAlgorithm string

const (
	FLIP_BY_TRACK_DIRECTION = FlipAlgorithm("track_direction")
	FLIP_BY_DESTINATION     = FlipAlgorithm("destination")
	FLIP_BY_STOP_LOCATION   = FlipAlgorithm("stop_location")
)

// flipStrategy returns one value per stop, or nil when it can't decide for the whole station.
// Strategies must not mutate the stops.
type flipStrategy func(stops []*Stop, index *FeatureIndex) []bool

type namedFlipStrategy struct {
	name     FlipAlgorithm
	strategy flipStrategy
}

// Order matters: the first strategy with an answer wins
var flipStrategies = []namedFlipStrategy{
	{FLIP_BY_TRACK_DIRECTION, flipByTrackDirection},
	{FLIP_BY_DESTINATION, flipByDestination},
	{FLIP_BY_STOP_LOCATION, flipByStopLocation},
}

// ResolveFlips decides which platforms of the station must be displayed mirrored.
// Stations with a single stop are left untouched. Returns false when every strategy gave up.
func ResolveFlips(station *Station, index *FeatureIndex) bool {
	if len(station.Stops) < 2 {
		return false
	}
	for _, candidate := range flipStrategies {
		flips := candidate.strategy(station.Stops, index)
		if flips == nil || len(flips) != len(station.Stops) {
			continue
		}
		for i, stop := range station.Stops {
			stop.setFlip(flips[i])
		}
		station.FlipAlgorithm = candidate.name
		return true
	}
	return false
}
