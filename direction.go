package osm2exits

import (
	"github.com/paulmach/osm"
)

// Direction is the way trains travel along a track relative to the order of its nodes
type Direction uint16

const (
	DIRECTION_FORWARD = Direction(iota + 1)
	DIRECTION_BACKWARD
	DIRECTION_BOTH_WAYS
	DIRECTION_UNKNOWN
	DIRECTION_UNDEFINED = Direction(0)
)

func (iotaIdx Direction) String() string {
	return [...]string{"undefined", "forward", "backward", "both_ways", "unknown"}[iotaIdx]
}

func (iotaIdx Direction) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

// Opposite swaps forward and backward. Other values are returned as is.
func (iotaIdx Direction) Opposite() Direction {
	switch iotaIdx {
	case DIRECTION_FORWARD:
		return DIRECTION_BACKWARD
	case DIRECTION_BACKWARD:
		return DIRECTION_FORWARD
	default:
		return iotaIdx
	}
}

// TrackDirection classifies a track by its tags. Tracks are assumed bidirectional
// (DIRECTION_UNKNOWN) unless they are explicitly tagged.
func TrackDirection(tags osm.Tags) Direction {
	for _, rule := range onewayRules {
		value := tags.Find(rule.key)
		if value == "" {
			continue
		}
		if direction, ok := rule.values[value]; ok {
			return direction
		}
	}
	return DIRECTION_UNKNOWN
}

// DirectionSuffix selects which variant of per-carriage tags has been used
type DirectionSuffix string

const (
	SUFFIX_NONE     = DirectionSuffix("")
	SUFFIX_FORWARD  = DirectionSuffix(":forward")
	SUFFIX_BACKWARD = DirectionSuffix(":backward")
)

// ExitSide is the side of the train where the doors open
type ExitSide uint16

const (
	EXIT_SIDE_UNSPECIFIED = ExitSide(iota + 1)
	EXIT_SIDE_LEFT
	EXIT_SIDE_RIGHT
	EXIT_SIDE_BOTH
	EXIT_SIDE_UNDEFINED = ExitSide(0)
)

func (iotaIdx ExitSide) String() string {
	return [...]string{"undefined", "", "left", "right", "both"}[iotaIdx]
}

func (iotaIdx ExitSide) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

// Mirror swaps left and right
func (iotaIdx ExitSide) Mirror() ExitSide {
	switch iotaIdx {
	case EXIT_SIDE_LEFT:
		return EXIT_SIDE_RIGHT
	case EXIT_SIDE_RIGHT:
		return EXIT_SIDE_LEFT
	default:
		return iotaIdx
	}
}

func parseExitSide(value string) ExitSide {
	switch value {
	case "left":
		return EXIT_SIDE_LEFT
	case "right":
		return EXIT_SIDE_RIGHT
	case "both":
		return EXIT_SIDE_BOTH
	default:
		return EXIT_SIDE_UNSPECIFIED
	}
}
