package osm2exits

import (
	"strings"
)

// CarriageRole is the position of a carriage in the train as seen from a stop
type CarriageRole uint16

const (
	CARRIAGE_FIRST = CarriageRole(iota + 1)
	CARRIAGE_MIDDLE
	CARRIAGE_LAST
	// Non-ridable position, e.g. a gap between two units
	CARRIAGE_GAP
	CARRIAGE_UNDEFINED = CarriageRole(0)
)

func (iotaIdx CarriageRole) String() string {
	return [...]string{"undefined", "first", "middle", "last", "gap"}[iotaIdx]
}

func (iotaIdx CarriageRole) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

// ExitType is a value of `exit:carriages`
type ExitType string

const (
	EXIT_STAIRS    = ExitType("stairs")
	EXIT_STEPS     = ExitType("steps")
	EXIT_ESCALATOR = ExitType("escalator")
	EXIT_LIFT      = ExitType("lift")
	EXIT_ELEVATOR  = ExitType("elevator")
	EXIT_RAMP      = ExitType("ramp")
	EXIT_FLAT      = ExitType("flat")
	EXIT_YES       = ExitType("yes")
)

// Carriage is one physical unit of a train
type Carriage struct {
	// 1-based from the front of the train
	Ref         int          `json:"ref"`
	Role        CarriageRole `json:"type"`
	IsBest      bool         `json:"isBest,omitempty"`
	Unavailable bool         `json:"unavailable,omitempty"`
	ExitType    []ExitType   `json:"exitType,omitempty"`
	ExitNumber  []string     `json:"exitNumber,omitempty"`
	ExitSymbols []string     `json:"exitSymbols,omitempty"`
	ExitTo      []string     `json:"exitTo,omitempty"`
}

func (carriage *Carriage) hasExitType(exitType ExitType) bool {
	for _, t := range carriage.ExitType {
		if t == exitType {
			return true
		}
	}
	return false
}

// noToNil replaces a lone keyword like "no" or "none" with nil
func noToNil(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 && isFalsy(strings.ToLower(values[0])) {
		return nil
	}
	return values
}
