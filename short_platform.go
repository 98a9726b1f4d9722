package osm2exits

import (
	"fmt"
	"strconv"
	"strings"
)

// Alignment is the part of a train which fits a short platform
type Alignment uint16

const (
	ALIGNMENT_FIRST = Alignment(iota + 1)
	ALIGNMENT_MIDDLE
	ALIGNMENT_LAST
	ALIGNMENT_UNDEFINED = Alignment(0)
)

func (iotaIdx Alignment) String() string {
	return [...]string{"undefined", "first", "middle", "last"}[iotaIdx]
}

func (iotaIdx Alignment) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

// ShortPlatform describes access window parsed from `access:carriages=<alignment>;<count>`
type ShortPlatform struct {
	Alignment Alignment `json:"alignment"`
	Count     int       `json:"count"`
	Label     string    `json:"label"`
}

const (
	availableYes = "yes"
	availableNo  = "no"
)

// CreateShortPlatformMap returns per-carriage "yes"/"no" availability for a train of `cars` carriages.
//
// Tag could be either an access window (`first;2`, `middle;4`, `last;1`) or explicit
// pipe-separated list (`no|yes|yes`). The latter is returned as is.
//
// Note: `middle` alignment can't be centred when number of cars and count have
// different parity, so every carriage is considered available in that case.
func CreateShortPlatformMap(accessTag string, cars int) ([]string, *ShortPlatform) {
	if accessTag == "" {
		return nil, nil
	}
	if strings.Contains(accessTag, carriageDelimiter) {
		return strings.Split(accessTag, carriageDelimiter), nil
	}

	parts := strings.SplitN(accessTag, valueDelimiter, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil
	}

	var alignment Alignment
	switch parts[0] {
	case "first":
		alignment = ALIGNMENT_FIRST
	case "middle":
		alignment = ALIGNMENT_MIDDLE
	case "last":
		alignment = ALIGNMENT_LAST
	}

	available := make([]string, cars)
	for i := 0; i < cars; i++ {
		ok := true
		switch alignment {
		case ALIGNMENT_FIRST:
			ok = i+1 <= count
		case ALIGNMENT_MIDDLE:
			if cars%2 != count%2 {
				ok = true
				break
			}
			emptyOnEitherSide := (cars - count) / 2
			ok = i >= emptyOnEitherSide && i < cars-emptyOnEitherSide
		case ALIGNMENT_LAST:
			ok = cars-i <= count
		}
		if ok {
			available[i] = availableYes
		} else {
			available[i] = availableNo
		}
	}

	if alignment == 0 {
		return available, nil
	}
	plural := "s"
	if count == 1 {
		plural = ""
	}
	label := strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return available, &ShortPlatform{
		Alignment: alignment,
		Count:     count,
		Label:     fmt.Sprintf("%s %d car%s", label, count, plural),
	}
}
