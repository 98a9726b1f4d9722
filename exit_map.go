package osm2exits

import (
	"strings"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// ExitMap is the per-stop result of parsing `*:carriages` tags
type ExitMap struct {
	Carriages     []Carriage
	ExitSide      ExitSide
	BiDiMode      BiDiMode
	Direction     Direction
	Suffix        DirectionSuffix
	ShortPlatform *ShortPlatform
	Track         *osm.Way
}

func selectSuffix(tags osm.Tags) DirectionSuffix {
	if tags.Find(tagExitCarriages+string(SUFFIX_FORWARD)) != "" {
		return SUFFIX_FORWARD
	}
	if tags.Find(tagExitCarriages+string(SUFFIX_BACKWARD)) != "" {
		return SUFFIX_BACKWARD
	}
	return SUFFIX_NONE
}

// CreateExitMap builds ordered list of carriages for a stop position node.
//
// Errors (stop must be skipped):
//   - ErrMismatchedCarriages when per-carriage tags have different number of values
//   - ErrNotOnTrack when stop position is not a part of any indexed way
func CreateExitMap(node *osm.Node, index *FeatureIndex, graph *TrackGraph, overrides *Overrides) (ExitMap, error) {
	tags := node.Tags
	suffix := selectSuffix(tags)
	result := ExitMap{
		Carriages: []Carriage{},
		ExitSide:  EXIT_SIDE_UNSPECIFIED,
		BiDiMode:  BIDI_NONE,
		Direction: DIRECTION_UNKNOWN,
		Suffix:    suffix,
	}

	exitTypeRaw := tags.Find(tagExitCarriages + string(suffix))
	if exitTypeRaw != "" {
		// Only the first line is considered
		exitTypeRaw = strings.SplitN(exitTypeRaw, "\n", 2)[0]
	}
	exitType := splitNonEmpty(exitTypeRaw, carriageDelimiter)
	exitTo := splitNonEmpty(tags.Find(tagDestinationCarriages+string(suffix)), carriageDelimiter)
	exitNumber := splitNonEmpty(tags.Find(tagDestinationRefCarriages+string(suffix)), carriageDelimiter)
	exitSymbols := splitNonEmpty(strings.ToLower(tags.Find(tagDestinationSymbolCarriages+string(suffix))), carriageDelimiter)
	if len(exitType) == 0 {
		return result, nil
	}

	accessTag := tags.Find(tagAccessCarriages + string(suffix))
	if accessTag == "" {
		accessTag = tags.Find(tagAccessCarriages)
	}
	available, shortPlatform := CreateShortPlatformMap(accessTag, len(exitType))

	for _, values := range [][]string{exitTo, exitNumber, exitSymbols, available} {
		if len(values) != 0 && len(values) != len(exitType) {
			return result, errors.Wrapf(ErrMismatchedCarriages, "at %s %s (n%d): %d vs %d", tags.Find("name"), tags.Find("local_ref"), node.ID, len(exitType), len(values))
		}
	}
	// At this point we know all non-empty arrays have the same length

	// There could be several tracks if the track is split at the stop position. Any of them fits, since
	// bidirectional operation starts/ends at a signal node, not at a stop position node.
	tracks := index.WaysContainingNode(node.ID)
	if len(tracks) == 0 {
		return result, errors.Wrapf(ErrNotOnTrack, "n%d", node.ID)
	}
	track := tracks[0]
	result.Track = track
	result.BiDiMode = graph.BiDiMode(track)
	result.Direction = TrackDirection(track.Tags)

	allExitTypes := make(map[ExitType]struct{})
	for _, value := range exitType {
		for _, t := range strings.Split(strings.TrimSuffix(value, gapMarker), valueDelimiter) {
			allExitTypes[ExitType(t)] = struct{}{}
		}
	}
	var bestExitType ExitType
	for _, t := range exitHierarchy {
		if _, ok := allExitTypes[t]; ok {
			bestExitType = t
			break
		}
	}

	// Do not fill exitType itself, that would be wrong
	rows := make([][]string, 0, 3)
	for _, row := range [][]string{exitNumber, exitTo, exitSymbols} {
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	FillBlanksForColSpan(rows)

	firstIdx := 0
	for i, value := range exitType {
		if !strings.HasSuffix(value, gapMarker) {
			firstIdx = i
			break
		}
	}
	bestOverride, hasBestOverride := overrides.BestCarriagesFor(node.ID)

	carriages := make([]Carriage, 0, len(exitType))
	for i, value := range exitType {
		isGap := strings.HasSuffix(value, gapMarker)
		carriage := Carriage{
			Ref:  i + 1 - firstIdx,
			Role: CARRIAGE_MIDDLE,
		}
		switch {
		case isGap:
			carriage.Role = CARRIAGE_GAP
		case i == firstIdx:
			carriage.Role = CARRIAGE_FIRST
		case i == len(exitType)-1 && result.BiDiMode == BIDI_REGULAR:
			// Both ends of the train are legitimate fronts
			carriage.Role = CARRIAGE_LAST
		}

		types := noToNil(strings.Split(strings.TrimSuffix(value, gapMarker), valueDelimiter))
		for _, t := range types {
			carriage.ExitType = append(carriage.ExitType, ExitType(t))
		}
		if i < len(exitTo) {
			carriage.ExitTo = noToNil(strings.Split(exitTo[i], valueDelimiter))
		}
		if i < len(exitNumber) {
			carriage.ExitNumber = noToNil(strings.Split(exitNumber[i], valueDelimiter))
		}
		if i < len(exitSymbols) {
			carriage.ExitSymbols = noToNil(strings.Split(exitSymbols[i], valueDelimiter))
		}
		if i < len(available) && isFalsy(strings.ToLower(available[i])) {
			carriage.Unavailable = true
		}

		if hasBestOverride {
			for _, ref := range bestOverride {
				if ref == carriage.Ref {
					carriage.IsBest = true
					break
				}
			}
		} else if bestExitType != "" && carriage.hasExitType(bestExitType) {
			carriage.IsBest = true
		}
		carriages = append(carriages, carriage)
	}

	exitSide := parseExitSide(tags.Find("side"))
	// Track is used in both directions, so there's no meaningful way of telling
	// the user to "exit on the left" unless the data is direction-specific
	if result.BiDiMode == BIDI_REGULAR && suffix == SUFFIX_NONE {
		exitSide = EXIT_SIDE_UNSPECIFIED
	}
	// Sides are always surveyed as if facing forward
	if result.Direction == DIRECTION_BACKWARD {
		exitSide = exitSide.Mirror()
	}

	// Keep every carriage list in train-forward order
	if suffix == SUFFIX_BACKWARD {
		for i, j := 0, len(carriages)-1; i < j; i, j = i+1, j-1 {
			carriages[i], carriages[j] = carriages[j], carriages[i]
		}
	}

	result.Carriages = carriages
	result.ExitSide = exitSide
	result.ShortPlatform = shortPlatform
	return result, nil
}
