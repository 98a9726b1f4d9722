package osm2exits

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

func exitMapFor(t *testing.T, stopTags osm.Tags, trackTags osm.Tags, overrides *Overrides) (ExitMap, error) {
	t.Helper()
	stop := &osm.Node{ID: 2, Lat: 0, Lon: 0.001, Tags: stopTags}
	objects := osm.Objects{
		testNode(1, 0, 0),
		stop,
		testNode(3, 0, 0.002),
		&osm.Way{ID: 10, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}}, Tags: trackTags},
	}
	index := NewFeatureIndex(objects)
	return CreateExitMap(stop, index, NewTrackGraph(index), overrides)
}

func TestCreateExitMap(t *testing.T) {
	exitMap, err := exitMapFor(t,
		osm.Tags{
			{Key: "exit:carriages", Value: "stairs*|escalator|stairs|flat"},
			{Key: "destination:carriages", Value: "A||A|B"},
			{Key: "side", Value: "left"},
		},
		osm.Tags{{Key: "oneway", Value: "-1"}},
		nil,
	)
	if err != nil {
		t.Error(err)
		return
	}
	if len(exitMap.Carriages) != 4 {
		t.Errorf("There must be 4 carriages, but got %d", len(exitMap.Carriages))
		return
	}
	roles := []CarriageRole{CARRIAGE_GAP, CARRIAGE_FIRST, CARRIAGE_MIDDLE, CARRIAGE_MIDDLE}
	exitTo := []string{"A", "A", "A", "B"}
	for i, carriage := range exitMap.Carriages {
		if carriage.Ref != i {
			t.Errorf("Carriage #%d must have ref %d, but got %d", i, i, carriage.Ref)
		}
		if carriage.Role != roles[i] {
			t.Errorf("Carriage #%d must be %s, but got %s", i, roles[i], carriage.Role)
		}
		if len(carriage.ExitTo) != 1 || carriage.ExitTo[0] != exitTo[i] {
			t.Errorf("Carriage #%d must lead to %s, but got %v", i, exitTo[i], carriage.ExitTo)
		}
		if carriage.IsBest != (i == 1) {
			t.Errorf("Only escalator carriage must be the best one, but carriage #%d is %t", i, carriage.IsBest)
		}
	}
	if exitMap.BiDiMode != BIDI_NONE {
		t.Errorf("BiDi mode must be %s, but got %s", BIDI_NONE, exitMap.BiDiMode)
	}
	if exitMap.Direction != DIRECTION_BACKWARD {
		t.Errorf("Direction must be %s, but got %s", DIRECTION_BACKWARD, exitMap.Direction)
	}
	// Side is surveyed as if facing forward
	if exitMap.ExitSide != EXIT_SIDE_RIGHT {
		t.Errorf("Exit side must be %s, but got %s", EXIT_SIDE_RIGHT, exitMap.ExitSide)
	}
	if exitMap.Track == nil || exitMap.Track.ID != 10 {
		t.Errorf("Track must be w10")
	}
}

func TestCreateExitMapBackwardSuffix(t *testing.T) {
	exitMap, err := exitMapFor(t,
		osm.Tags{
			{Key: "exit:carriages:backward", Value: "flat|stairs"},
			{Key: "side", Value: "left"},
		},
		nil,
		nil,
	)
	if err != nil {
		t.Error(err)
		return
	}
	if exitMap.Suffix != SUFFIX_BACKWARD {
		t.Errorf("Suffix must be %s, but got %s", SUFFIX_BACKWARD, exitMap.Suffix)
	}
	if exitMap.BiDiMode != BIDI_REGULAR {
		t.Errorf("Unused track must be %s, but got %s", BIDI_REGULAR, exitMap.BiDiMode)
	}
	if len(exitMap.Carriages) != 2 {
		t.Errorf("There must be 2 carriages, but got %d", len(exitMap.Carriages))
		return
	}
	// Reversed into train-forward order
	first, second := exitMap.Carriages[0], exitMap.Carriages[1]
	if first.Ref != 2 || first.Role != CARRIAGE_LAST || first.ExitType[0] != EXIT_STAIRS {
		t.Errorf("First carriage must be #2 (last, stairs), but got %+v", first)
	}
	if second.Ref != 1 || second.Role != CARRIAGE_FIRST || !second.IsBest {
		t.Errorf("Second carriage must be #1 (first, best), but got %+v", second)
	}
	// Direction-specific data keeps the side
	if exitMap.ExitSide != EXIT_SIDE_LEFT {
		t.Errorf("Exit side must be %s, but got %s", EXIT_SIDE_LEFT, exitMap.ExitSide)
	}
}

func TestCreateExitMapAmbiguousSide(t *testing.T) {
	exitMap, err := exitMapFor(t,
		osm.Tags{
			{Key: "exit:carriages", Value: "flat|stairs"},
			{Key: "side", Value: "left"},
		},
		osm.Tags{{Key: "railway:bidirectional", Value: "regular"}},
		nil,
	)
	if err != nil {
		t.Error(err)
		return
	}
	if exitMap.ExitSide != EXIT_SIDE_UNSPECIFIED {
		t.Errorf("Exit side must be cleared, but got %s", exitMap.ExitSide)
	}
}

func TestCreateExitMapAccess(t *testing.T) {
	overrides := DefaultOverrides()
	overrides.BestCarriages[2] = []int{2}
	exitMap, err := exitMapFor(t,
		osm.Tags{
			{Key: "exit:carriages", Value: "escalator|stairs|stairs"},
			{Key: "access:carriages", Value: "first;2"},
		},
		osm.Tags{{Key: "oneway", Value: "yes"}},
		overrides,
	)
	if err != nil {
		t.Error(err)
		return
	}
	if exitMap.ShortPlatform == nil || exitMap.ShortPlatform.Alignment != ALIGNMENT_FIRST || exitMap.ShortPlatform.Count != 2 {
		t.Errorf("Short platform must be 'first 2', but got %+v", exitMap.ShortPlatform)
	}
	unavailable := []bool{false, false, true}
	for i, carriage := range exitMap.Carriages {
		if carriage.Unavailable != unavailable[i] {
			t.Errorf("Carriage #%d availability must be %t, but got %t", i, !unavailable[i], !carriage.Unavailable)
		}
		// Override wins over the best exit type
		if carriage.IsBest != (carriage.Ref == 2) {
			t.Errorf("Only carriage #2 must be the best one, but carriage #%d is %t", carriage.Ref, carriage.IsBest)
		}
	}
}

func TestCreateExitMapErrors(t *testing.T) {
	_, err := exitMapFor(t,
		osm.Tags{
			{Key: "exit:carriages", Value: "flat|stairs|flat"},
			{Key: "destination:carriages", Value: "A|B"},
		},
		nil,
		nil,
	)
	if errors.Cause(err) != ErrMismatchedCarriages {
		t.Errorf("Error must be %v, but got %v", ErrMismatchedCarriages, err)
	}

	lonely := &osm.Node{ID: 42, Tags: osm.Tags{{Key: "exit:carriages", Value: "flat|stairs"}}}
	index := NewFeatureIndex(osm.Objects{lonely})
	_, err = CreateExitMap(lonely, index, NewTrackGraph(index), nil)
	if errors.Cause(err) != ErrNotOnTrack {
		t.Errorf("Error must be %v, but got %v", ErrNotOnTrack, err)
	}

	exitMap, err := exitMapFor(t, osm.Tags{{Key: "name", Value: "No exits"}}, nil, nil)
	if err != nil {
		t.Error(err)
	}
	if len(exitMap.Carriages) != 0 {
		t.Errorf("Stop without exit tags must have no carriages")
	}
}
