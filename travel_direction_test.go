package osm2exits

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

func TestTravelDirection(t *testing.T) {
	w10 := testWay(10, []int64{1, 2, 3})
	w20 := testWay(20, []int64{3, 4, 5})
	w10r := testWay(10, []int64{3, 2, 1})
	w20r := testWay(20, []int64{5, 4, 3})

	forwardsRoute := testRelation(100, nil, wayMember(10), wayMember(20))
	backwardsRoute := testRelation(200, nil, wayMember(20), wayMember(10))

	cases := []struct {
		track     *osm.Way
		allTracks []*osm.Way
		route     *osm.Relation
		expected  Direction
	}{
		// 123-345
		{w10, []*osm.Way{w10, w20}, forwardsRoute, DIRECTION_FORWARD},
		{w20, []*osm.Way{w10, w20}, forwardsRoute, DIRECTION_FORWARD},
		{w10, []*osm.Way{w10, w20}, backwardsRoute, DIRECTION_BACKWARD},
		{w20, []*osm.Way{w10, w20}, backwardsRoute, DIRECTION_BACKWARD},
		// 123-543
		{w10, []*osm.Way{w10, w20r}, forwardsRoute, DIRECTION_FORWARD},
		{w20r, []*osm.Way{w10, w20r}, forwardsRoute, DIRECTION_BACKWARD},
		{w10, []*osm.Way{w10, w20r}, backwardsRoute, DIRECTION_BACKWARD},
		{w20r, []*osm.Way{w10, w20r}, backwardsRoute, DIRECTION_FORWARD},
		// 321-345
		{w10r, []*osm.Way{w10r, w20}, forwardsRoute, DIRECTION_BACKWARD},
		{w20, []*osm.Way{w10r, w20}, forwardsRoute, DIRECTION_FORWARD},
		{w10r, []*osm.Way{w10r, w20}, backwardsRoute, DIRECTION_FORWARD},
		{w20, []*osm.Way{w10r, w20}, backwardsRoute, DIRECTION_BACKWARD},
		// 321-543
		{w10r, []*osm.Way{w10r, w20r}, forwardsRoute, DIRECTION_BACKWARD},
		{w20r, []*osm.Way{w10r, w20r}, forwardsRoute, DIRECTION_BACKWARD},
		{w10r, []*osm.Way{w10r, w20r}, backwardsRoute, DIRECTION_FORWARD},
		{w20r, []*osm.Way{w10r, w20r}, backwardsRoute, DIRECTION_FORWARD},
	}
	for i, c := range cases {
		objects := osm.Objects{c.route}
		for _, track := range c.allTracks {
			objects = append(objects, track)
		}
		index := NewFeatureIndex(objects)
		diag := newDiagnostics(nil)
		direction, err := TravelDirection(c.route, c.track, index, diag)
		if err != nil {
			t.Error(err)
			continue
		}
		if direction != c.expected {
			t.Errorf("Case #%d: w%d in r%d must be %s, but got %s", i, c.track.ID, c.route.ID, c.expected, direction)
		}
		if len(diag.Messages()) != 0 {
			t.Errorf("Case #%d: there must be no warnings, but got %v", i, diag.Messages())
		}
	}
}

func TestTravelDirectionUnsorted(t *testing.T) {
	w10 := testWay(10, []int64{1, 2, 3})
	route := testRelation(100, nil, wayMember(30), wayMember(10), wayMember(20))
	index := NewFeatureIndex(osm.Objects{w10, route})
	diag := newDiagnostics(nil)

	direction, err := TravelDirection(route, w10, index, diag)
	if err != nil {
		t.Error(err)
		return
	}
	if direction != DIRECTION_BOTH_WAYS {
		t.Errorf("Direction must be %s when neighbours are unknown, but got %s", DIRECTION_BOTH_WAYS, direction)
	}
	if len(diag.Messages()) != 1 {
		t.Errorf("There must be exactly one warning, but got %v", diag.Messages())
	}

	other := testRelation(200, nil, wayMember(20))
	_, err = TravelDirection(other, w10, index, diag)
	if errors.Cause(err) != ErrTrackNotInRoute {
		t.Errorf("Error must be %v, but got %v", ErrTrackNotInRoute, err)
	}
}
