package osm2exits

import (
	"testing"

	"github.com/paulmach/osm"
)

func TestContrastingTextColour(t *testing.T) {
	cases := []struct {
		bg string
		fg string
	}{
		{"FFFFFF", "#000"},
		{"000000", "#fff"},
		{"F99D1C", "#fff"},
		{"FFD700", "#000"},
		{"333333", "#fff"},
		{"red", "#fff"},
		{"ZZZZZZ", "#fff"},
		{"", "#fff"},
	}
	for _, c := range cases {
		fg := contrastingTextColour(c.bg)
		if fg != c.fg {
			t.Errorf("Text on '%s' must be %s, but got %s", c.bg, c.fg, fg)
		}
	}
}

func TestRouteShield(t *testing.T) {
	overrides := DefaultOverrides()
	overrides.RouteShapes["Q100"] = SHAPE_DIAMOND

	shield := NewRouteShield(osm.Tags{{Key: "ref", Value: "T1"}}, overrides)
	if shield.Colour.Bg != defaultShieldColour || shield.Colour.Fg != "#fff" || shield.Shape != SHAPE_RECTANGULAR {
		t.Errorf("Wrong default shield: %+v", shield)
	}

	shield = NewRouteShield(osm.Tags{{Key: "ref", Value: "7"}, {Key: "colour", Value: "#FFD700"}, {Key: "wikidata", Value: "Q100"}}, overrides)
	if shield.Shape != SHAPE_DIAMOND || shield.Colour.Fg != "#000" {
		t.Errorf("Wrong shield: %+v", shield)
	}
	if key := shield.Key(); key != "diamond#FFD700#0007" {
		t.Errorf("Wrong key: %s", key)
	}

	hashed := shield.HashedKey()
	if len(hashed) != 8 {
		t.Errorf("Hashed key must have 8 characters, but got '%s'", hashed)
	}
	if again := shield.HashedKey(); again != hashed {
		t.Errorf("Hashed key must be stable: %s vs %s", hashed, again)
	}
	other := shield
	other.Ref = "8"
	if other.HashedKey() == hashed {
		t.Errorf("Different shields must have different keys")
	}
}
