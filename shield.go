package osm2exits

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/osm"
)

// Shape of a route's shield
type Shape string

const (
	SHAPE_CIRCLE      = Shape("circle")
	SHAPE_RECTANGULAR = Shape("rectangular")
	SHAPE_DIAMOND     = Shape("diamond")
)

const defaultShieldColour = "#333333"

// shieldNamespace is used to derive stable shield keys
var shieldNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://wiki.openstreetmap.org/wiki/Key:exit:carriages"))

// ShieldColour is the background of a shield and the text colour which is readable on it
type ShieldColour struct {
	Bg string `json:"bg"`
	Fg string `json:"fg"`
}

// RouteShield is the visual badge identifying a route to riders
type RouteShield struct {
	Ref    string       `json:"ref"`
	Colour ShieldColour `json:"colour"`
	Shape  Shape        `json:"shape"`
}

// NewRouteShield creates shield from route relation's tags
func NewRouteShield(tags osm.Tags, overrides *Overrides) RouteShield {
	colour := tags.Find("colour")
	if colour == "" {
		colour = defaultShieldColour
	}
	return RouteShield{
		Ref: tags.Find("ref"),
		Colour: ShieldColour{
			Bg: colour,
			Fg: contrastingTextColour(strings.TrimPrefix(colour, "#")),
		},
		Shape: overrides.Shape(tags.Find("wikidata")),
	}
}

// Key returns identity of the shield
func (shield RouteShield) Key() string {
	return string(shield.Shape) + shield.Colour.Bg + shield.Colour.Fg + shield.Ref
}

// HashedKey returns short stable identifier for the shield
func (shield RouteShield) HashedKey() string {
	return uuid.NewSHA1(shieldNamespace, []byte(shield.Key())).String()[:8]
}

// contrastingTextColour expects 6-digit hex code (no hash symbol). Unparsable colours (e.g. named ones) get white text.
func contrastingTextColour(bg string) string {
	if len(bg) < 6 {
		return "#fff"
	}
	r, errR := strconv.ParseUint(bg[0:2], 16, 8)
	g, errG := strconv.ParseUint(bg[2:4], 16, 8)
	b, errB := strconv.ParseUint(bg[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return "#fff"
	}
	if float64(r)*0.299+float64(g)*0.587+float64(b)*0.114 > 186 {
		return "#000"
	}
	return "#fff"
}
