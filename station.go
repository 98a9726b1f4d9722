package osm2exits

import (
	"strconv"
	"time"

	"github.com/paulmach/osm"
)

// FareGates status of a station. Zero value means the station is not tagged.
type FareGates uint16

const (
	FARE_GATES_YES = FareGates(iota + 1)
	FARE_GATES_NO
	FARE_GATES_PARTIAL
	FARE_GATES_UNDEFINED = FareGates(0)
)

func (iotaIdx FareGates) String() string {
	return [...]string{"undefined", "yes", "no", "partial"}[iotaIdx]
}

func (iotaIdx FareGates) MarshalText() ([]byte, error) {
	return []byte(iotaIdx.String()), nil
}

// AdjacentStop is the previous or next stop of a route. It could point to a node without exit data.
type AdjacentStop struct {
	NodeID      osm.NodeID        `json:"nodeId"`
	StationID   string            `json:"gtfsId,omitempty"`
	StationName map[string]string `json:"stationName"`
	Platform    string            `json:"platform,omitempty"`
}

// Key identifies the station of the adjacent stop, not its stop position.
// Stops outside of any station fall back to the default name, then to the node ID.
func (adjacent AdjacentStop) Key() string {
	name := adjacent.StationName[""]
	if adjacent.StationID != "" {
		return adjacent.StationID + "-" + name
	}
	if name != "" || adjacent.NodeID == 0 {
		return name
	}
	return "n" + strconv.FormatInt(int64(adjacent.NodeID), 10)
}

// PassThroughRoute is a route which uses the stop's track without stopping
type PassThroughRoute struct {
	RouteShield
	// Set when a stopping route has the same shield. Only one of To/From is filled (or neither).
	IsDuplicate *DuplicateOf `json:"isDuplicate,omitempty"`
}

// DuplicateOf disambiguates pass-through route from the stopping one
type DuplicateOf struct {
	To   string `json:"to,omitempty"`
	From string `json:"from,omitempty"`
}

// LastUpdate is the last edit of a feature
type LastUpdate struct {
	User string    `json:"user"`
	Date time.Time `json:"date"`
}

// Stop is a stop position node which has exit tagging
type Stop struct {
	NodeID       osm.NodeID `json:"nodeId"`
	ID           string     `json:"gtfsId"`
	Platform     string     `json:"platform,omitempty"`
	Description  string     `json:"description,omitempty"`
	Inaccessible bool       `json:"inaccessible"`
	Lat          float64    `json:"lat"`
	Lon          float64    `json:"lon"`

	ExitSide      ExitSide       `json:"exitSide,omitempty"`
	Direction     Direction      `json:"direction"`
	BiDiMode      BiDiMode       `json:"biDiMode"`
	Carriages     []Carriage     `json:"carriages"`
	ShortPlatform *ShortPlatform `json:"shortPlatform,omitempty"`

	LastStop []AdjacentStop `json:"lastStop"`
	NextStop []AdjacentStop `json:"nextStop"`

	// Nil until flip resolver has decided. Written once.
	Flip *bool `json:"flip,omitempty"`

	Routes             []RouteGroup       `json:"routes"`
	PassThroughRoutes  []PassThroughRoute `json:"passThroughRoutes,omitempty"`
	DisambiguationName map[string]string  `json:"disambiguationName,omitempty"`
	LastUpdate         LastUpdate         `json:"lastUpdate"`
}

// Point returns location of the stop
func (stop *Stop) Point() GeoPoint {
	return GeoPoint{Lat: stop.Lat, Lon: stop.Lon}
}

func (stop *Stop) setFlip(flip bool) {
	if stop.Flip != nil {
		return
	}
	stop.Flip = &flip
}

// Station groups stops of one physical facility
type Station struct {
	RelationID    osm.RelationID    `json:"relationId"`
	ID            string            `json:"gtfsId"`
	Name          map[string]string `json:"name"`
	Networks      []string          `json:"networks"`
	FareGates     FareGates         `json:"fareGates,omitempty"`
	FareGatesNote string            `json:"fareGatesNote,omitempty"`
	FlipAlgorithm FlipAlgorithm     `json:"flipAlgorithm,omitempty"`
	Stops         []*Stop           `json:"stops"`
}

func (station *Station) addNetworks(networks ...string) {
	for _, network := range networks {
		found := false
		for _, existing := range station.Networks {
			if existing == network {
				found = true
				break
			}
		}
		if !found {
			station.Networks = append(station.Networks, network)
		}
	}
}

func (station *Station) hasStop(nodeID osm.NodeID) bool {
	for _, stop := range station.Stops {
		if stop.NodeID == nodeID {
			return true
		}
	}
	return false
}

// NodeWithNoData is a stop of some route which has no exit tagging
type NodeWithNoData struct {
	Name     map[string]string `json:"name"`
	Platform string            `json:"platform,omitempty"`
}
