package osm2exits

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Overrides holds station-specific exceptions for cases where the data model is not flexible enough.
// It is a versioned configuration artifact consumed at the boundary of the engine.
type Overrides struct {
	Version int `yaml:"version" validate:"gte=1"`
	// Stop position node ID -> carriage ordinals which must be marked as the best ones
	BestCarriages map[int64][]int `yaml:"best_carriages" validate:"dive,min=1,dive,gte=1"`
	// Network knowledge-base ID -> ID which should be used instead
	NetworkAliases map[string]string `yaml:"network_aliases" validate:"dive,keys,required,endkeys,required"`
	// Networks which use `ref` instead of `local_ref` for platform labels
	RefAsLocalRefNetworks []string `yaml:"ref_as_local_ref_networks" validate:"dive,required"`
	// Route knowledge-base ID -> shape of its shield
	RouteShapes map[string]Shape `yaml:"route_shapes" validate:"dive,oneof=circle rectangular diamond"`
}

// DefaultOverrides returns built-in exceptions
func DefaultOverrides() *Overrides {
	return &Overrides{
		Version: 1,
		BestCarriages: map[int64][]int{
			2000391: {1, 4, 7},    // SYD - Town Hall 1
			2000392: {1, 4, 7},    // SYD - Town Hall 2
			2000393: {2, 4, 5, 8}, // SYD - Town Hall 3
		},
		NetworkAliases: map[string]string{
			"Q6955406": "Q7660181", // NSW TrainLink -> Sydney Trains
		},
		RefAsLocalRefNetworks: []string{
			"Q209400",  // Wiener Linien
			"Q2516485", // VOR (Österreich)
		},
		RouteShapes: map[string]Shape{},
	}
}

// ParseOverrides decodes and validates YAML document
func ParseOverrides(data []byte) (*Overrides, error) {
	overrides := &Overrides{}
	err := yaml.Unmarshal(data, overrides)
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode overrides")
	}
	err = validator.New().Struct(overrides)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid overrides")
	}
	if overrides.BestCarriages == nil {
		overrides.BestCarriages = make(map[int64][]int)
	}
	if overrides.NetworkAliases == nil {
		overrides.NetworkAliases = make(map[string]string)
	}
	if overrides.RouteShapes == nil {
		overrides.RouteShapes = make(map[string]Shape)
	}
	return overrides, nil
}

// LoadOverrides reads YAML file with overrides
func LoadOverrides(filename string) (*Overrides, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read overrides file")
	}
	return ParseOverrides(data)
}

// BestCarriagesFor returns forced "best" ordinals for the stop
func (overrides *Overrides) BestCarriagesFor(nodeID osm.NodeID) ([]int, bool) {
	if overrides == nil {
		return nil, false
	}
	refs, ok := overrides.BestCarriages[int64(nodeID)]
	return refs, ok
}

// Networks returns aliased values of `network:wikidata`
func (overrides *Overrides) Networks(tags osm.Tags) []string {
	values := splitNonEmpty(tags.Find("network:wikidata"), valueDelimiter)
	networks := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if overrides != nil {
			if alias, ok := overrides.NetworkAliases[value]; ok {
				value = alias
			}
		}
		networks = append(networks, value)
	}
	return networks
}

// LocalRef returns platform label of a feature: `local_ref`, or `ref` for networks which don't use `local_ref`
func (overrides *Overrides) LocalRef(tags osm.Tags, networks []string) string {
	if localRef := tags.Find("local_ref"); localRef != "" {
		return localRef
	}
	if overrides == nil {
		return ""
	}
	for _, network := range networks {
		for _, refNetwork := range overrides.RefAsLocalRefNetworks {
			if network == refNetwork {
				return tags.Find("ref")
			}
		}
	}
	return ""
}

// Shape returns shield shape for the route knowledge-base ID
func (overrides *Overrides) Shape(qID string) Shape {
	if overrides != nil && qID != "" {
		if shape, ok := overrides.RouteShapes[qID]; ok {
			return shape
		}
	}
	return SHAPE_RECTANGULAR
}
