package osm2exits

import (
	"fmt"

	"go.uber.org/zap"
)

type Parser struct {
	filename  string
	overrides *Overrides
	verbose   bool
	logger    *zap.Logger
}

func (parser *Parser) String() string {
	overridesVersion := 0
	if parser.overrides != nil {
		overridesVersion = parser.overrides.Version
	}
	return fmt.Sprintf(`
Exits parser parameters:
	filename: '%s'
	overrides version: %d
	verbose: %t
	`,
		parser.filename,
		overridesVersion,
		parser.verbose,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename:  fileName,
		overrides: DefaultOverrides(),
		verbose:   false,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

func WithOverrides(overrides *Overrides) func(*Parser) {
	return func(parser *Parser) {
		if overrides != nil {
			parser.overrides = overrides
		}
	}
}

// WithRouteShapes replaces shield shapes table of current overrides
func WithRouteShapes(shapes map[string]Shape) func(*Parser) {
	return func(parser *Parser) {
		if parser.overrides == nil {
			parser.overrides = DefaultOverrides()
		}
		parser.overrides.RouteShapes = shapes
	}
}

func WithVerbose(verbose bool) func(*Parser) {
	return func(parser *Parser) {
		parser.verbose = verbose
	}
}

func WithLogger(logger *zap.Logger) func(*Parser) {
	return func(parser *Parser) {
		if logger != nil {
			parser.logger = logger
		}
	}
}
