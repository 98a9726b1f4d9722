package osm2exits

import (
	"context"

	"github.com/pkg/errors"
)

// ReadAndProcess reads the parser's file and builds stations out of it
func (parser *Parser) ReadAndProcess(ctx context.Context) (*Result, error) {
	objects, err := readOSMFile(ctx, parser.filename, parser.verbose)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	return parser.Process(objects), nil
}
