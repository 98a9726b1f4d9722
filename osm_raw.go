package osm2exits

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// SnapshotFormat is the encoding of OSM data
type SnapshotFormat uint16

const (
	FORMAT_XML = SnapshotFormat(iota + 1)
	FORMAT_PBF
	FORMAT_UNDEFINED = SnapshotFormat(0)
)

func (iotaIdx SnapshotFormat) String() string {
	return [...]string{"undefined", "xml", "pbf"}[iotaIdx]
}

// formatByFilename guesses file format by its extension
func formatByFilename(filename string) (SnapshotFormat, error) {
	if strings.HasSuffix(filename, ".osm.pbf") {
		return FORMAT_PBF, nil
	}
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return FORMAT_XML, nil
	case ".pbf":
		return FORMAT_PBF, nil
	default:
		return FORMAT_UNDEFINED, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ReadOSM scans every node, way and relation of the stream into memory.
// Order of objects is preserved. Other object types (changesets, bounds) are skipped.
func ReadOSM(ctx context.Context, r io.Reader, format SnapshotFormat) (osm.Objects, error) {
	var scanner OSMScanner
	switch format {
	case FORMAT_XML:
		scanner = osmxml.New(ctx, r)
	case FORMAT_PBF:
		scanner = osmpbf.New(ctx, r, 4)
	default:
		return nil, fmt.Errorf("Snapshot format %d is not handled yet", format)
	}
	defer scanner.Close()

	objects := osm.Objects{}
	for scanner.Scan() {
		obj := scanner.Object()
		switch obj.(type) {
		case *osm.Node, *osm.Way, *osm.Relation:
			objects = append(objects, obj)
		}
	}
	err := scanner.Err()
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan OSM objects")
	}
	return objects, nil
}

// readOSMFile reads whole snapshot file in a single pass
func readOSMFile(ctx context.Context, filename string, verbose bool) (osm.Objects, error) {
	format, err := formatByFilename(filename)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	if verbose {
		fmt.Printf("\tScanning objects... ")
	}
	st := time.Now()
	objects, err := ReadOSM(ctx, file, format)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Done in %v (%d objects)\n", time.Since(st), len(objects))
	}
	return objects, nil
}
