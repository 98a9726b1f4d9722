package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/LdDl/osm2exits"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	osmFileName   = flag.String("file", "my_stations.osm.pbf", "Filename of *.osm.pbf / *.osm file")
	out           = flag.String("out", "my_stations.json", "Filename of JSON file with stations. A CSV summary is written next to it: e.g. 'stations.json' -> 'stations_stops.csv'")
	geojsonOut    = flag.String("geojson", "", "Filename of GeoJSON file with stops. Skipped if empty")
	geomFormat    = flag.String("geomf", "wkt", "Format of output geometry in CSV. Expected values: wkt / geojson")
	overridesFile = flag.String("overrides", "", "Filename of YAML file with overrides. Built-in overrides are used if empty")
	verbose       = flag.Bool("verbose", false, "Print progress and debug logs")
)

func main() {
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	logger, err := newLogger(*verbose, os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer logger.Sync()

	if *overridesFile == "" {
		*overridesFile = os.Getenv("OSM2EXITS_OVERRIDES")
	}
	overrides := osm2exits.DefaultOverrides()
	if *overridesFile != "" {
		overrides, err = osm2exits.LoadOverrides(*overridesFile)
		if err != nil {
			logger.Error("Can't load overrides", zap.String("file", *overridesFile), zap.Error(err))
			return
		}
	}

	parser := osm2exits.NewParser(
		*osmFileName,
		osm2exits.WithOverrides(overrides),
		osm2exits.WithVerbose(*verbose),
		osm2exits.WithLogger(logger),
	)
	if *verbose {
		fmt.Println(parser)
	}

	result, err := parser.ReadAndProcess(context.Background())
	if err != nil {
		logger.Error("Can't process OSM file", zap.String("file", *osmFileName), zap.Error(err))
		return
	}
	logger.Sugar().Infof("stations: %d, warnings: %d, stops without data: %d", len(result.Stations), len(result.Warnings), len(result.NodesWithNoData))

	err = writeJSON(*out, result)
	if err != nil {
		logger.Error("Can't write stations", zap.Error(err))
		return
	}

	fnamePart := strings.Split(*out, ".json") // to guarantee proper filename and its extension
	err = writeStopsCSV(fnamePart[0]+"_stops.csv", result.Stations, *geomFormat)
	if err != nil {
		logger.Error("Can't write stops summary", zap.Error(err))
		return
	}

	if *geojsonOut != "" {
		err = writeJSON(*geojsonOut, osm2exits.PrepareGeoJSONStops(result.Stations))
		if err != nil {
			logger.Error("Can't write GeoJSON", zap.Error(err))
			return
		}
	}
}

func newLogger(verbose bool, level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, errors.Wrap(err, "Bad LOG_LEVEL")
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return cfg.Build()
}

func writeJSON(fname string, value interface{}) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(value)
	if err != nil {
		return errors.Wrap(err, "Can't encode JSON")
	}
	return nil
}

func writeStopsCSV(fname string, stations []*osm2exits.Station, geomFormat string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'
	// 		station_id - string, ID of the station
	// 		node_id - int64, ID of the stop position node
	// 		platform - string, platform label
	// 		direction - string, forward / backward / both_ways
	// 		bidi_mode - string, none / regular / occasional / unknown
	// 		exit_side - string, left / right / both or empty
	// 		carriages - int, number of carriages (gaps included)
	// 		flip - bool or empty if unknown
	// 		flip_algorithm - string, name of the strategy which decided the flip
	//      geom - geometry (WKT or GeoJSON representation)
	err = writer.Write([]string{"station_id", "node_id", "platform", "direction", "bidi_mode", "exit_side", "carriages", "flip", "flip_algorithm", "geom"})
	if err != nil {
		return err
	}
	for _, station := range stations {
		for _, stop := range station.Stops {
			geomStr := ""
			if strings.ToLower(geomFormat) == "geojson" {
				geomStr = osm2exits.PrepareGeoJSONPoint(stop.Point())
			} else {
				geomStr = osm2exits.PrepareWKTPoint(stop.Point())
			}
			flip := ""
			if stop.Flip != nil {
				flip = fmt.Sprintf("%t", *stop.Flip)
			}
			err = writer.Write([]string{
				station.ID,
				fmt.Sprintf("%d", stop.NodeID),
				stop.Platform,
				stop.Direction.String(),
				stop.BiDiMode.String(),
				stop.ExitSide.String(),
				fmt.Sprintf("%d", len(stop.Carriages)),
				flip,
				string(station.FlipAlgorithm),
				geomStr,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
