// demq prints the ground elevation at a coordinate, looked up in the GSI
// elevation tile pyramid.
//
//	demq 35.681167 139.767052
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	log "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/namsral/flag"

	dem "github.com/archlabjp/go-dem"
	"github.com/archlabjp/go-dem/loglevel"
)

const appName = "demq"

var (
	logLevel = flag.String("logLevel", "ERROR", "DEBUG|INFO|WARN|ERROR")
	zoom     = flag.Int("zoom", -1, "maximum zoom level to use, -1 for the finest available")
)

func run() error {
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "app", appName)
	logger = loglevel.NewLevelFilterFromString(logger, *logLevel)

	if flag.NArg() != 2 {
		return errors.New("syntax: demq latitude longitude")
	}
	lat, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		return err
	}
	lng, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		return err
	}

	service, err := dem.NewGSI()
	if err != nil {
		return err
	}

	var result dem.Result
	if *zoom >= 0 {
		result, err = service.ElevationAtZoom(context.Background(), lat, lng, *zoom)
	} else {
		result, err = service.Elevation(context.Background(), lat, lng)
	}
	if err != nil {
		return err
	}

	level.Debug(logger).Log(
		"msg", "resolved elevation",
		"dataset", result.Dataset,
		"zoom", result.Zoom,
		"validCorners", result.ValidCorners,
	)
	if result.Partial() {
		level.Warn(logger).Log("msg", "partial coverage", "validCorners", result.ValidCorners)
	}

	fmt.Println(result.Meters)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
