// quicklook - greyscale previews of radiometric instrument bands
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/quicklook/band"
	"github.com/TheCacophonyProject/quicklook/bytescale"
	"github.com/TheCacophonyProject/quicklook/calibration"
	"github.com/TheCacophonyProject/quicklook/preview"
)

var version = "<not set>"

type Args struct {
	Band        string   `arg:"-b,--band,required" help:"band file (.raw, .raw.zst or .raw.gz)"`
	Out         string   `arg:"-o,--out" help:"output PNG, defaults to the band file name with a .png extension"`
	Calibration string   `arg:"-k,--calibration" help:"YAML sidecar with nodata, scale and offset"`
	NoData      *float64 `arg:"--nodata" help:"no-data value, overriding the band header and sidecar"`
	Scale       *float64 `arg:"--scale" help:"sample scale, overriding the band header and sidecar"`
	Offset      *float64 `arg:"--offset" help:"sample offset, overriding the band header and sidecar"`
	Frame       int      `arg:"-f,--frame" help:"index of the frame to convert"`
	Width       uint     `arg:"-w,--width" help:"scale the quicklook down to this width"`
	Workers     int      `arg:"-j,--workers" help:"conversion goroutines, 0 for one per CPU"`
	Timestamps  bool     `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	out, stats, err := makeQuicklook(args)
	if err != nil {
		return err
	}
	logStats(stats)
	log.Printf("wrote %s", out)
	return nil
}

// makeQuicklook converts one frame of the band file and writes it as a
// PNG, returning the file written.
func makeQuicklook(args Args) (string, *bytescale.Stats, error) {
	bf, err := band.Open(args.Band)
	if err != nil {
		return "", nil, err
	}
	defer bf.Close()

	params, err := resolveParams(args, bf.Header)
	if err != nil {
		return "", nil, err
	}

	g, err := readFrame(bf, args.Frame)
	if err != nil {
		return "", nil, err
	}

	log.Printf("converting band w=%d h=%d %s", g.Width, g.Height, params)
	t0 := time.Now()
	q, stats, err := bytescale.NewConverter(args.Workers).Convert(g, params)
	if err != nil {
		return "", nil, err
	}
	log.Printf("converted in %v", time.Since(t0))

	out := args.Out
	if out == "" {
		out = defaultOutName(args.Band)
	}
	if err := preview.WritePNG(out, preview.Thumbnail(preview.Image(q), args.Width)); err != nil {
		return "", nil, err
	}
	return out, stats, nil
}

// resolveParams layers the calibration sources: band header, then the keys
// set in the sidecar file, then command line overrides.
func resolveParams(args Args, h *band.Header) (bytescale.Params, error) {
	defaults := calibration.DefaultCalibrationConfig()
	params := h.Params(defaults.Params())

	if args.Calibration != "" {
		buf, err := ioutil.ReadFile(args.Calibration)
		if err != nil {
			return params, err
		}
		conf, err := calibration.ParseConfigOver(buf, calibration.FromParams(params))
		if err != nil {
			return params, err
		}
		params = conf.Params()
	}
	if args.NoData != nil {
		params.NoData = *args.NoData
	}
	if args.Scale != nil {
		params.Scale = *args.Scale
	}
	if args.Offset != nil {
		params.Offset = *args.Offset
	}
	return params, params.Validate()
}

func readFrame(bf *band.File, index int) (*bytescale.Grid, error) {
	if index < 0 {
		return nil, fmt.Errorf("invalid frame index %d", index)
	}
	for i := 0; ; i++ {
		g, err := bf.ReadGrid()
		if err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", i, err)
		}
		if i == index {
			return g, nil
		}
	}
}

func defaultOutName(bandFile string) string {
	name := bandFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".gz":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
}

func logStats(stats *bytescale.Stats) {
	if !stats.Extrema.Valid() {
		log.Printf("no valid samples (%d no-data)", stats.NoData)
		return
	}
	log.Printf("extrema: min=%f max=%f factor=%f", stats.Extrema.Min, stats.Extrema.Max, stats.Factor)
	log.Printf("samples: %d valid, %d no-data", stats.Valid, stats.NoData)
}
