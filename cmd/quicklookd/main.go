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
	"bufio"
	"log"
	"net"
	"os"

	goconfig "github.com/TheCacophonyProject/go-config"
	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"

	"github.com/TheCacophonyProject/quicklook/band"
	"github.com/TheCacophonyProject/quicklook/bytescale"
	"github.com/TheCacophonyProject/quicklook/output"
	"github.com/TheCacophonyProject/quicklook/preview"
	"github.com/TheCacophonyProject/quicklook/throttle"
)

var version = "<not set>"

type Args struct {
	ConfigDir  string `arg:"-c,--config" help:"path to configuration directory"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigDir = goconfig.DefaultConfigDir
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
	conf, err := ParseConfig(args.ConfigDir)
	if err != nil {
		return err
	}
	logConfig(conf)

	if err := os.MkdirAll(conf.Quicklook.OutputDir, 0755); err != nil {
		return err
	}

	snapshot := preview.NewSnapshot(conf.Quicklook.OutputDir, conf.Quicklook.Width)
	snapshot.Delete()

	log.Println("starting d-bus service")
	if err := startService(snapshot); err != nil {
		return err
	}

	converter := bytescale.NewConverter(conf.Quicklook.Workers)
	log.Printf("conversion workers: %d", converter.Workers())

	notified := false
	for {
		// Set up listener for band frames.
		os.Remove(conf.Quicklook.BandInput)
		listener, err := net.Listen("unix", conf.Quicklook.BandInput)
		if err != nil {
			return err
		}
		if !notified {
			daemon.SdNotify(false, "READY=1")
			notified = true
		}
		log.Print("waiting for band connection")

		conn, err := listener.Accept()
		if err != nil {
			log.Printf("socket accept failed: %v", err)
			listener.Close()
			continue
		}

		// Prevent concurrent connections.
		listener.Close()

		err = handleConn(conn, conf, converter, snapshot)
		conn.Close()
		log.Printf("band connection ended with: %v", err)
	}
}

func handleConn(conn net.Conn, conf *Config, converter *bytescale.Converter, snapshot *preview.Snapshot) error {
	reader := bufio.NewReader(conn)
	header, err := band.ReadHeader(reader)
	if err != nil {
		return err
	}
	log.Printf("connection for band %q (%dx%d)", header.Name(), header.ResX(), header.ResY())

	writer, closeWriter := newWriter(conf)
	defer closeWriter()

	params := header.Params(conf.Quicklook.Calibration.Params())
	if err := params.Validate(); err != nil {
		return err
	}
	p := newBandProcessor(converter, params, snapshot, writer)
	return readFrames(reader, header, p, sdNotifyWatchdog)
}

// newWriter builds the quicklook writer chain: PNG files, the optional
// archive, then throttling. The returned func closes the archive.
func newWriter(conf *Config) (preview.Writer, func()) {
	q := &conf.Quicklook
	var writer preview.Writer = preview.NewDirWriter(q.OutputDir, q.Width)
	closeWriter := func() {}

	if q.Archive {
		archive := output.NewFileWriter(q.OutputDir, conf.DeviceName, conf.DeviceID)
		writer = preview.MultiWriter(writer, archive)
		closeWriter = func() {
			if err := archive.Close(); err != nil {
				log.Printf("error closing archive: %v", err)
			}
		}
	}

	if q.Throttler.Activate {
		writer = throttle.NewThrottledWriter(writer, &q.Throttler, new(throttle.EventListener))
	}
	return writer, closeWriter
}

func logConfig(conf *Config) {
	q := conf.Quicklook
	log.Printf("device name: %s", conf.DeviceName)
	log.Printf("band input: %s", q.BandInput)
	log.Printf("output dir: %s", q.OutputDir)
	log.Printf("width: %d", q.Width)
	log.Printf("archive: %v", q.Archive)
	log.Printf("calibration: %+v", q.Calibration)
	log.Printf("throttler: %+v", q.Throttler)
}
