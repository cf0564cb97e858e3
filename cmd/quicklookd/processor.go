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
	"io"
	"log"
	"time"

	"github.com/coreos/go-systemd/daemon"

	"github.com/TheCacophonyProject/quicklook/band"
	"github.com/TheCacophonyProject/quicklook/bytescale"
	"github.com/TheCacophonyProject/quicklook/loglimiter"
	"github.com/TheCacophonyProject/quicklook/preview"
)

const (
	framesPerSdNotify = 5

	frameLogIntervalFirst = 10
	frameLogInterval      = 100
)

// bandProcessor turns band frames into quicklooks.
type bandProcessor struct {
	converter *bytescale.Converter
	params    bytescale.Params
	snapshot  *preview.Snapshot
	writer    preview.Writer
	log       *loglimiter.LogLimiter
	nowFunc   func() time.Time
}

func newBandProcessor(
	converter *bytescale.Converter,
	params bytescale.Params,
	snapshot *preview.Snapshot,
	writer preview.Writer,
) *bandProcessor {
	return &bandProcessor{
		converter: converter,
		params:    params,
		snapshot:  snapshot,
		writer:    writer,
		log:       loglimiter.New(time.Minute),
		nowFunc:   time.Now,
	}
}

func (p *bandProcessor) Process(g *bytescale.Grid) error {
	q, stats, err := p.converter.Convert(g, p.params)
	if err != nil {
		return err
	}
	if !stats.Extrema.Valid() {
		p.log.Print("band frame has no valid samples")
	}
	p.snapshot.Update(q, stats)
	return p.writer.Write(q, p.nowFunc())
}

// readFrames processes frames from reader until the stream ends. notify is
// called every framesPerSdNotify frames.
func readFrames(reader *bufio.Reader, header *band.Header, p *bandProcessor, notify func()) error {
	log.Printf("converting band w=%d h=%d %s", header.ResX(), header.ResY(), p.params)

	buf := make([]byte, header.FrameSize())
	g := bytescale.NewGrid(header.ResX(), header.ResY())
	totalFrames := 0
	notifyCount := 0
	for {
		if err := band.ReadFrame(reader, header, buf, g); err != nil {
			if err == io.EOF {
				log.Printf("band stream ended after %d frames", totalFrames)
				return nil
			}
			return err
		}
		totalFrames++

		if totalFrames%frameLogIntervalFirst == 0 &&
			totalFrames <= frameLogInterval || totalFrames%frameLogInterval == 0 {
			log.Printf("%d frames for this connection", totalFrames)
		}

		if err := p.Process(g); err != nil {
			return err
		}

		if notifyCount++; notifyCount >= framesPerSdNotify {
			notify()
			notifyCount = 0
		}
	}
}

func sdNotifyWatchdog() {
	daemon.SdNotify(false, "WATCHDOG=1")
}
