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

package throttle

import (
	"log"
	"time"

	"github.com/juju/ratelimit"

	"github.com/TheCacophonyProject/quicklook/bytescale"
	"github.com/TheCacophonyProject/quicklook/loglimiter"
	"github.com/TheCacophonyProject/quicklook/preview"
)

const minLogInterval = time.Minute

func NewThrottledWriter(
	baseWriter preview.Writer,
	config *ThrottlerConfig,
	listener ThrottledEventListener,
) *ThrottledWriter {
	return NewThrottledWriterWithClock(baseWriter, config, listener, new(realClock))
}

func NewThrottledWriterWithClock(
	baseWriter preview.Writer,
	config *ThrottlerConfig,
	listener ThrottledEventListener,
	clock ratelimit.Clock,
) *ThrottledWriter {
	// The token bucket tracks the number of quicklooks that may be written.
	// An empty bucket takes MinRefill to fill completely.
	capacity := int64(config.BucketSize)
	refillRate := float64(capacity) / config.MinRefill.Seconds()
	bucket := ratelimit.NewBucketWithRateAndClock(refillRate, capacity, clock)

	if listener == nil {
		listener = new(nullListener)
	}

	return &ThrottledWriter{
		writer:   baseWriter,
		listener: listener,
		bucket:   bucket,
		log:      loglimiter.New(minLogInterval),
	}
}

// ThrottledWriter wraps a quicklook writer so that quicklooks are dropped
// (ie throttled) when they arrive faster than the bucket refills. A band
// source running at full rate would otherwise fill the disk with near
// identical previews.
type ThrottledWriter struct {
	writer    preview.Writer
	listener  ThrottledEventListener
	bucket    *ratelimit.Bucket
	throttled bool
	dropped   int
	log       *loglimiter.LogLimiter
}

type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (lis *nullListener) WhenThrottled() {}

func (throttler *ThrottledWriter) Write(g *bytescale.ByteGrid, t time.Time) error {
	if throttler.bucket.TakeAvailable(1) == 0 {
		throttler.dropped++
		if !throttler.throttled {
			throttler.throttled = true
			throttler.log.Print("quicklooks throttled")
			throttler.listener.WhenThrottled()
		}
		return nil
	}
	if throttler.throttled {
		throttler.throttled = false
		log.Printf("quicklooks resumed after %d dropped", throttler.dropped)
	}
	return throttler.writer.Write(g, t)
}

// Dropped returns the number of quicklooks dropped so far.
func (throttler *ThrottledWriter) Dropped() int {
	return throttler.dropped
}

func (throttler *ThrottledWriter) Throttled() bool {
	return throttler.throttled
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

// Now implements Clock.Now by calling time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.Sleep by calling time.Sleep.
func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
