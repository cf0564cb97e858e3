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

package loglimiter

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// maxRemembered bounds the number of distinct messages tracked.
const maxRemembered = 64

// New returns a new LogLimiter with the configured minimum log interval.
func New(interval time.Duration) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		nowFunc:  time.Now,
		seen:     make(map[string]time.Time),
	}
}

// LogLimiter will suppress a log message if the same message was logged
// within some time interval, even when other messages were logged in
// between.
type LogLimiter struct {
	interval time.Duration
	nowFunc  func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.nowFunc()
	if last, ok := limiter.seen[s]; ok && now.Sub(last) < limiter.interval {
		return
	}
	if len(limiter.seen) >= maxRemembered {
		limiter.forget(now)
	}

	log.Print(s)
	limiter.seen[s] = now
}

// forget drops messages logged longer than the interval ago. If that
// doesn't free any space everything is forgotten.
func (limiter *LogLimiter) forget(now time.Time) {
	for s, t := range limiter.seen {
		if now.Sub(t) >= limiter.interval {
			delete(limiter.seen, s)
		}
	}
	if len(limiter.seen) >= maxRemembered {
		limiter.seen = make(map[string]time.Time)
	}
}
