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

package preview

import (
	"errors"
	"hash/crc32"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

const (
	StillName          = "still.png"
	allowedStillPeriod = 500 * time.Millisecond
)

// Snapshot keeps the most recent quicklook so it can be saved on request.
type Snapshot struct {
	dir   string
	width uint

	mu           sync.Mutex
	latest       *bytescale.ByteGrid
	stats        bytescale.Stats
	previousID   uint32
	previousTime time.Time
	nowFunc      func() time.Time
}

func NewSnapshot(dir string, width uint) *Snapshot {
	return &Snapshot{
		dir:     dir,
		width:   width,
		nowFunc: time.Now,
	}
}

// Update replaces the latest quicklook. g must not be modified afterwards.
func (s *Snapshot) Update(g *bytescale.ByteGrid, stats *bytescale.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = g
	if stats != nil {
		s.stats = *stats
	}
}

// Latest returns the most recent quicklook and its stats, or nil if there
// hasn't been one.
func (s *Snapshot) Latest() (*bytescale.ByteGrid, bytescale.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.stats
}

// Take saves the latest quicklook as StillName. Requests closer together
// than allowedStillPeriod, or for a quicklook already saved, do nothing.
func (s *Snapshot) Take() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	if now.Sub(s.previousTime) < allowedStillPeriod {
		return nil
	}
	if s.latest == nil {
		return errors.New("no quicklooks yet")
	}

	id := crc32.ChecksumIEEE(s.latest.Pix)
	if id == s.previousID && !s.previousTime.IsZero() {
		return nil
	}

	if err := WritePNG(s.StillPath(), Thumbnail(Image(s.latest), s.width)); err != nil {
		return err
	}

	// only counts once the still is written
	s.previousID = id
	s.previousTime = now
	return nil
}

func (s *Snapshot) StillPath() string {
	return filepath.Join(s.dir, StillName)
}

// Delete removes any still left over from a previous run.
func (s *Snapshot) Delete() {
	if err := os.Remove(s.StillPath()); err != nil && !os.IsNotExist(err) {
		log.Printf("error deleting still image: %v", err)
	}
}
