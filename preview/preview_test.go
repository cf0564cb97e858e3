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
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

func testGrid(width, height int) *bytescale.ByteGrid {
	g := bytescale.NewByteGrid(width, height)
	for i := range g.Pix {
		g.Pix[i] = uint8(i)
	}
	return g
}

func readPNG(t *testing.T, filename string) image.Image {
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestImageSharesPixels(t *testing.T) {
	g := testGrid(4, 3)
	img := Image(g)

	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, uint8(6), img.GrayAt(2, 1).Y)

	g.Pix[6] = 200
	assert.Equal(t, uint8(200), img.GrayAt(2, 1).Y)
}

func TestThumbnail(t *testing.T) {
	img := Image(testGrid(40, 20))

	assert.Equal(t, image.Rect(0, 0, 10, 5), Thumbnail(img, 10).Bounds())
	assert.Equal(t, img, Thumbnail(img, 0))
	assert.Equal(t, img, Thumbnail(img, 40))
	assert.Equal(t, img, Thumbnail(img, 400))
}

func TestWritePNG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "q.png")
	g := testGrid(5, 2)

	require.NoError(t, WritePNG(filename, Image(g)))

	img := readPNG(t, filename)
	assert.Equal(t, image.Rect(0, 0, 5, 2), img.Bounds())
	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, g.Pix, gray.Pix)
}

func TestDirWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewDirWriter(dir, 3)
	ts := time.Date(2026, 3, 4, 5, 6, 7, 890000000, time.UTC)

	require.NoError(t, w.Write(testGrid(6, 4), ts))

	filename := filepath.Join(dir, "2026_03_04T05_06_07.890.png")
	assert.Equal(t, filename, w.FileName(ts))
	assert.Equal(t, image.Rect(0, 0, 3, 2), readPNG(t, filename).Bounds())
}

type countingWriter struct {
	writes int
	err    error
}

func (w *countingWriter) Write(*bytescale.ByteGrid, time.Time) error {
	w.writes++
	return w.err
}

func TestMultiWriter(t *testing.T) {
	a := new(countingWriter)
	b := &countingWriter{err: errors.New("disk full")}
	c := new(countingWriter)

	err := MultiWriter(a, b, c).Write(testGrid(1, 1), time.Now())

	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, a.writes)
	assert.Equal(t, 1, b.writes)
	assert.Equal(t, 0, c.writes)
}

func newTestSnapshot(t *testing.T) (*Snapshot, *time.Time) {
	now := time.Now()
	s := NewSnapshot(t.TempDir(), 0)
	s.nowFunc = func() time.Time { return now }
	return s, &now
}

func TestSnapshotWithoutQuicklook(t *testing.T) {
	s, _ := newTestSnapshot(t)

	assert.EqualError(t, s.Take(), "no quicklooks yet")
	g, _ := s.Latest()
	assert.Nil(t, g)
}

func TestSnapshotTake(t *testing.T) {
	s, _ := newTestSnapshot(t)
	stats := &bytescale.Stats{Extrema: bytescale.Extrema{Min: 1, Max: 9}, Factor: 32, Valid: 6}
	s.Update(testGrid(3, 2), stats)

	require.NoError(t, s.Take())

	assert.Equal(t, image.Rect(0, 0, 3, 2), readPNG(t, s.StillPath()).Bounds())
	_, got := s.Latest()
	assert.Equal(t, *stats, got)
}

func TestSnapshotRateLimited(t *testing.T) {
	s, now := newTestSnapshot(t)
	s.Update(testGrid(3, 2), nil)
	require.NoError(t, s.Take())
	require.NoError(t, os.Remove(s.StillPath()))

	// Too soon after the last still.
	*now = now.Add(100 * time.Millisecond)
	s.Update(testGrid(2, 2), nil)
	require.NoError(t, s.Take())
	assert.NoFileExists(t, s.StillPath())

	*now = now.Add(time.Second)
	require.NoError(t, s.Take())
	assert.FileExists(t, s.StillPath())
}

func TestSnapshotSkipsSameQuicklook(t *testing.T) {
	s, now := newTestSnapshot(t)
	s.Update(testGrid(3, 2), nil)
	require.NoError(t, s.Take())
	require.NoError(t, os.Remove(s.StillPath()))

	*now = now.Add(time.Second)
	s.Update(testGrid(3, 2), nil)
	require.NoError(t, s.Take())
	assert.NoFileExists(t, s.StillPath())
}

func TestSnapshotDelete(t *testing.T) {
	s, _ := newTestSnapshot(t)
	s.Update(testGrid(3, 2), nil)
	require.NoError(t, s.Take())

	s.Delete()
	assert.NoFileExists(t, s.StillPath())

	// Deleting again is fine.
	s.Delete()
}
