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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/quicklook/bytescale"
	"github.com/TheCacophonyProject/quicklook/preview"
)

func TestServiceBeforeQuicklooks(t *testing.T) {
	s := &service{snapshot: preview.NewSnapshot(t.TempDir(), 0)}

	_, _, dbusErr := s.Extrema()
	require.NotNil(t, dbusErr)
	assert.Equal(t, "org.cacophony.quicklook.Extrema", dbusErr.Name)
	assert.Equal(t, []interface{}{"no quicklooks yet"}, dbusErr.Body)

	dbusErr = s.TakeQuicklook()
	require.NotNil(t, dbusErr)
	assert.Equal(t, "org.cacophony.quicklook.TakeQuicklook", dbusErr.Name)
}

func TestServiceExtremaAndStill(t *testing.T) {
	dir := t.TempDir()
	snapshot := preview.NewSnapshot(dir, 0)
	s := &service{snapshot: snapshot}

	g := bytescale.NewGrid(2, 2)
	copy(g.Pix, []float32{10, 20, 30, 40})
	q, stats, err := bytescale.ConvertWithStats(g, bytescale.DefaultParams())
	require.NoError(t, err)
	snapshot.Update(q, stats)

	lo, hi, dbusErr := s.Extrema()
	require.Nil(t, dbusErr)
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 40.0, hi)

	require.Nil(t, s.TakeQuicklook())
	_, err = os.Stat(snapshot.StillPath())
	assert.NoError(t, err)
}

func TestServiceExtremaAllNoData(t *testing.T) {
	snapshot := preview.NewSnapshot(t.TempDir(), 0)
	g := bytescale.NewGrid(1, 1)
	q, stats, err := bytescale.ConvertWithStats(g, bytescale.DefaultParams())
	require.NoError(t, err)
	snapshot.Update(q, stats)

	_, _, dbusErr := (&service{snapshot: snapshot}).Extrema()
	require.NotNil(t, dbusErr)
	assert.Equal(t, []interface{}{"latest band had no valid samples"}, dbusErr.Body)
}
