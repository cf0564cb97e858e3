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

package calibration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

func TestAllDefaults(t *testing.T) {
	conf, err := ParseConfig([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, CalibrationConfig{}, *conf)
}

func TestAllSet(t *testing.T) {
	conf, err := ParseConfig([]byte(`
nodata: 9.96921e+36
scale: 0.001
offset: -12
`))
	require.NoError(t, err)

	assert.Equal(t, CalibrationConfig{
		NoData: 9.96921e+36,
		Scale:  0.001,
		Offset: -12,
	}, *conf)
	assert.Equal(t, bytescale.Params{NoData: 9.96921e+36, Scale: 0.001, Offset: -12}, conf.Params())
}

func TestParseConfigOverKeepsMissingKeys(t *testing.T) {
	base := FromParams(bytescale.Params{NoData: -9999, Scale: 2, Offset: 3})
	conf, err := ParseConfigOver([]byte("scale: 0.5\n"), base)
	require.NoError(t, err)

	assert.Equal(t, bytescale.Params{NoData: -9999, Scale: 0.5, Offset: 3}, conf.Params())
}

func TestNonFiniteDoesntValidate(t *testing.T) {
	_, err := ParseConfig([]byte("scale: .inf\n"))
	assert.EqualError(t, err, "scale must be finite, got +Inf")

	_, err = ParseConfig([]byte("nodata: .nan\n"))
	assert.EqualError(t, err, "nodata must be finite, got NaN")

	_, err = ParseConfig([]byte("offset: -.inf\n"))
	assert.EqualError(t, err, "offset must be finite, got -Inf")
}

func TestBadYAML(t *testing.T) {
	_, err := ParseConfig([]byte("scale: [1"))
	assert.Error(t, err)
}

func TestMissingFileGivesDefaults(t *testing.T) {
	conf, err := ParseConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultCalibrationConfig(), *conf)
}

func TestParseConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "band.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("scale: 2\nnodata: -1\n"), 0644))

	conf, err := ParseConfigFile(filename)
	require.NoError(t, err)

	assert.Equal(t, CalibrationConfig{NoData: -1, Scale: 2}, *conf)
}

func TestDefaultScaleConvertsAsOne(t *testing.T) {
	g := bytescale.NewGrid(3, 1)
	copy(g.Pix, []float32{10, 20, 30})

	conf := DefaultCalibrationConfig()
	got, err := bytescale.Convert(g, conf.Params())
	require.NoError(t, err)
	want, err := bytescale.Convert(g, bytescale.Params{Scale: 1})
	require.NoError(t, err)

	assert.Equal(t, want.Pix, got.Pix)
}
