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
	"fmt"
	"io/ioutil"
	"math"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// A value missing from the sidecar reads as zero, the same as a failed
// metadata lookup. A zero scale is treated as 1 by the converter.
const (
	defaultNoData = 0
	defaultScale  = 0
	defaultOffset = 0
)

// CalibrationConfig holds the values turning raw band samples into
// radiance.
type CalibrationConfig struct {
	NoData float64 `yaml:"nodata" mapstructure:"nodata"`
	Scale  float64 `yaml:"scale" mapstructure:"scale"`
	Offset float64 `yaml:"offset" mapstructure:"offset"`
}

func DefaultCalibrationConfig() CalibrationConfig {
	return CalibrationConfig{
		NoData: defaultNoData,
		Scale:  defaultScale,
		Offset: defaultOffset,
	}
}

// ParseConfigFile reads a sidecar file. A missing file gives the defaults.
func ParseConfigFile(filename string) (*CalibrationConfig, error) {
	buf, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		conf := DefaultCalibrationConfig()
		return &conf, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*CalibrationConfig, error) {
	return ParseConfigOver(buf, DefaultCalibrationConfig())
}

// ParseConfigOver parses buf on top of base, so keys missing from buf keep
// their base values.
func ParseConfigOver(buf []byte, base CalibrationConfig) (*CalibrationConfig, error) {
	conf := base
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (conf *CalibrationConfig) Validate() error {
	if !finite(conf.NoData) {
		return fmt.Errorf("nodata must be finite, got %v", conf.NoData)
	}
	if !finite(conf.Scale) {
		return fmt.Errorf("scale must be finite, got %v", conf.Scale)
	}
	if !finite(conf.Offset) {
		return fmt.Errorf("offset must be finite, got %v", conf.Offset)
	}
	return nil
}

// FromParams returns the calibration held in p.
func FromParams(p bytescale.Params) CalibrationConfig {
	return CalibrationConfig{
		NoData: p.NoData,
		Scale:  p.Scale,
		Offset: p.Offset,
	}
}

func (conf *CalibrationConfig) Params() bytescale.Params {
	return bytescale.Params{
		NoData: conf.NoData,
		Scale:  conf.Scale,
		Offset: conf.Offset,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
