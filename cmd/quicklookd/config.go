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
	"errors"

	goconfig "github.com/TheCacophonyProject/go-config"

	"github.com/TheCacophonyProject/quicklook/calibration"
	"github.com/TheCacophonyProject/quicklook/throttle"
)

const quicklookKey = "quicklook"

type Config struct {
	DeviceID   int
	DeviceName string
	Quicklook  QuicklookConfig
}

type QuicklookConfig struct {
	BandInput   string                        `mapstructure:"band-input"`
	OutputDir   string                        `mapstructure:"output-dir"`
	Width       uint                          `mapstructure:"width"`
	Workers     int                           `mapstructure:"workers"`
	Archive     bool                          `mapstructure:"archive"`
	Calibration calibration.CalibrationConfig `mapstructure:"calibration"`
	Throttler   throttle.ThrottlerConfig      `mapstructure:"throttler"`
}

func DefaultQuicklook() QuicklookConfig {
	return QuicklookConfig{
		BandInput:   "/var/run/quicklook-bands",
		OutputDir:   "/var/spool/quicklook",
		Calibration: calibration.DefaultCalibrationConfig(),
		Throttler:   throttle.DefaultThrottlerConfig(),
	}
}

func (conf *QuicklookConfig) validate() error {
	if conf.BandInput == "" {
		return errors.New("band-input must be set")
	}
	if conf.OutputDir == "" {
		return errors.New("output-dir must be set")
	}
	if conf.Workers < 0 {
		return errors.New("workers can't be negative")
	}
	if err := conf.Calibration.Validate(); err != nil {
		return err
	}
	return conf.Throttler.Validate()
}

// unmarshaler is the part of goconfig.Config used here.
type unmarshaler interface {
	Unmarshal(key string, rawVal interface{}) error
}

func ParseConfig(configDir string) (*Config, error) {
	configRW, err := goconfig.New(configDir)
	if err != nil {
		return nil, err
	}
	return parseConfig(configRW)
}

func parseConfig(configRW unmarshaler) (*Config, error) {
	var deviceConfig goconfig.Device
	if err := configRW.Unmarshal(goconfig.DeviceKey, &deviceConfig); err != nil {
		return nil, err
	}

	quicklookConfig := DefaultQuicklook()
	if err := configRW.Unmarshal(quicklookKey, &quicklookConfig); err != nil {
		return nil, err
	}
	if err := quicklookConfig.validate(); err != nil {
		return nil, err
	}

	return &Config{
		DeviceID:   deviceConfig.ID,
		DeviceName: deviceConfig.Name,
		Quicklook:  quicklookConfig,
	}, nil
}
