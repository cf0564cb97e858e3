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
	"errors"
	"time"
)

type ThrottlerConfig struct {
	Activate   bool          `mapstructure:"activate"`
	BucketSize int           `mapstructure:"bucket-size"`
	MinRefill  time.Duration `mapstructure:"min-refill"`
}

func DefaultThrottlerConfig() ThrottlerConfig {
	return ThrottlerConfig{
		Activate:   true,
		BucketSize: 30,
		MinRefill:  10 * time.Minute,
	}
}

func (conf *ThrottlerConfig) Validate() error {
	if !conf.Activate {
		return nil
	}
	if conf.BucketSize < 1 {
		return errors.New("bucket-size should be at least 1")
	}
	if conf.MinRefill <= 0 {
		return errors.New("min-refill should be positive")
	}
	return nil
}
