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

package bytescale

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDimensions = errors.New("malformed sample grid")
	ErrParams     = errors.New("non-finite conversion parameter")
)

// Params describes how raw samples map to radiance: pixel*Scale + Offset.
// Samples exactly equal to NoData are left out.
type Params struct {
	NoData float64
	Scale  float64
	Offset float64
}

func DefaultParams() Params {
	return Params{Scale: 1}
}

func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"nodata", p.NoData},
		{"scale", p.Scale},
		{"offset", p.Offset},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s=%v", ErrParams, f.name, f.value)
		}
	}
	return nil
}

// normalized returns p with a zero scale replaced by 1, otherwise every
// valid sample would collapse onto the offset.
func (p Params) normalized() Params {
	if p.Scale == 0 {
		p.Scale = 1
	}
	return p
}

func (p Params) String() string {
	return fmt.Sprintf("nodata=%f scale=%f offset=%f", p.NoData, p.Scale, p.Offset)
}
