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

import "math"

// Extrema is the running minimum and maximum of transformed values.
type Extrema struct {
	Min float32
	Max float32
}

// NewExtrema returns extrema that any finite value will replace.
func NewExtrema() Extrema {
	return Extrema{
		Min: math.MaxFloat32,
		Max: -math.MaxFloat32,
	}
}

// Add widens e to include v. NaN leaves e unchanged.
func (e *Extrema) Add(v float32) {
	if v > e.Max {
		e.Max = v
	}
	if v < e.Min {
		e.Min = v
	}
}

// Merge combines two sets of extrema. It is associative and commutative so
// partial results can be merged in any order.
func (e Extrema) Merge(o Extrema) Extrema {
	if o.Max > e.Max {
		e.Max = o.Max
	}
	if o.Min < e.Min {
		e.Min = o.Min
	}
	return e
}

// Valid reports whether at least one value was added.
func (e Extrema) Valid() bool {
	return e.Min <= e.Max
}

// Range is negative when no value was added.
func (e Extrema) Range() float32 {
	return e.Max - e.Min
}

const outputLevels = 256

// Factor returns the multiplier stretching r onto the byte range.
func Factor(r float32) float32 {
	// No valid pixels (r < 0) or a single value (r == 0): no stretch.
	if r <= 0 {
		return 1
	}
	return outputLevels / r
}
