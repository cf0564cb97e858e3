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

// quantize maps transformed values in src[lo:hi] onto dst. Values that
// truncate to zero, which includes every no-data pixel, stay zero.
func quantize(src []float32, dst []uint8, ext Extrema, factor float32, lo, hi int) {
	for i := lo; i < hi; i++ {
		v := src[i]
		level := truncate(v)
		if level != 0 {
			level = truncate((v - ext.Min) * factor)
		}
		dst[i] = clampByte(level)
	}
}

// truncate rounds toward zero, saturating at the int32 limits and mapping
// NaN to zero.
func truncate(v float32) int32 {
	switch {
	case v != v:
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

func clampByte(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}
