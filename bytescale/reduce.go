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

// minRadiance is the floor applied to every valid transformed value, which
// keeps it clear of the zero used to mark no-data.
const minRadiance = 1.0

// partial holds the reduction over one range of rows.
type partial struct {
	ext    Extrema
	valid  int
	noData int
}

func newPartial() partial {
	return partial{ext: NewExtrema()}
}

func (p partial) merge(o partial) partial {
	return partial{
		ext:    p.ext.Merge(o.ext),
		valid:  p.valid + o.valid,
		noData: p.noData + o.noData,
	}
}

// reduce writes the transformed values of rows [y0, y1) of g into out and
// returns their extrema.
func reduce(g *Grid, p Params, out []float32, y0, y1 int) partial {
	res := newPartial()
	for i := y0 * g.Width; i < y1*g.Width; i++ {
		pixel := g.Pix[i]
		if float64(pixel) == p.NoData {
			out[i] = 0
			res.noData++
			continue
		}
		// The conversion stops the multiply being fused into the add.
		radiance := float64(float64(pixel)*p.Scale) + p.Offset
		v := float32(math.Max(minRadiance, radiance))
		out[i] = v
		res.ext.Add(v)
		res.valid++
	}
	return res
}

// mergePartials combines per-partition results pairwise, level by level,
// until one remains.
func mergePartials(parts []partial) partial {
	if len(parts) == 0 {
		return newPartial()
	}
	for len(parts) > 1 {
		merged := make([]partial, 0, (len(parts)+1)/2)
		for i := 0; i < len(parts); i += 2 {
			if i+1 == len(parts) {
				merged = append(merged, parts[i])
				break
			}
			merged = append(merged, parts[i].merge(parts[i+1]))
		}
		parts = merged
	}
	return parts[0]
}
