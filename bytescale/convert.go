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

var sequential = NewConverter(1)

// Convert stretches g into a byte grid of the same size on the calling
// goroutine. A grid with mismatched dimensions or non-finite parameters
// returns an error wrapping ErrDimensions or ErrParams.
func Convert(g *Grid, p Params) (*ByteGrid, error) {
	out, _, err := sequential.Convert(g, p)
	return out, err
}

// ConvertWithStats is Convert, also returning the extrema and sample counts.
func ConvertWithStats(g *Grid, p Params) (*ByteGrid, *Stats, error) {
	return sequential.Convert(g, p)
}
