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

// Package bytescale stretches float32 sample grids into 8-bit greyscale
// quicklooks.
package bytescale

import "fmt"

// Grid is a row-major rectangle of float32 samples.
type Grid struct {
	Width  int
	Height int
	Pix    []float32
}

// NewGrid returns a zeroed width by height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}
}

func (g *Grid) At(x, y int) float32 {
	return g.Pix[y*g.Width+x]
}

func (g *Grid) Set(x, y int, v float32) {
	g.Pix[y*g.Width+x] = v
}

func (g *Grid) validate() error {
	if g == nil {
		return fmt.Errorf("%w: no grid", ErrDimensions)
	}
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrDimensions, g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d grid holds %d samples", ErrDimensions, g.Width, g.Height, len(g.Pix))
	}
	return nil
}

// ByteGrid is the quantized form of a Grid, with the same dimensions.
type ByteGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewByteGrid(width, height int) *ByteGrid {
	return &ByteGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

func (g *ByteGrid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}
