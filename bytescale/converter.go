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
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Stats describes a finished conversion.
type Stats struct {
	Extrema Extrema
	Factor  float32
	Valid   int
	NoData  int
}

// Converter runs both passes of a conversion split by rows over a number
// of goroutines. The extrema of every partition are merged before any
// pixel is quantized, so the output does not depend on the worker count.
type Converter struct {
	workers int
}

// NewConverter returns a Converter using up to workers goroutines. Zero or
// less uses GOMAXPROCS.
func NewConverter(workers int) *Converter {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Converter{workers: workers}
}

func (c *Converter) Workers() int {
	return c.workers
}

func (c *Converter) Convert(g *Grid, p Params) (*ByteGrid, *Stats, error) {
	if err := g.validate(); err != nil {
		return nil, nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	p = p.normalized()

	bands := partition(g.Height, c.workers)

	transformed := make([]float32, len(g.Pix))
	partials := make([]partial, len(bands))
	err := c.each(bands, func(i int, b rows) {
		partials[i] = reduce(g, p, transformed, b.y0, b.y1)
	})
	if err != nil {
		return nil, nil, err
	}
	total := mergePartials(partials)

	factor := Factor(total.ext.Range())
	out := NewByteGrid(g.Width, g.Height)
	err = c.each(bands, func(_ int, b rows) {
		quantize(transformed, out.Pix, total.ext, factor, b.y0*g.Width, b.y1*g.Width)
	})
	if err != nil {
		return nil, nil, err
	}

	return out, &Stats{
		Extrema: total.ext,
		Factor:  factor,
		Valid:   total.valid,
		NoData:  total.noData,
	}, nil
}

// each runs fn for every row range, at most c.workers at a time. A panic
// in a parallel task is returned as an error.
func (c *Converter) each(bands []rows, fn func(int, rows)) error {
	if len(bands) == 1 {
		fn(0, bands[0])
		return nil
	}
	var eg errgroup.Group
	eg.SetLimit(c.workers)
	for i, b := range bands {
		i, b := i, b
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rows %d-%d: %v", b.y0, b.y1, r)
				}
			}()
			fn(i, b)
			return nil
		})
	}
	return eg.Wait()
}

// rows is the half open row range [y0, y1).
type rows struct {
	y0, y1 int
}

// partition splits height rows into at most n contiguous ranges. It always
// returns at least one range so empty grids take the same path.
func partition(height, n int) []rows {
	if n > height {
		n = height
	}
	if n < 1 {
		return []rows{{0, height}}
	}
	size := (height + n - 1) / n
	out := make([]rows, 0, n)
	for y := 0; y < height; y += size {
		end := y + size
		if end > height {
			end = height
		}
		out = append(out, rows{y, end})
	}
	return out
}
