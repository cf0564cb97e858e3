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

package band

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// DecodeFrame fills g from one frame of raw samples.
func DecodeFrame(buf []byte, h *Header, g *bytescale.Grid) error {
	if len(buf) != h.FrameSize() {
		return fmt.Errorf("frame is %d bytes, expected %d", len(buf), h.FrameSize())
	}
	if g.Width != h.resX || g.Height != h.resY || len(g.Pix) != h.resX*h.resY {
		return fmt.Errorf("%dx%d grid can't hold a %dx%d frame", g.Width, g.Height, h.resX, h.resY)
	}
	for i := range g.Pix {
		g.Pix[i] = math.Float32frombits(h.byteOrder.Uint32(buf[i*sampleSize:]))
	}
	return nil
}

// ReadFrame reads the next frame from r into g, using buf as scratch
// space. It returns io.EOF only when no bytes of the frame were read.
func ReadFrame(r io.Reader, h *Header, buf []byte, g *bytescale.Grid) error {
	if len(buf) != h.FrameSize() {
		buf = make([]byte, h.FrameSize())
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	return DecodeFrame(buf, h, g)
}

func EncodeFrame(g *bytescale.Grid, order binary.ByteOrder) []byte {
	buf := make([]byte, len(g.Pix)*sampleSize)
	for i, v := range g.Pix {
		order.PutUint32(buf[i*sampleSize:], math.Float32bits(v))
	}
	return buf
}
