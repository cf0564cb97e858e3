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
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v1"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// Header keys. The header is a YAML block ended by an empty line.
const (
	XResolution = "x-resolution"
	YResolution = "y-resolution"
	ByteOrder   = "byte-order"
	Name        = "name"
	NoData      = "nodata"
	Scale       = "scale"
	Offset      = "offset"
)

const sampleSize = 4

// MaxSamples bounds the samples in one frame (1 GiB of float32).
const MaxSamples = 1 << 28

var ErrHeader = errors.New("bad band header")

type Header struct {
	resX      int
	resY      int
	byteOrder binary.ByteOrder
	name      string
	noData    *float64
	scale     *float64
	offset    *float64
}

// NewHeader returns a little endian header. Calibration values in p are
// only written when p is non-nil.
func NewHeader(resX, resY int, name string, p *bytescale.Params) *Header {
	h := &Header{
		resX:      resX,
		resY:      resY,
		byteOrder: binary.LittleEndian,
		name:      name,
	}
	if p != nil {
		noData, scale, offset := p.NoData, p.Scale, p.Offset
		h.noData, h.scale, h.offset = &noData, &scale, &offset
	}
	return h
}

func (h *Header) ResX() int {
	return h.resX
}

func (h *Header) ResY() int {
	return h.resY
}

func (h *Header) Name() string {
	return h.name
}

func (h *Header) ByteOrder() binary.ByteOrder {
	return h.byteOrder
}

// FrameSize is the number of bytes in one frame of float32 samples.
func (h *Header) FrameSize() int {
	return h.resX * h.resY * sampleSize
}

// Params returns defaults overridden by any calibration in the header.
func (h *Header) Params(defaults bytescale.Params) bytescale.Params {
	p := defaults
	if h.noData != nil {
		p.NoData = *h.noData
	}
	if h.scale != nil {
		p.Scale = *h.scale
	}
	if h.offset != nil {
		p.Offset = *h.offset
	}
	return p
}

// HasCalibration reports whether the header carries any of nodata, scale
// or offset.
func (h *Header) HasCalibration() bool {
	return h.noData != nil || h.scale != nil || h.offset != nil
}

func ReadHeader(reader *bufio.Reader) (*Header, error) {
	var buf bytes.Buffer
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		buf.WriteString(line)
	}
	m := make(map[string]interface{})
	if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeader, err)
	}

	h := &Header{
		resX: toInt(m[XResolution]),
		resY: toInt(m[YResolution]),
		name: toStr(m[Name]),
	}
	if h.resX <= 0 || h.resY <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrHeader, h.resX, h.resY)
	}
	if h.resX > MaxSamples/h.resY {
		return nil, fmt.Errorf("%w: resolution %dx%d exceeds %d samples", ErrHeader, h.resX, h.resY, MaxSamples)
	}

	switch order := toStr(m[ByteOrder]); order {
	case "", "little":
		h.byteOrder = binary.LittleEndian
	case "big":
		h.byteOrder = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: unknown byte order %q", ErrHeader, order)
	}

	var err error
	if h.noData, err = toFloat(m, NoData); err != nil {
		return nil, err
	}
	if h.scale, err = toFloat(m, Scale); err != nil {
		return nil, err
	}
	if h.offset, err = toFloat(m, Offset); err != nil {
		return nil, err
	}
	return h, nil
}

// WriteHeader writes h in the form ReadHeader expects.
func WriteHeader(w io.Writer, h *Header) error {
	m := map[string]interface{}{
		XResolution: h.resX,
		YResolution: h.resY,
	}
	if h.byteOrder == binary.BigEndian {
		m[ByteOrder] = "big"
	} else {
		m[ByteOrder] = "little"
	}
	if h.name != "" {
		m[Name] = h.name
	}
	if h.noData != nil {
		m[NoData] = *h.noData
	}
	if h.scale != nil {
		m[Scale] = *h.scale
	}
	if h.offset != nil {
		m[Offset] = *h.offset
	}
	buf, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(append(buf, '\n'))
	return err
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func toStr(v interface{}) string {
	out, ok := v.(string)
	if !ok {
		return ""
	}
	return out
}

func toFloat(m map[string]interface{}, key string) (*float64, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return nil, fmt.Errorf("%w: %s is not a number", ErrHeader, key)
	}
	return &f, nil
}
