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

// Package output archives quicklooks into a compressed stream of
// field-encoded sections. The stream starts with a header section
// followed by one frame section per quicklook.
package output

import (
	"errors"
	"io"
	"time"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/klauspost/compress/zstd"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

const (
	magic        = "QLRW"
	version byte = 0x01

	headerSection = 'H'
	frameSection  = 'F'

	compressionZstd uint8 = 2
)

// Header describes an archive. All frames in it share the resolution.
type Header struct {
	Timestamp  time.Time
	ResX       int
	ResY       int
	DeviceName string
	DeviceID   int
}

func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &Writer{w: zw}, nil
}

// Writer handles the low-level construction of archive sections and
// fields.
type Writer struct {
	w      *zstd.Encoder
	header *Header
}

func (w *Writer) WriteHeader(h Header) error {
	if w.header != nil {
		return errors.New("header already written")
	}
	fields := cptv.NewFieldWriter()
	fields.Timestamp(cptv.Timestamp, h.Timestamp)
	fields.Uint32(cptv.XResolution, uint32(h.ResX))
	fields.Uint32(cptv.YResolution, uint32(h.ResY))
	fields.Uint8(cptv.Compression, compressionZstd)
	if err := fields.String(cptv.DeviceName, h.DeviceName); err != nil {
		return err
	}
	fields.Uint32(cptv.DeviceID, uint32(h.DeviceID))

	fieldData, numFields := fields.Bytes()
	_, err := w.w.Write(append(
		[]byte(magic),
		version,
		headerSection,
		byte(numFields),
	))
	if err != nil {
		return err
	}
	if _, err := w.w.Write(fieldData); err != nil {
		return err
	}
	w.header = &h
	return nil
}

// WriteFrame appends g, taken at t. Frame times are stored as
// milliseconds since the header timestamp.
func (w *Writer) WriteFrame(g *bytescale.ByteGrid, t time.Time) error {
	if w.header == nil {
		return errors.New("header not written")
	}
	if g.Width != w.header.ResX || g.Height != w.header.ResY {
		return errors.New("quicklook resolution differs from archive")
	}

	offset := t.Sub(w.header.Timestamp) / time.Millisecond
	if offset < 0 {
		offset = 0
	}
	fields := cptv.NewFieldWriter()
	fields.Uint32(cptv.TimeOn, uint32(offset))
	fields.Uint32(cptv.FrameSize, uint32(len(g.Pix)))

	fieldData, numFields := fields.Bytes()
	if _, err := w.w.Write([]byte{frameSection, byte(numFields)}); err != nil {
		return err
	}
	if _, err := w.w.Write(fieldData); err != nil {
		return err
	}
	_, err := w.w.Write(g.Pix)
	return err
}

// Close flushes the compressed stream. The underlying writer is left
// open.
func (w *Writer) Close() error {
	return w.w.Close()
}
