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

package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/klauspost/compress/zstd"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// Reader reads back archives made by Writer.
type Reader struct {
	dec    *zstd.Decoder
	r      *bufio.Reader
	Header Header
}

func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	ar := &Reader{
		dec: dec,
		r:   bufio.NewReader(dec),
	}
	if err := ar.readHeader(); err != nil {
		dec.Close()
		return nil, err
	}
	return ar, nil
}

func (ar *Reader) readHeader() error {
	preamble := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(ar.r, preamble); err != nil {
		return err
	}
	if string(preamble[:len(magic)]) != magic {
		return errors.New("not a quicklook archive")
	}
	if preamble[len(magic)] != version {
		return fmt.Errorf("unsupported archive version %d", preamble[len(magic)])
	}
	if preamble[len(magic)+1] != headerSection {
		return errors.New("missing header section")
	}

	fields, err := cptv.ReadFields(ar.r)
	if err != nil {
		return err
	}
	ts, err := fields.Timestamp(cptv.Timestamp)
	if err != nil {
		return err
	}
	resX, err := fields.Uint32(cptv.XResolution)
	if err != nil {
		return err
	}
	resY, err := fields.Uint32(cptv.YResolution)
	if err != nil {
		return err
	}
	name, err := fields.String(cptv.DeviceName)
	if err != nil {
		return err
	}
	id, err := fields.Uint32(cptv.DeviceID)
	if err != nil {
		return err
	}
	ar.Header = Header{
		Timestamp:  ts,
		ResX:       int(resX),
		ResY:       int(resY),
		DeviceName: name,
		DeviceID:   int(id),
	}
	return nil
}

// ReadFrame returns the next quicklook and its time, or io.EOF after the
// last one.
func (ar *Reader) ReadFrame() (*bytescale.ByteGrid, time.Time, error) {
	section, err := ar.r.ReadByte()
	if err != nil {
		return nil, time.Time{}, err
	}
	if section != frameSection {
		return nil, time.Time{}, fmt.Errorf("unexpected section %q", section)
	}
	fields, err := cptv.ReadFields(ar.r)
	if err != nil {
		return nil, time.Time{}, err
	}
	offset, err := fields.Uint32(cptv.TimeOn)
	if err != nil {
		return nil, time.Time{}, err
	}
	size, err := fields.Uint32(cptv.FrameSize)
	if err != nil {
		return nil, time.Time{}, err
	}
	g := bytescale.NewByteGrid(ar.Header.ResX, ar.Header.ResY)
	if int(size) != len(g.Pix) {
		return nil, time.Time{}, fmt.Errorf("frame size %d doesn't match %dx%d", size, g.Width, g.Height)
	}
	if _, err := io.ReadFull(ar.r, g.Pix); err != nil {
		return nil, time.Time{}, err
	}
	t := ar.Header.Timestamp.Add(time.Duration(offset) * time.Millisecond)
	return g, t, nil
}

func (ar *Reader) Close() {
	ar.dec.Close()
}
