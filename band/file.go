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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// File reads band frames from a file holding a header followed by one or
// more frames. Files ending in .zst or .gz are decompressed on the fly.
type File struct {
	f      *os.File
	closer func()
	r      *bufio.Reader
	buf    []byte
	Header *Header
}

func Open(filename string) (*File, error) {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, err
	}
	src, closer, err := decompressor(filename, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r := bufio.NewReader(src)
	h, err := ReadHeader(r)
	if err != nil {
		closer()
		f.Close()
		return nil, err
	}
	return &File{
		f:      f,
		closer: closer,
		r:      r,
		buf:    make([]byte, h.FrameSize()),
		Header: h,
	}, nil
}

func decompressor(filename string, f io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return gz, func() { gz.Close() }, nil
	}
	return f, func() {}, nil
}

func (bf *File) Name() string {
	return bf.f.Name()
}

// ReadGrid returns the next frame as a new grid, or io.EOF after the last.
func (bf *File) ReadGrid() (*bytescale.Grid, error) {
	g := bytescale.NewGrid(bf.Header.ResX(), bf.Header.ResY())
	if err := ReadFrame(bf.r, bf.Header, bf.buf, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (bf *File) Close() error {
	bf.closer()
	return bf.f.Close()
}
