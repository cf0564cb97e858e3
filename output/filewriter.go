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
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

const archiveExt = "qlraw"

// FileWriter archives quicklooks into files in a directory. A new file is
// started whenever the quicklook resolution changes.
type FileWriter struct {
	dir        string
	deviceName string
	deviceID   int

	f  *os.File
	bw *bufio.Writer
	w  *Writer
}

func NewFileWriter(dir, deviceName string, deviceID int) *FileWriter {
	return &FileWriter{
		dir:        dir,
		deviceName: deviceName,
		deviceID:   deviceID,
	}
}

func (fw *FileWriter) Write(g *bytescale.ByteGrid, t time.Time) error {
	if fw.w != nil && (fw.w.header.ResX != g.Width || fw.w.header.ResY != g.Height) {
		if err := fw.Close(); err != nil {
			return err
		}
	}
	if fw.w == nil {
		if err := fw.open(g, t); err != nil {
			return err
		}
	}
	return fw.w.WriteFrame(g, t)
}

func (fw *FileWriter) open(g *bytescale.ByteGrid, t time.Time) error {
	name := filepath.Join(fw.dir, fmt.Sprintf("%s.%s", t.Format("2006_01_02T15_04_05.000"), archiveExt))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	w, err := NewWriter(bw)
	if err != nil {
		f.Close()
		return err
	}
	err = w.WriteHeader(Header{
		Timestamp:  t,
		ResX:       g.Width,
		ResY:       g.Height,
		DeviceName: fw.deviceName,
		DeviceID:   fw.deviceID,
	})
	if err != nil {
		f.Close()
		return err
	}
	log.Println("archiving quicklooks to", name)
	fw.f, fw.bw, fw.w = f, bw, w
	return nil
}

// Name returns the current archive file, or "" when none is open.
func (fw *FileWriter) Name() string {
	if fw.f == nil {
		return ""
	}
	return fw.f.Name()
}

func (fw *FileWriter) Close() error {
	if fw.w == nil {
		return nil
	}
	err := fw.w.Close()
	if ferr := fw.bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := fw.f.Close(); err == nil {
		err = cerr
	}
	fw.f, fw.bw, fw.w = nil, nil, nil
	return err
}
