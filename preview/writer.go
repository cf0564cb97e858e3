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

package preview

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// Writer consumes finished quicklooks.
type Writer interface {
	Write(g *bytescale.ByteGrid, t time.Time) error
}

// DirWriter saves each quicklook as its own PNG file.
type DirWriter struct {
	dir   string
	width uint
}

func NewDirWriter(dir string, width uint) *DirWriter {
	return &DirWriter{
		dir:   dir,
		width: width,
	}
}

func (w *DirWriter) Write(g *bytescale.ByteGrid, t time.Time) error {
	return WritePNG(w.FileName(t), Thumbnail(Image(g), w.width))
}

func (w *DirWriter) FileName(t time.Time) string {
	name := fmt.Sprintf("%s.png", t.Format("2006_01_02T15_04_05.000"))
	return filepath.Join(w.dir, name)
}

type multiWriter []Writer

// MultiWriter passes each quicklook to all of ws, stopping at the first
// error.
func MultiWriter(ws ...Writer) Writer {
	return multiWriter(ws)
}

func (mw multiWriter) Write(g *bytescale.ByteGrid, t time.Time) error {
	for _, w := range mw {
		if err := w.Write(g, t); err != nil {
			return err
		}
	}
	return nil
}
