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
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	"github.com/TheCacophonyProject/quicklook/bytescale"
)

// Image wraps g as a greyscale image sharing g's pixels.
func Image(g *bytescale.ByteGrid) *image.Gray {
	return &image.Gray{
		Pix:    g.Pix,
		Stride: g.Width,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// Thumbnail scales img down to width pixels wide, keeping the aspect
// ratio. Images already narrow enough, or a zero width, are returned as is.
func Thumbnail(img image.Image, width uint) image.Image {
	if width == 0 || int(width) >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(width, 0, img, resize.Bilinear)
}

func WritePNG(filename string, img image.Image) error {
	out, err := os.Create(filepath.Clean(filename))
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
