// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

package minify

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"image"
	"image/color"
	"image/png"

	"github.com/klauspost/compress/flate"

	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/zopfli"
)

const (
	colorTypeTruecolor      = 2
	colorTypeTruecolorAlpha = 6

	filterUp    = 2
	filterPaeth = 4
)

// PNG implements the PNG minifier (spec.md 4.4.3). No PNG-chunk-surgery
// library appears anywhere in the retrieval pack (see DESIGN.md), so this
// re-encodes the decoded image by hand: strip every ancillary chunk by
// only ever emitting IHDR/IDAT/IEND, optimize away a wholly-opaque alpha
// channel, and filter each scanline with whichever of Up or Paeth (the
// only two filters spec.md 9 allows this rewrite to choose between)
// produces the smaller filtered row.
func PNG(store *config.Store, input []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("minify: png: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	hasAlpha := imageHasAlpha(img)
	bpp := 3
	colorType := byte(colorTypeTruecolor)
	if hasAlpha {
		bpp = 4
		colorType = colorTypeTruecolorAlpha
	}

	raw := rasterize(img, bounds, bpp, hasAlpha)
	filtered := filterScanlines(raw, width, height, bpp)

	cfg := store.PNG()
	idatPayload, err := deflatePNGData(filtered, cfg.UseZopfli)
	if err != nil {
		return nil, fmt.Errorf("minify: png: %w", err)
	}

	return encodePNG(width, height, colorType, idatPayload), nil
}

func imageHasAlpha(img image.Image) bool {
	switch im := img.(type) {
	case *image.RGBA:
		for i := 3; i < len(im.Pix); i += 4 {
			if im.Pix[i] != 0xff {
				return true
			}
		}
		return false
	case *image.NRGBA:
		for i := 3; i < len(im.Pix); i += 4 {
			if im.Pix[i] != 0xff {
				return true
			}
		}
		return false
	case *image.Gray:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a != 0xffff {
					return true
				}
			}
		}
		return false
	}
}

// rasterize extracts bpp-byte-per-pixel rows (no filter bytes yet) from
// img in row-major order.
func rasterize(img image.Image, bounds image.Rectangle, bpp int, hasAlpha bool) []byte {
	width, height := bounds.Dx(), bounds.Dy()
	out := make([]byte, width*height*bpp)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out[i] = c.R
			out[i+1] = c.G
			out[i+2] = c.B
			i += 3
			if hasAlpha {
				out[i] = c.A
				i++
			}
		}
	}
	return out
}

// filterScanlines applies, per row, whichever of Up or Paeth yields the
// smaller sum of absolute signed byte values (a standard cheap proxy for
// "compresses better"), and prefixes each row with its filter byte.
func filterScanlines(raw []byte, width, height, bpp int) []byte {
	stride := width * bpp
	out := make([]byte, 0, height*(stride+1))

	prev := make([]byte, stride)
	up := make([]byte, stride)
	paeth := make([]byte, stride)

	for y := 0; y < height; y++ {
		row := raw[y*stride : (y+1)*stride]

		for i := 0; i < stride; i++ {
			up[i] = row[i] - prev[i]
		}
		for i := 0; i < stride; i++ {
			var left byte
			if i >= bpp {
				left = row[i-bpp]
			}
			var upLeft byte
			if i >= bpp {
				upLeft = prev[i-bpp]
			}
			paeth[i] = row[i] - paethPredictor(left, prev[i], upLeft)
		}

		if sumAbs(up) <= sumAbs(paeth) {
			out = append(out, filterUp)
			out = append(out, up...)
		} else {
			out = append(out, filterPaeth)
			out = append(out, paeth...)
		}

		prev = row
	}
	return out
}

func sumAbs(row []byte) int {
	sum := 0
	for _, b := range row {
		v := int(int8(b))
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum
}

func paethPredictor(a, b, c byte) byte {
	pa := absInt(int(b) - int(c))
	pb := absInt(int(a) - int(c))
	pc := absInt(int(a) + int(b) - 2*int(c))

	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func deflatePNGData(filtered []byte, useZopfli config.ZopfliSwitch) ([]byte, error) {
	if useZopfli.Enabled() {
		raw, err := zopfli.Encode(filtered, useZopfli.Iterations())
		if err != nil {
			return nil, err
		}
		return wrapZlib(raw, filtered), nil
	}

	var buf bytes.Buffer
	buf.WriteByte(0x78)
	buf.WriteByte(0xDA)
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(filtered); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	var sumBuf [4]byte
	binary.BigEndian.PutUint32(sumBuf[:], adler32.Checksum(filtered))
	buf.Write(sumBuf[:])
	return buf.Bytes(), nil
}

func encodePNG(width, height int, colorType byte, idat []byte) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = colorType
	ihdr[10] = 0 // compression method
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // interlace method

	out := make([]byte, 0, len(pngSignature)+64+len(idat))
	out = append(out, pngSignature...)
	out = writePNGChunk(out, "IHDR", ihdr)
	out = writePNGChunk(out, "IDAT", idat)
	out = writePNGChunk(out, "IEND", nil)
	return out
}
