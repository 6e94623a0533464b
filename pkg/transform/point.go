package transform

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/tstromberg/albumedit/pkg/raster"
)

// pointOp applies fn to every channel of every pixel.
func pointOp(src *raster.Buffer, fn func(c int) uint8) *raster.Buffer {
	dst := raster.New(src.Width, src.Height)
	parallel.Line(src.Height, func(start, end int) {
		for i := start * src.Width; i < end*src.Width; i++ {
			p := src.Pix[i]
			dst.Pix[i] = raster.RGB{R: fn(int(p.R)), G: fn(int(p.G)), B: fn(int(p.B))}
		}
	})
	return dst
}

// BrightenImage adds delta to every channel.
func BrightenImage(src *raster.Buffer, delta int) *raster.Buffer {
	return pointOp(src, func(c int) uint8 {
		return raster.Clamp(c + delta)
	})
}

// ContrastImage computes (c - delta) * 2 for every channel.
// This is not a symmetric contrast curve: delta shifts the pivot and the slope is fixed at 2.
func ContrastImage(src *raster.Buffer, delta int) *raster.Buffer {
	return pointOp(src, func(c int) uint8 {
		return raster.Clamp((c - delta) * 2)
	})
}

// NegateImage inverts every channel.
func NegateImage(src *raster.Buffer) *raster.Buffer {
	return pointOp(src, func(c int) uint8 {
		return uint8(255 - c)
	})
}
