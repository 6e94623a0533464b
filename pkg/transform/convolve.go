package transform

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/tstromberg/albumedit/pkg/raster"
)

// kernel computes an interior output pixel from the previous generation.
type kernel func(prev *raster.Buffer, x, y int) raster.RGB

// convolve runs k over the interior of src passes times. Each pass reads only
// the previous pass; the one-pixel frame is never written.
func convolve(src *raster.Buffer, passes int, k kernel) *raster.Buffer {
	cur := src.Clone()
	if src.Width < 3 || src.Height < 3 {
		return cur
	}

	for i := 0; i < passes; i++ {
		prev := cur
		cur = prev.Clone()
		parallel.Line(src.Height-2, func(start, end int) {
			for y := start + 1; y < end+1; y++ {
				for x := 1; x < src.Width-1; x++ {
					cur.Pix[cur.Offset(x, y)] = k(prev, x, y)
				}
			}
		})
	}
	return cur
}

func smoothKernel(prev *raster.Buffer, x, y int) raster.RGB {
	var r, g, b int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := prev.Pix[prev.Offset(x+dx, y+dy)]
			r += int(p.R)
			g += int(p.G)
			b += int(p.B)
		}
	}
	return raster.RGB{R: uint8(r / 9), G: uint8(g / 9), B: uint8(b / 9)}
}

func sharpenKernel(prev *raster.Buffer, x, y int) raster.RGB {
	c := prev.Pix[prev.Offset(x, y)]
	n := prev.Pix[prev.Offset(x, y-1)]
	s := prev.Pix[prev.Offset(x, y+1)]
	e := prev.Pix[prev.Offset(x+1, y)]
	w := prev.Pix[prev.Offset(x-1, y)]

	return raster.RGB{
		R: raster.Clamp(5*int(c.R) - int(n.R) - int(s.R) - int(e.R) - int(w.R)),
		G: raster.Clamp(5*int(c.G) - int(n.G) - int(s.G) - int(e.G) - int(w.G)),
		B: raster.Clamp(5*int(c.B) - int(n.B) - int(s.B) - int(e.B) - int(w.B)),
	}
}

// SmoothImage replaces each interior pixel with the floor mean of its 3x3 neighborhood.
func SmoothImage(src *raster.Buffer, passes int) *raster.Buffer {
	return convolve(src, passes, smoothKernel)
}

// SharpenImage applies the 5-point sharpen kernel to interior pixels.
func SharpenImage(src *raster.Buffer, passes int) *raster.Buffer {
	return convolve(src, passes, sharpenKernel)
}
