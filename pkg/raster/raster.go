// Package raster provides the 8-bit RGB pixel buffer that every image edit operates on.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
)

var (
	// ErrOutOfBounds is returned for pixel access outside of the buffer.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrInvalidRegion is returned when a region is not fully contained in the buffer.
	ErrInvalidRegion = errors.New("invalid region")
)

// RGB is a single pixel. Channels are always within [0,255].
type RGB struct {
	R, G, B uint8
}

// Buffer is a rectangular grid of RGB pixels stored row-major.
// len(Pix) is always Width*Height.
type Buffer struct {
	Width  int
	Height int
	Pix    []RGB
}

// New returns a black buffer of the given dimensions.
func New(width, height int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative dimensions %dx%d", width, height))
	}
	return &Buffer{Width: width, Height: height, Pix: make([]RGB, width*height)}
}

// Filled returns a buffer where every pixel is c.
func Filled(width, height int, c RGB) *Buffer {
	b := New(width, height)
	for i := range b.Pix {
		b.Pix[i] = c
	}
	return b
}

// FromImage converts a decoded image into a Buffer. Alpha is discarded.
func FromImage(img image.Image) *Buffer {
	rgba := clone.AsRGBA(img)
	r := rgba.Bounds()
	b := New(r.Dx(), r.Dy())
	for y := 0; y < b.Height; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < b.Width; x++ {
			p := row[x*4:]
			b.Pix[y*b.Width+x] = RGB{R: p[0], G: p[1], B: p[2]}
		}
	}
	return b
}

// Clamp limits an intermediate channel value to [0,255].
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Offset returns the index of (x, y) in Pix.
func (b *Buffer) Offset(x, y int) int {
	return y*b.Width + x
}

func (b *Buffer) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Get returns the pixel at (x, y).
func (b *Buffer) Get(x, y int) (RGB, error) {
	if !b.contains(x, y) {
		return RGB{}, fmt.Errorf("get (%d,%d) in %dx%d: %w", x, y, b.Width, b.Height, ErrOutOfBounds)
	}
	return b.Pix[b.Offset(x, y)], nil
}

// Set stores c at (x, y).
func (b *Buffer) Set(x, y int, c RGB) error {
	if !b.contains(x, y) {
		return fmt.Errorf("set (%d,%d) in %dx%d: %w", x, y, b.Width, b.Height, ErrOutOfBounds)
	}
	b.Pix[b.Offset(x, y)] = c
	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]RGB, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Equal reports whether both buffers have identical dimensions and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Crop copies the region r, which must be non-empty and lie entirely inside the buffer.
func (b *Buffer) Crop(r image.Rectangle) (*Buffer, error) {
	if r.Empty() || !r.In(b.Bounds()) {
		return nil, fmt.Errorf("crop %v from %dx%d: %w", r, b.Width, b.Height, ErrInvalidRegion)
	}
	c := New(r.Dx(), r.Dy())
	for y := 0; y < c.Height; y++ {
		src := b.Offset(r.Min.X, r.Min.Y+y)
		copy(c.Pix[y*c.Width:(y+1)*c.Width], b.Pix[src:src+c.Width])
	}
	return c, nil
}

// Scaled resamples the buffer to width x height using nearest-neighbor sampling.
// Scaling to the same dimensions reproduces the source exactly.
func (b *Buffer) Scaled(width, height int) *Buffer {
	s := New(width, height)
	if b.Width == 0 || b.Height == 0 {
		return s
	}
	for y := 0; y < height; y++ {
		sy := y * b.Height / height
		for x := 0; x < width; x++ {
			sx := x * b.Width / width
			s.Pix[y*width+x] = b.Pix[b.Offset(sx, sy)]
		}
	}
	return s
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image. Pixels outside the buffer are transparent.
func (b *Buffer) At(x, y int) color.Color {
	if !b.contains(x, y) {
		return color.RGBA{}
	}
	p := b.Pix[b.Offset(x, y)]
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}

// RGBA returns the buffer as an opaque *image.RGBA.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for i, p := range b.Pix {
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = 0xff
	}
	return img
}
