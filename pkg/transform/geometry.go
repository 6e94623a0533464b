package transform

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/tstromberg/albumedit/pkg/raster"
)

// scaleDim returns round(n * percent / 100), rounding halves up, never less than 1.
func scaleDim(n, percent int) int {
	s := (n*percent + 50) / 100
	if s < 1 && n > 0 {
		return 1
	}
	return s
}

// ResizeImage scales src by percent using nearest-neighbor sampling.
func ResizeImage(src *raster.Buffer, percent int) *raster.Buffer {
	return src.Scaled(scaleDim(src.Width, percent), scaleDim(src.Height, percent))
}

// rotatedSize returns the bounding box of a w x h rectangle rotated by theta radians.
func rotatedSize(w, h int, theta float64) (int, int) {
	c := math.Abs(math.Cos(theta))
	s := math.Abs(math.Sin(theta))
	rw := int(math.Round(float64(w)*c + float64(h)*s))
	rh := int(math.Round(float64(w)*s + float64(h)*c))
	return rw, rh
}

// rotateAbout maps source coordinates to destination coordinates: the source
// center moves to the destination center and the image turns by theta radians.
// With y pointing down, positive angles turn clockwise on screen.
func rotateAbout(theta float64, sw, sh, dw, dh int) f64.Aff3 {
	cos, sin := math.Cos(theta), math.Sin(theta)
	scx, scy := float64(sw)/2, float64(sh)/2
	dcx, dcy := float64(dw)/2, float64(dh)/2
	return f64.Aff3{
		cos, -sin, dcx - cos*scx + sin*scy,
		sin, cos, dcy - sin*scx - cos*scy,
	}
}

// RotateImage turns src by degrees about its center. The result is sized to
// the rotated bounding box; every destination pixel center is mapped back to
// the nearest source pixel, and pixels that land outside the source are black.
func RotateImage(src *raster.Buffer, degrees int) *raster.Buffer {
	if degrees%360 == 0 {
		return src.Clone()
	}
	theta := float64(degrees) * math.Pi / 180
	dw, dh := rotatedSize(src.Width, src.Height, theta)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.NearestNeighbor.Transform(dst, rotateAbout(theta, src.Width, src.Height, dw, dh), src, src.Bounds(), draw.Src, nil)
	return raster.FromImage(dst)
}

// CropImage copies region r out of src.
func CropImage(src *raster.Buffer, r image.Rectangle) (*raster.Buffer, error) {
	return src.Crop(r)
}
