// Package transform implements the image edits offered by the album editor.
//
// Every function is pure: the source buffer is never modified and a new
// buffer is returned.
package transform

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/tstromberg/albumedit/pkg/raster"
)

// ErrInvalidParameter is returned for parameters outside of an operation's range.
var ErrInvalidParameter = errors.New("invalid parameter")

// Op identifies an edit operation.
type Op int

const (
	None Op = iota
	Brighten
	Contrast
	Negate
	Smooth
	Sharpen
	Resize
	Rotate
	Crop
)

var opNames = map[Op]string{
	None:     "none",
	Brighten: "brighten",
	Contrast: "contrast",
	Negate:   "negate",
	Smooth:   "smooth",
	Sharpen:  "sharpen",
	Resize:   "resize",
	Rotate:   "rotate",
	Crop:     "crop",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp returns the Op with the given name.
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, n := range opNames {
		if n == s && o != None {
			return o, nil
		}
	}
	return None, fmt.Errorf("unknown operation %q", s)
}

// Range describes the accepted integer parameter of an operation.
type Range struct {
	Min     int
	Max     int
	Default int
}

var ranges = map[Op]Range{
	Brighten: {Min: -255, Max: 255, Default: 0},
	Contrast: {Min: -127, Max: 127, Default: 0},
	Smooth:   {Min: 0, Max: 3, Default: 0},
	Sharpen:  {Min: 0, Max: 3, Default: 0},
	Resize:   {Min: 1, Max: 500, Default: 100},
	Rotate:   {Min: -180, Max: 180, Default: 0},
}

// Range returns the parameter range for operations that take an integer.
func (o Op) Range() (Range, bool) {
	r, ok := ranges[o]
	return r, ok
}

// Param is the argument to an operation: Value for integer operations, Region for Crop.
type Param struct {
	Value  int
	Region image.Rectangle
}

// Validate checks p against the requirements of op for a source of the given bounds.
func Validate(op Op, p Param, bounds image.Rectangle) error {
	switch op {
	case Negate:
		return nil
	case Crop:
		if p.Region.Empty() || !p.Region.In(bounds) {
			return fmt.Errorf("crop %v of %v: %w: %w", p.Region, bounds, ErrInvalidParameter, raster.ErrInvalidRegion)
		}
		return nil
	}

	r, ok := op.Range()
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrInvalidParameter)
	}
	if p.Value < r.Min || p.Value > r.Max {
		return fmt.Errorf("%s %d not in [%d,%d]: %w", op, p.Value, r.Min, r.Max, ErrInvalidParameter)
	}
	return nil
}

// Apply runs op on src with parameter p.
func Apply(src *raster.Buffer, op Op, p Param) (*raster.Buffer, error) {
	if err := Validate(op, p, src.Bounds()); err != nil {
		return nil, err
	}

	switch op {
	case Brighten:
		return BrightenImage(src, p.Value), nil
	case Contrast:
		return ContrastImage(src, p.Value), nil
	case Negate:
		return NegateImage(src), nil
	case Smooth:
		return SmoothImage(src, p.Value), nil
	case Sharpen:
		return SharpenImage(src, p.Value), nil
	case Resize:
		return ResizeImage(src, p.Value), nil
	case Rotate:
		return RotateImage(src, p.Value), nil
	case Crop:
		return CropImage(src, p.Region)
	}
	return nil, fmt.Errorf("apply %s: %w", op, ErrInvalidParameter)
}
