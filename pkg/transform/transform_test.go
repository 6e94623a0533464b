package transform

import (
	"errors"
	"image"
	"testing"

	"github.com/tstromberg/albumedit/pkg/raster"
)

// noise returns a deterministic non-uniform buffer.
func noise(w, h int) *raster.Buffer {
	b := raster.New(w, h)
	seed := uint32(7)
	for i := range b.Pix {
		seed = seed*1664525 + 1013904223
		b.Pix[i] = raster.RGB{R: uint8(seed >> 24), G: uint8(seed >> 16), B: uint8(seed >> 8)}
	}
	return b
}

func TestParseOp(t *testing.T) {
	for _, op := range []Op{Brighten, Contrast, Negate, Smooth, Sharpen, Resize, Rotate, Crop} {
		got, err := ParseOp(op.String())
		if err != nil {
			t.Fatalf("ParseOp(%q): %v", op, err)
		}
		if got != op {
			t.Errorf("ParseOp(%q) = %v", op, got)
		}
	}
	if _, err := ParseOp("none"); err == nil {
		t.Errorf("ParseOp(none) succeeded, want error")
	}
	if _, err := ParseOp("sepia"); err == nil {
		t.Errorf("ParseOp(sepia) succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name  string
		op    Op
		p     Param
		valid bool
	}{
		{"brighten max", Brighten, Param{Value: 255}, true},
		{"brighten over", Brighten, Param{Value: 256}, false},
		{"contrast under", Contrast, Param{Value: -128}, false},
		{"smooth 3", Smooth, Param{Value: 3}, true},
		{"smooth 4", Smooth, Param{Value: 4}, false},
		{"sharpen negative", Sharpen, Param{Value: -1}, false},
		{"resize zero", Resize, Param{Value: 0}, false},
		{"resize 500", Resize, Param{Value: 500}, true},
		{"rotate -180", Rotate, Param{Value: -180}, true},
		{"rotate 181", Rotate, Param{Value: 181}, false},
		{"negate", Negate, Param{}, true},
		{"crop inside", Crop, Param{Region: image.Rect(1, 1, 5, 5)}, true},
		{"crop outside", Crop, Param{Region: image.Rect(5, 5, 11, 9)}, false},
		{"crop empty", Crop, Param{}, false},
		{"none", None, Param{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.op, tt.p, bounds)
			if tt.valid && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Validate error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestCropRegionError(t *testing.T) {
	_, err := Apply(noise(4, 4), Crop, Param{Region: image.Rect(0, 0, 5, 5)})
	if !errors.Is(err, raster.ErrInvalidRegion) {
		t.Errorf("error = %v, want ErrInvalidRegion", err)
	}
}

func TestApplyDoesNotModifySource(t *testing.T) {
	src := noise(6, 5)
	orig := src.Clone()
	for _, tt := range []struct {
		op Op
		p  Param
	}{
		{Brighten, Param{Value: 40}},
		{Contrast, Param{Value: 20}},
		{Negate, Param{}},
		{Smooth, Param{Value: 3}},
		{Sharpen, Param{Value: 3}},
		{Resize, Param{Value: 250}},
		{Rotate, Param{Value: 33}},
		{Crop, Param{Region: image.Rect(1, 1, 3, 3)}},
	} {
		if _, err := Apply(src, tt.op, tt.p); err != nil {
			t.Fatalf("Apply(%s): %v", tt.op, err)
		}
		if !src.Equal(orig) {
			t.Fatalf("Apply(%s) modified its source", tt.op)
		}
	}
}
