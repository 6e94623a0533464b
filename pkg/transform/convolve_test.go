package transform

import (
	"testing"

	"github.com/tstromberg/albumedit/pkg/raster"
)

func TestZeroPassesIsIdentity(t *testing.T) {
	src := noise(8, 6)
	if !SmoothImage(src, 0).Equal(src) {
		t.Errorf("smooth(0) changed the image")
	}
	if !SharpenImage(src, 0).Equal(src) {
		t.Errorf("sharpen(0) changed the image")
	}
}

func TestBorderUnchanged(t *testing.T) {
	src := noise(7, 5)
	for passes := 1; passes <= 3; passes++ {
		for name, got := range map[string]*raster.Buffer{
			"smooth":  SmoothImage(src, passes),
			"sharpen": SharpenImage(src, passes),
		} {
			for y := 0; y < src.Height; y++ {
				for x := 0; x < src.Width; x++ {
					if x != 0 && y != 0 && x != src.Width-1 && y != src.Height-1 {
						continue
					}
					if got.Pix[got.Offset(x, y)] != src.Pix[src.Offset(x, y)] {
						t.Errorf("%s(%d) changed border pixel (%d,%d)", name, passes, x, y)
					}
				}
			}
		}
	}
}

func TestSharpenUniformFixedPoint(t *testing.T) {
	src := raster.Filled(5, 5, raster.RGB{R: 10, G: 10, B: 10})
	got := SharpenImage(src, 1)
	if p, _ := got.Get(2, 2); p != (raster.RGB{R: 10, G: 10, B: 10}) {
		t.Errorf("sharpen (2,2) = %v, want 10s", p)
	}
	if !got.Equal(src) {
		t.Errorf("uniform field changed by sharpen")
	}
}

func TestSmoothMean(t *testing.T) {
	src := raster.New(3, 3)
	for i := range src.Pix {
		src.Pix[i] = raster.RGB{R: uint8(i), G: 10, B: 0}
	}
	src.Pix[4] = raster.RGB{R: 100, G: 100, B: 1}

	got := SmoothImage(src, 1)
	// R: 0+1+2+3+100+5+6+7+8 = 132; G: 8*10+100 = 180; B: 1
	if p, _ := got.Get(1, 1); p != (raster.RGB{R: 14, G: 20, B: 0}) {
		t.Errorf("smooth center = %v, want {14 20 0}", p)
	}
}

func TestSmoothPassesReadPreviousGeneration(t *testing.T) {
	src := raster.New(5, 3)
	src.Pix[src.Offset(2, 1)] = raster.RGB{R: 90, G: 90, B: 90}

	one := SmoothImage(src, 1)
	// each interior pixel on row 1 sees the spike once
	for x := 1; x <= 3; x++ {
		if p, _ := one.Get(x, 1); p.R != 10 {
			t.Errorf("pass 1 (%d,1) = %v, want 10", x, p)
		}
	}

	two := SmoothImage(src, 2)
	// (1,1) sees 10 + 10 from pass one; (2,1) sees 10+10+10
	if p, _ := two.Get(1, 1); p.R != 2 {
		t.Errorf("pass 2 (1,1) = %v, want 2", p)
	}
	if p, _ := two.Get(2, 1); p.R != 3 {
		t.Errorf("pass 2 (2,1) = %v, want 3", p)
	}
}

func TestSharpenClamps(t *testing.T) {
	src := raster.Filled(3, 3, raster.RGB{R: 200, G: 0, B: 50})
	src.Pix[4] = raster.RGB{R: 250, G: 10, B: 0}
	got := SharpenImage(src, 1)
	// R: 1250-800 = 450 -> 255; G: 50-0 = 50; B: 0-200 -> 0
	if p, _ := got.Get(1, 1); p != (raster.RGB{R: 255, G: 50, B: 0}) {
		t.Errorf("sharpen center = %v", p)
	}
}

func TestTinyImagesUnchanged(t *testing.T) {
	for _, src := range []*raster.Buffer{noise(2, 2), noise(1, 5), noise(5, 2)} {
		if !SmoothImage(src, 3).Equal(src) || !SharpenImage(src, 3).Equal(src) {
			t.Errorf("%dx%d image without interior changed", src.Width, src.Height)
		}
	}
}
