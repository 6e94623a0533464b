package transform

import (
	"image"
	"testing"

	"github.com/tstromberg/albumedit/pkg/raster"
)

func TestResize(t *testing.T) {
	tests := []struct {
		w, h    int
		percent int
		wantW   int
		wantH   int
	}{
		{10, 4, 100, 10, 4},
		{10, 4, 50, 5, 2},
		{10, 4, 250, 25, 10},
		{3, 3, 50, 2, 2},
		{10, 10, 1, 1, 1},
		{7, 5, 500, 35, 25},
	}
	for _, tt := range tests {
		got := ResizeImage(noise(tt.w, tt.h), tt.percent)
		if got.Width != tt.wantW || got.Height != tt.wantH {
			t.Errorf("resize %dx%d by %d%% = %dx%d, want %dx%d", tt.w, tt.h, tt.percent, got.Width, got.Height, tt.wantW, tt.wantH)
		}
	}
}

func TestResize100IsIdentity(t *testing.T) {
	src := noise(13, 9)
	if !ResizeImage(src, 100).Equal(src) {
		t.Errorf("resize 100%% differs from source")
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	src := noise(6, 4)
	if !RotateImage(src, 0).Equal(src) {
		t.Errorf("rotate 0 differs from source")
	}
}

func TestRotateDimensions(t *testing.T) {
	src := noise(6, 4)
	for _, deg := range []int{90, -90} {
		got := RotateImage(src, deg)
		if got.Width != 4 || got.Height != 6 {
			t.Errorf("rotate %d = %dx%d, want 4x6", deg, got.Width, got.Height)
		}
	}

	got := RotateImage(src, 45)
	// 6*cos45 + 4*sin45 = 7.07
	if got.Width != 7 || got.Height != 7 {
		t.Errorf("rotate 45 = %dx%d, want 7x7", got.Width, got.Height)
	}
}

func TestRotate180(t *testing.T) {
	src := noise(5, 3)
	for _, deg := range []int{180, -180} {
		got := RotateImage(src, deg)
		if got.Width != 5 || got.Height != 3 {
			t.Fatalf("rotate %d = %dx%d, want 5x3", deg, got.Width, got.Height)
		}
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				want := src.Pix[src.Offset(4-x, 2-y)]
				if p := got.Pix[got.Offset(x, y)]; p != want {
					t.Errorf("rotate %d (%d,%d) = %v, want %v", deg, x, y, p, want)
				}
			}
		}
	}
}

func TestRotate90Clockwise(t *testing.T) {
	src := raster.New(3, 2)
	src.Pix[src.Offset(0, 0)] = raster.RGB{R: 255}
	got := RotateImage(src, 90)
	// top-left turns clockwise into the top-right corner
	if p, _ := got.Get(1, 0); p != (raster.RGB{R: 255}) {
		t.Errorf("rotate 90 top-right = %v, want red", p)
	}
	if p, _ := got.Get(0, 0); p != (raster.RGB{}) {
		t.Errorf("rotate 90 top-left = %v, want black", p)
	}
}

func TestRotateFillsCornersBlack(t *testing.T) {
	src := raster.Filled(20, 20, raster.RGB{R: 200, G: 200, B: 200})
	got := RotateImage(src, 45)
	if p, _ := got.Get(0, 0); p != (raster.RGB{}) {
		t.Errorf("corner = %v, want black", p)
	}
	if p, _ := got.Get(got.Width/2, got.Height/2); p != (raster.RGB{R: 200, G: 200, B: 200}) {
		t.Errorf("center = %v, want source gray", p)
	}
}

func TestCropImage(t *testing.T) {
	src := noise(6, 6)
	got, err := CropImage(src, image.Rect(2, 1, 5, 6))
	if err != nil {
		t.Fatalf("CropImage: %v", err)
	}
	if got.Width != 3 || got.Height != 5 {
		t.Errorf("size = %dx%d, want 3x5", got.Width, got.Height)
	}
	if got.Pix[0] != src.Pix[src.Offset(2, 1)] {
		t.Errorf("first pixel = %v, want %v", got.Pix[0], src.Pix[src.Offset(2, 1)])
	}
}
