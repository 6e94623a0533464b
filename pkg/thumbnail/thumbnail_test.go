package thumbnail

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tstromberg/albumedit/pkg/imageio"
	"github.com/tstromberg/albumedit/pkg/raster"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name  string
		r     image.Rectangle
		o     Opts
		wantX int
		wantY int
	}{
		{"fixed height", image.Rect(0, 0, 400, 200), Opts{Y: 100}, 200, 100},
		{"fixed width", image.Rect(0, 0, 400, 200), Opts{X: 100}, 100, 50},
		{"both", image.Rect(0, 0, 400, 200), Opts{X: 30, Y: 40}, 30, 40},
		{"never zero", image.Rect(0, 0, 1, 500), Opts{Y: 10}, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := Size(tt.r, tt.o)
			if err != nil {
				t.Fatalf("Size: %v", err)
			}
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Size = %dx%d, want %dx%d", x, y, tt.wantX, tt.wantY)
			}
		})
	}

	if _, _, err := Size(image.Rect(0, 0, 0, 10), Opts{Y: 5}); err == nil {
		t.Errorf("Size of empty image succeeded")
	}
	if _, _, err := Size(image.Rect(0, 0, 10, 10), Opts{}); err == nil {
		t.Errorf("Size without dimensions succeeded")
	}
}

func TestRelPath(t *testing.T) {
	mod := time.Date(2014, 10, 8, 12, 30, 0, 0, time.UTC)
	got := RelPath("2014/hills.png", Opts{Y: 180}, mod)
	want := filepath.Join("2014", "_", "hills@y180_20141008123000.jpg")
	if got != want {
		t.Errorf("RelPath = %q, want %q", got, want)
	}
}

// countingLoader counts decodes of source images.
type countingLoader struct {
	imageio.Store
	loads int
}

func (c *countingLoader) Load(path string) (*raster.Buffer, error) {
	c.loads++
	return c.Store.Load(path)
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	l := &countingLoader{}
	if err := l.Save(raster.Filled(64, 32, raster.RGB{R: 200, G: 100, B: 50}), src); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "thumbs", "a.jpg")
	m, err := Update(l, src, dest, Opts{Y: 16, Quality: 85})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if m.X != 32 || m.Y != 16 || m.Path != dest {
		t.Errorf("Update = %+v, want 32x16 at %s", m, dest)
	}
	if l.loads != 1 {
		t.Errorf("loads = %d, want 1", l.loads)
	}

	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}

	// A fresh thumbnail is reused. Small files are always rebuilt.
	st, _ := os.Stat(dest)
	m2, err := Update(l, src, dest, Opts{Y: 16, Quality: 85})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	wantLoads := 1
	if st.Size() <= 128 {
		wantLoads = 2
	}
	if l.loads != wantLoads || m2.X != 32 || m2.Y != 16 {
		t.Errorf("second Update = %+v with %d loads, want %d", m2, l.loads, wantLoads)
	}

	if _, err := Update(l, filepath.Join(dir, "missing.png"), dest, Opts{Y: 16}); err == nil {
		t.Errorf("Update of missing source succeeded")
	}
}
