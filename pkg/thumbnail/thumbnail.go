// Package thumbnail creates scaled-down JPEG copies of album photos.
package thumbnail

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/raster"
)

var ModTimeFormat = "20060102150405"

// Opts describes one thumbnail size. A zero X or Y keeps the aspect ratio.
type Opts struct {
	X       int
	Y       int
	Quality int
}

// Sizes are the thumbnails generated for each photo.
var Sizes = map[string]Opts{
	"Tiny":  {Y: 180, Quality: 75},
	"Album": {Y: 640, Quality: 85},
}

// Meta describes a thumbnail on disk.
type Meta struct {
	X    int
	Y    int
	Path string
}

// Loader decodes source images.
type Loader interface {
	Load(path string) (*raster.Buffer, error)
}

// RelPath returns where the thumbnail of the photo at rel lives, relative to the thumbnail root.
// The source modification time is part of the name so edited photos get fresh thumbnails.
func RelPath(rel string, t Opts, mod time.Time) string {
	base := filepath.Base(rel)
	noExt := strings.TrimSuffix(base, filepath.Ext(base))

	dimensions := ""
	if t.X != 0 {
		dimensions = fmt.Sprintf("x%d", t.X)
	}
	if t.Y != 0 {
		dimensions = fmt.Sprintf("y%d", t.Y)
	}

	return filepath.Join(filepath.Dir(rel), "_", fmt.Sprintf("%s@%s_%s.jpg", noExt, dimensions, mod.Format(ModTimeFormat)))
}

// Update writes the thumbnail of src to path unless an up-to-date copy already exists.
func Update(l Loader, src string, path string, t Opts) (*Meta, error) {
	sst, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	st, err := os.Stat(path)
	if err == nil && st.Size() > int64(128) && !sst.ModTime().After(st.ModTime()) {
		m, err := read(path)
		if err == nil {
			klog.V(1).Infof("found thumb: %+v", *m)
			return m, nil
		}
		klog.Warningf("unable to read thumb: %v", err)
	}

	b, err := l.Load(src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return Create(b, path, t)
}

// Size returns the thumbnail dimensions for an image of bounds r.
func Size(r image.Rectangle, t Opts) (int, int, error) {
	if r.Dx() == 0 || r.Dy() == 0 {
		return 0, 0, fmt.Errorf("empty image: %v", r)
	}
	if t.X == 0 && t.Y == 0 {
		return 0, 0, fmt.Errorf("no thumbnail size in %+v", t)
	}

	x, y := t.X, t.Y
	if t.X == 0 {
		scale := float64(r.Dy()) / float64(t.Y)
		x = max(1, int(float64(r.Dx())/scale))
	}
	if t.Y == 0 {
		scale := float64(r.Dx()) / float64(t.X)
		y = max(1, int(float64(r.Dy())/scale))
	}
	return x, y, nil
}

// Create resizes i with a Lanczos filter and saves it as a JPEG at path.
func Create(i image.Image, path string, t Opts) (*Meta, error) {
	x, y, err := Size(i.Bounds(), t)
	if err != nil {
		return nil, err
	}
	klog.Infof("creating %dx%d thumb: %s", x, y, path)

	rimg := transform.Resize(i, x, y, transform.Lanczos)
	if err := imgio.Save(path, rimg, imgio.JPEGEncoder(t.Quality)); err != nil {
		klog.Errorf("save failed: %s", err)
		return nil, fmt.Errorf("save: %w", err)
	}

	return &Meta{X: rimg.Bounds().Dx(), Y: rimg.Bounds().Dy(), Path: path}, nil
}

func read(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	ic, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode: %w", err)
	}

	return &Meta{X: ic.Width, Y: ic.Height, Path: path}, nil
}
