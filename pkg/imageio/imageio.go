// Package imageio loads and persists album images as raster buffers.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/otiai10/copy"
	"github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/raster"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrDecode       = errors.New("decode failed")
	ErrWrite        = errors.New("write failed")
)

// BackupTimeFormat is used to name backup copies.
var BackupTimeFormat = "20060102-150405"

// Extensions lists the file extensions that can be loaded and saved.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".ppm"}

// Supported returns true if path has a loadable image extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Store reads and writes image files.
type Store struct {
	// JPEGQuality is used when saving .jpg files.
	JPEGQuality int
	// BackupDir, if set, receives a copy of every file before it is overwritten.
	BackupDir string
}

// Load decodes the image at path.
func (s *Store) Load(path string) (*raster.Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("load %s: %w: %w", path, ErrDecode, err)
	}

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %w", path, ErrDecode, err)
	}

	b := raster.FromImage(img)
	klog.V(1).Infof("loaded %s: %dx%d", path, b.Width, b.Height)
	return b, nil
}

// Save encodes b to path, choosing the format from the extension.
func (s *Store) Save(b *raster.Buffer, path string) error {
	enc, err := s.encoder(path)
	if err != nil {
		return fmt.Errorf("save %s: %w: %w", path, ErrWrite, err)
	}

	if err := s.backup(path); err != nil {
		return fmt.Errorf("save %s: %w: %w", path, ErrWrite, err)
	}

	if err := imgio.Save(path, b, enc); err != nil {
		klog.Errorf("save failed: %v", err)
		return fmt.Errorf("save %s: %w: %w", path, ErrWrite, err)
	}

	klog.V(1).Infof("saved %dx%d image to %s", b.Width, b.Height, path)
	return nil
}

// Encoder returns the encoder Save would use for path.
func (s *Store) Encoder(path string) (imgio.Encoder, error) {
	return s.encoder(path)
}

func (s *Store) encoder(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		q := s.JPEGQuality
		if q <= 0 {
			q = 95
		}
		return imgio.JPEGEncoder(q), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".ppm":
		return ppmEncoder, nil
	}
	return nil, fmt.Errorf("unsupported format %q", filepath.Ext(path))
}

func ppmEncoder(w io.Writer, img image.Image) error {
	return netpbm.Encode(w, img, &netpbm.EncodeOptions{Format: netpbm.PPM, MaxValue: 255})
}

// backup copies an existing file into BackupDir so an overwrite can be recovered by hand.
func (s *Store) backup(path string) error {
	if s.BackupDir == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		klog.V(1).Infof("no backup of %s: %v", path, err)
		return nil
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	dest := filepath.Join(s.BackupDir, fmt.Sprintf("%s@%s%s", strings.TrimSuffix(base, ext), time.Now().Format(BackupTimeFormat), ext))

	if err := os.MkdirAll(s.BackupDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := copy.Copy(path, dest); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	klog.Infof("backed up %s to %s", path, dest)
	return nil
}
