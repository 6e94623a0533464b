package album

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/rwcarlsen/goexif/exif"
	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/imageio"
)

// DateFormat is how photo dates are written into new records.
var DateFormat = "January 2, 2006"

// ExifDate returns the capture date stored in the EXIF data of path, formatted with layout.
func ExifDate(path string, layout string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return "", fmt.Errorf("exif decode: %w", err)
	}

	t, err := x.DateTime()
	if err != nil {
		return "", fmt.Errorf("exif date: %w", err)
	}
	return t.Format(layout), nil
}

// Find walks root and returns a photo for every image file, in walk order.
// Dot files and dot directories are skipped. If dateLayout is not empty, dates
// are filled in from EXIF where available.
func Find(root string, dateLayout string) ([]*Photo, error) {
	found := []*Photo{}
	root = filepath.Clean(root)

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if filepath.Clean(path) != root && strings.HasPrefix(filepath.Base(path), ".") {
				return godirwalk.SkipThis
			}

			if de.IsDir() || !imageio.Supported(path) {
				return nil
			}

			klog.V(1).Infof("found %s", path)
			p := NewPhoto(path)
			if dateLayout != "" {
				d, err := ExifDate(path, dateLayout)
				if err != nil {
					klog.V(1).Infof("no date for %s: %v", path, err)
				}
				p.Date = d
			}
			found = append(found, p)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return found, nil
}
