// mkalbum builds an album file from a directory of photos
package main

import (
	"flag"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/album"
	"github.com/tstromberg/albumedit/pkg/imageio"
	"github.com/tstromberg/albumedit/pkg/thumbnail"
)

var (
	out       = flag.String("out", "album.xml", "album file to write")
	dates     = flag.Bool("dates", true, "fill in photo dates from EXIF data")
	thumbsDir = flag.String("thumbs", "", "also write thumbnails into this directory")
	dryRun    = flag.Bool("n", false, "dry-run mode, don't write anything")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if flag.NArg() != 1 {
		klog.Exitf("usage: mkalbum [flags] <photo directory>")
	}
	root := flag.Arg(0)

	layout := ""
	if *dates {
		layout = album.DateFormat
	}

	ps, err := album.Find(root, layout)
	if err != nil {
		klog.Exitf("unable to find photos: %v", err)
	}

	for _, p := range ps {
		klog.Infof("%s %q", p.File, p.Date)
	}

	if *dryRun {
		return
	}

	if *thumbsDir != "" {
		store := &imageio.Store{}
		for _, p := range ps {
			if err := thumbs(store, root, p.File); err != nil {
				klog.Warningf("thumbnails for %s: %v", p.File, err)
			}
		}
	}

	if err := album.FromPhotos(ps).Save(*out); err != nil {
		klog.Exitf("save failed: %v", err)
	}
}

func thumbs(l thumbnail.Loader, root string, path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	for name, t := range thumbnail.Sizes {
		m, err := thumbnail.Update(l, path, filepath.Join(*thumbsDir, thumbnail.RelPath(rel, t, st.ModTime())), t)
		if err != nil {
			return err
		}
		klog.V(1).Infof("%s thumb: %+v", name, m)
	}
	return nil
}
