// albumedit applies one edit or album change to a photo album
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/editor"
	"github.com/tstromberg/albumedit/pkg/imageio"
	"github.com/tstromberg/albumedit/pkg/transform"
)

var (
	configPath  = flag.String("config", "", "YAML configuration file")
	albumPath   = flag.String("album", "", "album XML file (created if missing)")
	backupDir   = flag.String("backup-dir", "", "copy images here before overwriting them")
	jpegQuality = flag.Int("jpeg-quality", 0, "JPEG quality when saving edits")
	index       = flag.Int("index", 0, "position of the photo to work on")

	opName = flag.String("op", "", "edit to apply: brighten, contrast, negate, smooth, sharpen, resize, rotate, crop")
	value  = flag.Int("value", 0, "parameter of the edit")
	region = flag.String("region", "", "crop region as x0,y0,x1,y1")

	add         = flag.String("add", "", "image file to add after the selected photo")
	importDir   = flag.String("import", "", "directory of images to add after the selected photo")
	remove      = flag.Bool("delete", false, "remove the selected photo from the album")
	move        = flag.String("move", "", "move the selected photo: forward or backward")
	date        = flag.String("date", "", "new date for the selected photo")
	location    = flag.String("location", "", "new location for the selected photo")
	description = flag.String("description", "", "new description for the selected photo")
	saveAs      = flag.String("save-as", "", "write the album to this file instead")
	showConfig  = flag.Bool("show-config", false, "print the effective configuration")
	watchFlag   = flag.Bool("watch", false, "watch the album file and list it on every change")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c := editor.NewConfig()
	if *configPath != "" {
		var err error
		c, err = editor.LoadConfig(*configPath)
		if err != nil {
			klog.Exitf("config: %v", err)
		}
	}
	if *albumPath != "" {
		c.Album = *albumPath
	}
	if *backupDir != "" {
		c.BackupDir = *backupDir
	}
	if *jpegQuality != 0 {
		c.JPEGQuality = *jpegQuality
	}

	if *showConfig {
		fmt.Print(c.AsYaml())
	}

	if c.Album == "" {
		klog.Exitf("--album is a required flag")
	}

	e := editor.New(c, &imageio.Store{JPEGQuality: c.JPEGQuality, BackupDir: c.BackupDir})
	if _, err := os.Stat(c.Album); err == nil {
		if err := e.OpenAlbum(c.Album); err != nil {
			klog.Exitf("open failed: %v", err)
		}
	} else {
		klog.Infof("creating new album %s", c.Album)
		e.NewAlbum()
	}

	if e.Album().Len() > 0 && !e.Select(*index) {
		klog.Exitf("no photo at position %d (album has %d)", *index, e.Album().Len())
	}

	changed, err := apply(e)
	if err != nil {
		klog.Exitf("%v", err)
	}

	switch {
	case *saveAs != "":
		if err := e.SaveAlbumAs(*saveAs); err != nil {
			klog.Exitf("save failed: %v", err)
		}
	case changed && e.Path() != "":
		if err := e.SaveAlbum(); err != nil {
			klog.Exitf("save failed: %v", err)
		}
	case changed:
		if err := e.SaveAlbumAs(c.Album); err != nil {
			klog.Exitf("save failed: %v", err)
		}
	}

	list(e)

	if !*watchFlag {
		return
	}

	path := e.Path()
	if path == "" {
		path = c.Album
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := watch(c, path); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}()
	wg.Wait()
}

// apply performs the album changes and the edit requested on the command line.
// It reports whether the album document changed.
func apply(e *editor.Editor) (bool, error) {
	changed := false

	if *add != "" {
		if err := e.AddPhoto(*add); err != nil {
			return false, err
		}
		changed = true
	}

	if *importDir != "" {
		n, err := e.ImportDir(*importDir)
		if err != nil {
			return false, err
		}
		changed = changed || n > 0
	}

	if *date != "" || *location != "" || *description != "" {
		p := e.CurrentRecord()
		if p == nil {
			return false, fmt.Errorf("album is empty")
		}
		d, l, desc := p.Date, p.Location, p.Description
		if *date != "" {
			d = *date
		}
		if *location != "" {
			l = *location
		}
		if *description != "" {
			desc = *description
		}
		e.EditMetadata(d, l, desc)
		changed = true
	}

	if *opName != "" {
		if err := edit(e); err != nil {
			return false, err
		}
	}

	switch *move {
	case "":
	case "forward":
		e.MoveForward()
		changed = true
	case "backward":
		e.MoveBackward()
		changed = true
	default:
		return false, fmt.Errorf("--move must be forward or backward, not %q", *move)
	}

	if *remove {
		e.DeleteCurrent()
		changed = true
	}

	return changed, nil
}

// edit runs one edit through preview and confirmation.
func edit(e *editor.Editor) error {
	op, err := transform.ParseOp(*opName)
	if err != nil {
		return err
	}
	if e.CurrentRecord() == nil {
		return fmt.Errorf("album is empty")
	}

	if op == transform.Crop {
		var r image.Rectangle
		if _, err := fmt.Sscanf(*region, "%d,%d,%d,%d", &r.Min.X, &r.Min.Y, &r.Max.X, &r.Max.Y); err != nil {
			return fmt.Errorf("--region %q: %w", *region, err)
		}
		err = e.BeginCrop(r)
	} else {
		err = e.BeginEdit(op, *value)
	}
	if err != nil {
		return err
	}

	if p := e.PreviewImage(); p != nil {
		klog.Infof("%s %s: %dx%d", op, e.CurrentRecord().File, p.Width, p.Height)
	}

	if err := e.RequestConfirm(); err != nil {
		return err
	}
	return e.Confirm()
}

func list(e *editor.Editor) {
	for i, p := range e.Album().Photos() {
		marker := " "
		if i == e.Album().Index() {
			marker = "*"
		}
		fmt.Printf("%s %3d  %s  %q  %q  %q\n", marker, i, p.File, p.Date, p.Location, p.Description)
	}
}

// watch lists the album again whenever its file changes.
func watch(c *editor.Config, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("abs: %w", err)
	}

	// Watch the directory so replaced files are seen too.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	klog.Infof("watching %s ...", abs)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			klog.V(1).Infof("event: %v", event)
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			e := editor.New(c, &imageio.Store{})
			if err := e.OpenAlbum(abs); err != nil {
				klog.Warningf("reload failed: %v", err)
				continue
			}
			list(e)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
