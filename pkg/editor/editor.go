// Package editor ties an album document to the edit session of its current photo.
//
// An Editor owns at most one open album. The image of the current photo is loaded
// lazily and edited through a session.Session; any cursor movement cancels the
// active edit and drops the loaded image.
package editor

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/album"
	"github.com/tstromberg/albumedit/pkg/imageio"
	"github.com/tstromberg/albumedit/pkg/raster"
	"github.com/tstromberg/albumedit/pkg/session"
	"github.com/tstromberg/albumedit/pkg/transform"
)

var (
	// ErrNoAlbum is returned by operations that need an open album.
	ErrNoAlbum = errors.New("no album is open")
	// ErrNoPath is returned when saving an album that was never named.
	ErrNoPath = errors.New("album has no file name")
	// ErrUnsupported is returned when adding a file that is not a known image format.
	ErrUnsupported = errors.New("unsupported image format")
)

// Store loads and persists images.
type Store interface {
	Load(path string) (*raster.Buffer, error)
	Save(b *raster.Buffer, path string) error
}

// Editor is the interaction surface for browsing and editing an album.
type Editor struct {
	c     *Config
	store Store

	album *album.Album
	path  string

	sess *session.Session
}

// New returns an editor with no album open.
func New(c *Config, store Store) *Editor {
	return &Editor{c: c, store: store}
}

// Album returns the open album, or nil.
func (e *Editor) Album() *album.Album { return e.album }

// Path returns the file name of the open album, or "" if it was never saved.
func (e *Editor) Path() string { return e.path }

// NewAlbum replaces the open album with an empty, unnamed one.
func (e *Editor) NewAlbum() {
	e.drop()
	e.album = album.New()
	e.path = ""
	klog.V(1).Infof("new album")
}

// OpenAlbum replaces the open album with the one stored at path.
// On failure the open album is left as it was.
func (e *Editor) OpenAlbum(path string) error {
	a, err := album.Open(path)
	if err != nil {
		return fmt.Errorf("open album: %w", err)
	}
	e.drop()
	e.album = a
	e.path = path
	return nil
}

// SaveAlbum writes the open album to the file it was opened from.
func (e *Editor) SaveAlbum() error {
	if e.album == nil {
		return fmt.Errorf("save album: %w", ErrNoAlbum)
	}
	if e.path == "" {
		return fmt.Errorf("save album: %w", ErrNoPath)
	}
	return e.album.Save(e.path)
}

// SaveAlbumAs writes the open album to path, adding an .xml extension when missing.
// The album is named path afterwards.
func (e *Editor) SaveAlbumAs(path string) error {
	if e.album == nil {
		return fmt.Errorf("save album: %w", ErrNoAlbum)
	}
	if !strings.EqualFold(filepath.Ext(path), ".xml") {
		path += ".xml"
	}
	if err := e.album.Save(path); err != nil {
		return err
	}
	e.path = path
	return nil
}

// CloseAlbum discards the open album and any active edit.
func (e *Editor) CloseAlbum() {
	e.drop()
	e.album = nil
	e.path = ""
}

// CurrentRecord returns the photo under the cursor, or nil.
func (e *Editor) CurrentRecord() *album.Photo {
	if e.album == nil {
		return nil
	}
	return e.album.Current()
}

// SelectNext moves to the next photo. It reports whether the cursor moved.
func (e *Editor) SelectNext() bool {
	if e.album == nil {
		return false
	}
	e.drop()
	return e.album.PageForward()
}

// SelectPrevious moves to the previous photo. It reports whether the cursor moved.
func (e *Editor) SelectPrevious() bool {
	if e.album == nil {
		return false
	}
	e.drop()
	return e.album.PageBackward()
}

// Select moves to the photo at position i.
func (e *Editor) Select(i int) bool {
	if e.album == nil {
		return false
	}
	e.drop()
	return e.album.Select(i)
}

// CurrentImage returns the committed image of the current photo, loading it on first use.
// It returns nil without error when there is no current photo.
func (e *Editor) CurrentImage() (*raster.Buffer, error) {
	s, err := e.session()
	if s == nil || err != nil {
		return nil, err
	}
	return s.Committed(), nil
}

// PreviewImage returns the pending result of the active edit, or nil.
func (e *Editor) PreviewImage() *raster.Buffer {
	if e.sess == nil {
		return nil
	}
	return e.sess.Preview()
}

// State returns the state of the edit workflow.
func (e *Editor) State() session.State {
	if e.sess == nil {
		return session.Idle
	}
	return e.sess.State()
}

// Op returns the active edit operation, or transform.None.
func (e *Editor) Op() transform.Op {
	if e.sess == nil {
		return transform.None
	}
	return e.sess.Op()
}

// BeginEdit starts op on the current photo. It does nothing when there is no current photo.
func (e *Editor) BeginEdit(op transform.Op, value int) error {
	s, err := e.session()
	if s == nil || err != nil {
		return err
	}
	return s.Begin(op, value)
}

// BeginCrop starts a crop of region r on the current photo.
func (e *Editor) BeginCrop(r image.Rectangle) error {
	s, err := e.session()
	if s == nil || err != nil {
		return err
	}
	return s.BeginCrop(r)
}

// SetParameter updates the value of the active edit.
func (e *Editor) SetParameter(value int) error {
	if e.sess == nil {
		return fmt.Errorf("set parameter: %w", session.ErrNotPreviewing)
	}
	return e.sess.SetParameter(value)
}

// SetRegion updates the region of the active crop.
func (e *Editor) SetRegion(r image.Rectangle) error {
	if e.sess == nil {
		return fmt.Errorf("set region: %w", session.ErrNotPreviewing)
	}
	return e.sess.SetRegion(r)
}

// RequestConfirm asks for the active edit to be confirmed.
func (e *Editor) RequestConfirm() error {
	if e.sess == nil {
		return fmt.Errorf("request confirm: %w", session.ErrNotPreviewing)
	}
	return e.sess.RequestConfirm()
}

// Confirm writes the active edit to the photo file.
func (e *Editor) Confirm() error {
	if e.sess == nil {
		return fmt.Errorf("confirm: %w", session.ErrNotPending)
	}
	return e.sess.Confirm()
}

// Cancel discards the active edit.
func (e *Editor) Cancel() {
	if e.sess != nil {
		e.sess.Cancel()
	}
}

// AddPhoto inserts a photo for path after the current one and makes it current.
func (e *Editor) AddPhoto(path string) error {
	if e.album == nil {
		return fmt.Errorf("add %s: %w", path, ErrNoAlbum)
	}
	if !imageio.Supported(path) {
		return fmt.Errorf("add %s: %w", path, ErrUnsupported)
	}

	p := album.NewPhoto(path)
	if l := e.c.dateLayout(); l != "" {
		d, err := album.ExifDate(path, l)
		if err != nil {
			klog.V(1).Infof("no date for %s: %v", path, err)
		}
		p.Date = d
	}

	e.drop()
	e.album.AddAfter(p)
	klog.Infof("added %s", path)
	return nil
}

// ImportDir adds every image found under root, in walk order, after the current photo.
// It returns the number of photos added.
func (e *Editor) ImportDir(root string) (int, error) {
	if e.album == nil {
		return 0, fmt.Errorf("import %s: %w", root, ErrNoAlbum)
	}

	ps, err := album.Find(root, e.c.dateLayout())
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}

	e.drop()
	for _, p := range ps {
		e.album.AddAfter(p)
	}
	klog.Infof("imported %d photos from %s", len(ps), root)
	return len(ps), nil
}

// DeleteCurrent removes the current photo from the album. The image file is kept.
func (e *Editor) DeleteCurrent() {
	if e.album == nil {
		return
	}
	e.drop()
	e.album.DeleteCurrent()
}

// MoveForward moves the current photo one place later in the album.
func (e *Editor) MoveForward() {
	if e.album == nil {
		return
	}
	e.drop()
	e.album.MoveForward()
}

// MoveBackward moves the current photo one place earlier in the album.
func (e *Editor) MoveBackward() {
	if e.album == nil {
		return
	}
	e.drop()
	e.album.MoveBackward()
}

// EditMetadata replaces the date, location and description of the current photo.
func (e *Editor) EditMetadata(date, location, description string) {
	if e.album == nil {
		return
	}
	e.album.EditCurrent(date, location, description)
}

// session returns the edit session of the current photo, loading its image if needed.
func (e *Editor) session() (*session.Session, error) {
	p := e.CurrentRecord()
	if p == nil {
		return nil, nil
	}
	if e.sess != nil && e.sess.Path() == p.File {
		return e.sess, nil
	}

	b, err := e.store.Load(p.File)
	if err != nil {
		return nil, err
	}
	e.sess = session.New(b, p.File, e.store)
	return e.sess, nil
}

// drop cancels any active edit and forgets the loaded image.
func (e *Editor) drop() {
	if e.sess == nil {
		return
	}
	e.sess.Cancel()
	e.sess = nil
}
