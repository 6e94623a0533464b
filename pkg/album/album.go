// Package album provides an ordered photo album with a movable cursor.
package album

import (
	"k8s.io/klog/v2"
)

// Photo is a single album entry.
type Photo struct {
	File        string
	Date        string
	Location    string
	Description string
}

// NewPhoto returns a photo for path with blank metadata.
func NewPhoto(path string) *Photo {
	return &Photo{File: path}
}

// Album is an ordered sequence of photos. Insertion order is display order.
// The cursor is -1 if and only if the album is empty.
type Album struct {
	photos []*Photo
	cursor int
}

// New returns an empty album.
func New() *Album {
	return &Album{cursor: -1}
}

// FromPhotos returns an album holding ps with the cursor on the first photo.
func FromPhotos(ps []*Photo) *Album {
	a := &Album{photos: append([]*Photo{}, ps...), cursor: -1}
	if len(a.photos) > 0 {
		a.cursor = 0
	}
	return a
}

// Len returns the number of photos.
func (a *Album) Len() int {
	return len(a.photos)
}

// Index returns the cursor position, or -1 if the album is empty.
func (a *Album) Index() int {
	return a.cursor
}

// Current returns the photo under the cursor, or nil.
func (a *Album) Current() *Photo {
	if a.cursor < 0 {
		return nil
	}
	return a.photos[a.cursor]
}

// At returns the photo at position i.
func (a *Album) At(i int) *Photo {
	return a.photos[i]
}

// Photos returns the photos in display order.
func (a *Album) Photos() []*Photo {
	return append([]*Photo{}, a.photos...)
}

// Select moves the cursor to position i. Out of range positions are ignored.
func (a *Album) Select(i int) bool {
	if i < 0 || i >= len(a.photos) {
		return false
	}
	a.cursor = i
	return true
}

// AddAfter inserts p right after the cursor (or as the only photo) and makes it current.
func (a *Album) AddAfter(p *Photo) {
	if a.cursor < 0 {
		a.photos = append(a.photos, p)
		a.cursor = len(a.photos) - 1
		klog.V(1).Infof("added %s to empty album", p.File)
		return
	}

	at := a.cursor + 1
	a.photos = append(a.photos, nil)
	copy(a.photos[at+1:], a.photos[at:])
	a.photos[at] = p
	a.cursor = at
	klog.V(1).Infof("added %s at %d", p.File, at)
}

// DeleteCurrent removes the current photo. The cursor moves to the next photo
// if there is one, otherwise to the previous one.
func (a *Album) DeleteCurrent() {
	if a.cursor < 0 {
		return
	}

	i := a.cursor
	klog.V(1).Infof("deleting %s at %d", a.photos[i].File, i)
	a.photos = append(a.photos[:i], a.photos[i+1:]...)

	switch {
	case len(a.photos) == 0:
		a.cursor = -1
	case i < len(a.photos):
		// the next photo slid into position i
	default:
		a.cursor = i - 1
	}
}

// MoveForward swaps the current photo with the next one. The cursor follows the moved photo.
func (a *Album) MoveForward() {
	if a.cursor < 0 || a.cursor+1 >= len(a.photos) {
		return
	}
	a.swap(a.cursor, a.cursor+1)
	a.cursor++
}

// MoveBackward swaps the current photo with the previous one. The cursor follows the moved photo.
func (a *Album) MoveBackward() {
	if a.cursor <= 0 {
		return
	}
	a.swap(a.cursor, a.cursor-1)
	a.cursor--
}

func (a *Album) swap(i, j int) {
	a.photos[i], a.photos[j] = a.photos[j], a.photos[i]
}

// PageForward moves the cursor to the next photo.
func (a *Album) PageForward() bool {
	if a.cursor < 0 || a.cursor+1 >= len(a.photos) {
		return false
	}
	a.cursor++
	return true
}

// PageBackward moves the cursor to the previous photo.
func (a *Album) PageBackward() bool {
	if a.cursor <= 0 {
		return false
	}
	a.cursor--
	return true
}

// EditCurrent replaces the metadata of the current photo.
func (a *Album) EditCurrent(date, location, description string) {
	p := a.Current()
	if p == nil {
		return
	}
	p.Date = date
	p.Location = location
	p.Description = description
}
