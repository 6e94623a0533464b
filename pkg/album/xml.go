package album

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"
)

// xmlAlbum is the on-disk layout. Field order fixes the element order.
type xmlAlbum struct {
	XMLName xml.Name   `xml:"album"`
	Photos  []xmlPhoto `xml:"photo"`
}

type xmlPhoto struct {
	File        string `xml:"file"`
	Date        string `xml:"date"`
	Location    string `xml:"location"`
	Description string `xml:"description"`
}

// Read parses an album document. The cursor starts on the first photo.
func Read(r io.Reader) (*Album, error) {
	var x xmlAlbum
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	ps := make([]*Photo, 0, len(x.Photos))
	for _, p := range x.Photos {
		ps = append(ps, &Photo{File: p.File, Date: p.Date, Location: p.Location, Description: p.Description})
	}
	return FromPhotos(ps), nil
}

// Write serializes the album with four-space indentation.
func (a *Album) Write(w io.Writer) error {
	x := xmlAlbum{Photos: make([]xmlPhoto, 0, len(a.photos))}
	for _, p := range a.photos {
		x.Photos = append(x.Photos, xmlPhoto{File: p.File, Date: p.Date, Location: p.Location, Description: p.Description})
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}

// Open reads the album stored at path.
func Open(path string) (*Album, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	klog.Infof("opened album %s with %d photos", path, a.Len())
	return a, nil
}

// Save writes the album to path.
func (a *Album) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if err := a.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	klog.Infof("saved album with %d photos to %s", a.Len(), path)
	return nil
}
