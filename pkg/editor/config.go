package editor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/tstromberg/albumedit/pkg/album"
)

/* Example config file ...

album: /home/me/photos/2014.xml
backupdir: /home/me/photos/.backup
jpegquality: 90
exifdates: true
dateformat: January 2, 2006

*/

// Config holds configuration for the editor.
type Config struct {
	// Album is opened at startup when set.
	Album string `yaml:"album"`
	// BackupDir receives a copy of each image before it is overwritten.
	BackupDir   string `yaml:"backupdir"`
	JPEGQuality int    `yaml:"jpegquality"`
	// ExifDates prefills the date of added photos from their EXIF data.
	ExifDates  bool   `yaml:"exifdates"`
	DateFormat string `yaml:"dateformat"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		JPEGQuality: 95,
		ExifDates:   true,
		DateFormat:  album.DateFormat,
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	c := NewConfig()

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(bs, c); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return nil, fmt.Errorf("jpegquality %d is outside 1..100", c.JPEGQuality)
	}
	if c.DateFormat == "" {
		c.DateFormat = album.DateFormat
	}
	return c, nil
}

// AsYaml renders the configuration as a YAML document.
func (c *Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("yaml err: %v", err)
	}
	return string(b)
}

// dateLayout is the layout used to prefill photo dates, or empty when disabled.
func (c *Config) dateLayout() string {
	if !c.ExifDates {
		return ""
	}
	return c.DateFormat
}
