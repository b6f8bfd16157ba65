// Package storage persists profile image files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrNotExist is returned when an image file is not present.
	ErrNotExist = errors.New("image does not exist")

	// ErrInvalidName is returned for names that are empty or contain path elements.
	ErrInvalidName = errors.New("invalid image name")
)

// Backend names accepted in Config.Backend.
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// ImageStore saves, opens and deletes image files by name.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes the file. A missing file is not an error.
	Delete(ctx context.Context, name string) error
}

// Config selects and configures the image backend.
type Config struct {
	Backend  string `env:"BACKEND"   envDefault:"local"`
	Dir      string `env:"DIR"       envDefault:"./data/images"`
	Bucket   string `env:"BUCKET"`
	Prefix   string `env:"PREFIX"    envDefault:"profile-images/"`
	MaxBytes int64  `env:"MAX_BYTES" envDefault:"5242880"`
}

// Validate checks backend specific settings.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.Dir == "" {
			return errors.New("image directory is required for the local backend")
		}
	case BackendGCS:
		if c.Bucket == "" {
			return errors.New("image bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown image backend %q", c.Backend)
	}
	if c.MaxBytes <= 0 {
		return errors.New("image max bytes must be positive")
	}
	return nil
}

// ValidateName rejects names that could address anything other than a single file.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
