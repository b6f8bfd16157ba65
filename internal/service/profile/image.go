package profile

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	"github.com/janisto/travel-profiles/internal/platform/storage"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// newImageName returns a random file name whose extension follows contentType.
func newImageName(contentType string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	ext, ok := imageExtensions[mediaType]
	if !ok {
		ext = ".jpg"
	}
	id := uuid.New()
	return hex.EncodeToString(id[:]) + ext
}

func imageContentType(name string) string {
	ext := path.Ext(name)
	for ct, e := range imageExtensions {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// UpdateImage stores the upload under a fresh name and points the profile at it.
// The previous file is removed once the row references the new one.
func (m *Manager) UpdateImage(ctx context.Context, customerID int64, upload *ImageUpload) (*ImageRef, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if upload == nil || upload.Reader == nil || upload.Size == 0 {
		m.audit(ctx, "update_image", customerID, ErrImageRequired, nil)
		return nil, ErrImageRequired
	}

	name := newImageName(upload.ContentType)
	if err := m.images.Save(ctx, name, upload.ContentType, upload.Reader); err != nil {
		m.audit(ctx, "update_image", customerID, err, nil)
		return nil, fmt.Errorf("save image: %w", err)
	}

	previous := p.Image
	p.Image = name
	if _, err := m.repo.Update(ctx, p); err != nil {
		m.removeImage(ctx, name)
		m.audit(ctx, "update_image", customerID, err, nil)
		return nil, err
	}
	if previous != "" && previous != name {
		m.removeImage(ctx, previous)
	}
	m.audit(ctx, "update_image", customerID, nil, map[string]any{"image": name})
	return &ImageRef{CustomerID: customerID, Image: name}, nil
}

func (m *Manager) removeImage(ctx context.Context, name string) {
	if err := m.images.Delete(ctx, name); err != nil {
		applog.LogWarn(ctx, "remove profile image", zap.String("image", name), zap.Error(err))
	}
}

func (m *Manager) ViewImage(ctx context.Context, customerID int64) (*ImageRef, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &ImageRef{CustomerID: customerID, Image: p.Image}, nil
}

// OpenImage streams the stored image of the profile with its content type.
// The caller closes the reader.
func (m *Manager) OpenImage(ctx context.Context, customerID int64) (io.ReadCloser, string, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(p.Image) == "" {
		return nil, "", ErrNoImage
	}
	rc, err := m.images.Open(ctx, p.Image)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, "", ErrNoImage
		}
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	return rc, imageContentType(p.Image), nil
}
