package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUploaderDisabled means no storage backend is configured.
	ErrUploaderDisabled = errors.New("media uploads are not configured")
	// ErrUnsupportedType rejects anything that is not a common still image.
	ErrUnsupportedType = errors.New("only jpeg, png, webp or gif images are accepted")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
}

// UploadResult holds the stored object key and the URL clients should use.
type UploadResult struct {
	Key string
	URL string
}

type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (UploadResult, error)
}

type disabledUploader struct{}

func (disabledUploader) Upload(context.Context, UploadInput) (UploadResult, error) {
	return UploadResult{}, ErrUploaderDisabled
}

func Disabled() Uploader {
	return disabledUploader{}
}

// objectName builds a collision-free name that keeps a safe extension.
func objectName(input UploadInput) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(input.ContentType)]
	if !ok {
		return "", ErrUnsupportedType
	}
	if fromName := strings.ToLower(filepath.Ext(input.Filename)); fromName == ".jpeg" || fromName == ext {
		ext = fromName
	}
	return uuid.NewString() + ext, nil
}
