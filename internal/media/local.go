package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes files under BaseDir and serves them from PublicPrefix.
type LocalUploader struct {
	BaseDir      string
	PublicPrefix string
}

func NewLocalUploader(baseDir, publicPrefix string) (*LocalUploader, error) {
	if baseDir == "" {
		return nil, errors.New("local upload dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{
		BaseDir:      baseDir,
		PublicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}, nil
}

func (l *LocalUploader) Upload(_ context.Context, input UploadInput) (UploadResult, error) {
	if input.Body == nil {
		return UploadResult{}, errors.New("upload body is required")
	}
	name, err := objectName(input)
	if err != nil {
		return UploadResult{}, err
	}

	dst := filepath.Join(l.BaseDir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, input.Body); err != nil {
		os.Remove(dst)
		return UploadResult{}, fmt.Errorf("write upload file: %w", err)
	}

	return UploadResult{Key: name, URL: l.PublicPrefix + "/" + name}, nil
}
