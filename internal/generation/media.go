package generation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// FallbackMIMEType is assumed when an upload's type cannot be determined.
const FallbackMIMEType = "image/jpeg"

// Image is one uploaded photo held in memory.
type Image struct {
	Data     []byte
	MIMEType string
}

// ReadImages loads every uploaded file into memory in order.
// A nil or empty slice yields no images; any unreadable file fails the whole batch.
func ReadImages(files []*multipart.FileHeader) ([]Image, error) {
	images := make([]Image, 0, len(files))
	for i, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			return nil, fmt.Errorf("read photo %d (%s): %w", i+1, fh.Filename, err)
		}
		images = append(images, Image{
			Data:     data,
			MIMEType: detectMIMEType(fh.Header.Get("Content-Type"), data),
		})
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func detectMIMEType(declared string, data []byte) string {
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return FallbackMIMEType
}
