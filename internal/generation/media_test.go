package generation

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

type upload struct {
	name        string
	contentType string
	data        []byte
}

func parseUploads(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photos"; filename="`+u.name+`"`)
		if u.contentType != "" {
			h.Set("Content-Type", u.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"]
}

func TestReadImagesPreservesOrderAndBytes(t *testing.T) {
	files := parseUploads(t,
		upload{name: "a.jpg", contentType: "image/jpeg", data: []byte("first")},
		upload{name: "b.png", contentType: "image/png", data: []byte("second")},
	)

	images, err := ReadImages(files)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, []byte("first"), images[0].Data)
	assert.Equal(t, "image/jpeg", images[0].MIMEType)
	assert.Equal(t, []byte("second"), images[1].Data)
	assert.Equal(t, "image/png", images[1].MIMEType)
}

func TestReadImagesSniffsOrFallsBack(t *testing.T) {
	files := parseUploads(t,
		upload{name: "sniffed", contentType: "application/octet-stream", data: pngHeader},
		upload{name: "unknown", contentType: "application/octet-stream", data: []byte("plain words")},
	)

	images, err := ReadImages(files)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "image/png", images[0].MIMEType)
	assert.Equal(t, FallbackMIMEType, images[1].MIMEType)
}

func TestReadImagesEmpty(t *testing.T) {
	images, err := ReadImages(nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}
