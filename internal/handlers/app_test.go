package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/config"
	"github.com/Anway001/AI-Memory-Space/internal/database/databasetest"
	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/generation"
	"github.com/Anway001/AI-Memory-Space/internal/handlers"
	"github.com/Anway001/AI-Memory-Space/internal/media"
	"github.com/Anway001/AI-Memory-Space/internal/routes"
	"github.com/Anway001/AI-Memory-Space/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
	images  int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, images []generation.Image) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.images = len(images)
	return f.text, f.err
}

type testApp struct {
	app       *fiber.App
	auth      *services.AuthService
	generator *fakeGenerator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{JWTSecret: "handler-test-secret", JWTExpiry: time.Hour}
	db := databasetest.Open(t)

	gen := &fakeGenerator{text: "The Pier\n\nWaves."}
	authService := services.NewAuthService(db, cfg)
	storyService := services.NewStoryService(db)
	uploader, err := media.NewLocalUploader(t.TempDir(), media.LocalPublicPrefix)
	require.NoError(t, err)

	app := fiber.New()
	routes.Setup(app, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(db, "fake", nil),
		Generate: handlers.NewGenerateHandler(services.NewGenerationService(gen, "fake", nil, storyService, time.Second), authService),
		Story:    handlers.NewStoryHandler(storyService),
		Settings: handlers.NewSettingsHandler(services.NewSettingsService(db, authService, uploader)),
		Contact:  handlers.NewContactHandler(services.NewContactService(db)),
	})

	return &testApp{app: app, auth: authService, generator: gen}
}

// register creates a user and returns its bearer token.
func (a *testApp) register(t *testing.T, email string) string {
	t.Helper()
	resp, err := a.auth.Register(&dto.RegisterRequest{Name: "Tester", Email: email, Password: "secret1"})
	require.NoError(t, err)
	return resp.Token
}

func (a *testApp) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

func jsonRequest(t *testing.T, method, path, token string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type formFile struct {
	field, name, contentType string
	data                     []byte
}

func multipartRequest(t *testing.T, path, token string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + f.field + `"; filename="` + f.name + `"`}
		h["Content-Type"] = []string{f.contentType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
