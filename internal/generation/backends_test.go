package generation

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestOllamaGeneratorUsesGenerateEndpoint(t *testing.T) {
	var seen map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &seen))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"model":"llava","response":"A quiet harbor.","done":true}`+"\n")
	}))
	defer srv.Close()

	g, err := NewOllamaGenerator(srv.URL+"/v1", "llava", srv.Client())
	require.NoError(t, err)

	text, err := g.Generate(t.Context(), "prompt", []Image{{Data: []byte{1, 2, 3}}})
	require.NoError(t, err)
	assert.Equal(t, "A quiet harbor.", text)
	assert.Equal(t, "llava", seen["model"])
	assert.Equal(t, false, seen["stream"])
	assert.Len(t, seen["images"], 1)
}

func TestOpenAIGeneratorSendsImageParts(t *testing.T) {
	var seen struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Type     string `json:"type"`
				Text     string `json:"text"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &seen))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"The Lantern"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	g, err := NewOpenAIGenerator("test-key", srv.URL, "gpt-4o-mini")
	require.NoError(t, err)

	text, err := g.Generate(t.Context(), "prompt", []Image{{Data: []byte("img"), MIMEType: "image/png"}})
	require.NoError(t, err)
	assert.Equal(t, "The Lantern", text)

	require.Len(t, seen.Messages, 1)
	require.Len(t, seen.Messages[0].Content, 2)
	assert.Equal(t, "text", seen.Messages[0].Content[0].Type)
	assert.Equal(t, "prompt", seen.Messages[0].Content[0].Text)
	assert.Equal(t, "data:image/png;base64,aW1n", seen.Messages[0].Content[1].ImageURL.URL)
}

func TestGeminiGeneratorWithoutKeyFails(t *testing.T) {
	_, err := NewGeminiGenerator(t.Context(), "  ", "gemini-flash-latest")
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func geminiServer(t *testing.T, response string, seen any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-flash-latest:generateContent"), r.URL.Path)
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(raw, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiGeneratorSendsInlineImages(t *testing.T) {
	var seen struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					Data     string `json:"data"`
					MIMEType string `json:"mimeType"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"contents"`
	}
	srv := geminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[
		{"text":"weighing the harbor photo","thought":true},
		{"text":"The "},
		{"text":"Lantern"}]}}]}`, &seen)

	g, err := newGeminiGenerator(t.Context(), "test-key", "gemini-flash-latest", genai.HTTPOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := g.Generate(t.Context(), "prompt", []Image{
		{Data: []byte("img"), MIMEType: "image/png"},
		{Data: []byte("raw")},
	})
	require.NoError(t, err)
	assert.Equal(t, "The Lantern", text)

	require.Len(t, seen.Contents, 1)
	assert.Equal(t, "user", seen.Contents[0].Role)
	parts := seen.Contents[0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, "prompt", parts[0].Text)
	assert.Nil(t, parts[0].InlineData)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("img")), parts[1].InlineData.Data)
	require.NotNil(t, parts[2].InlineData)
	assert.Equal(t, FallbackMIMEType, parts[2].InlineData.MIMEType)
}

func TestGeminiGeneratorWithoutCandidatesFails(t *testing.T) {
	srv := geminiServer(t, `{"candidates":[]}`, nil)

	g, err := newGeminiGenerator(t.Context(), "test-key", "gemini-flash-latest", genai.HTTPOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Generate(t.Context(), "prompt", nil)
	assert.ErrorContains(t, err, "no text")
}

func TestCandidateText(t *testing.T) {
	assert.Empty(t, candidateText(nil))
	assert.Empty(t, candidateText(&genai.GenerateContentResponse{}))
	assert.Empty(t, candidateText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Parts: []*genai.Part{
			{Text: "plan", Thought: true},
			nil,
			{Text: "Once "},
			{Text: "upon"},
		}}},
		{Content: genai.NewContentFromText("ignored", genai.RoleModel)},
	}}
	assert.Equal(t, "Once upon", candidateText(resp))
}
