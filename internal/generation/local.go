package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response body ends up in logs.
const maxErrorBody = 512

// LocalGenerator talks to a self-hosted model server over plain HTTP.
// Several server flavours are supported by sniffing the response shape.
type LocalGenerator struct {
	url    string
	model  string
	client *http.Client
}

func NewLocalGenerator(url, model string, client *http.Client) (*LocalGenerator, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("LOCAL_AI_URL is required")
	}
	if client == nil {
		// Deadlines come from the caller's context.
		client = &http.Client{}
	}
	return &LocalGenerator{url: url, model: model, client: client}, nil
}

type localRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

type localResponse struct {
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
	Response *string `json:"response"`
	Choices  []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// textExtractor pulls story text from one known response shape.
type textExtractor func(localResponse) (string, bool)

// localExtractors are tried in order; the first non-empty match wins.
var localExtractors = []textExtractor{
	func(r localResponse) (string, bool) {
		if r.Message == nil || r.Message.Content == "" {
			return "", false
		}
		return r.Message.Content, true
	},
	func(r localResponse) (string, bool) {
		if r.Response == nil || *r.Response == "" {
			return "", false
		}
		return *r.Response, true
	},
	func(r localResponse) (string, bool) {
		if len(r.Choices) == 0 || r.Choices[0].Message.Content == "" {
			return "", false
		}
		return r.Choices[0].Message.Content, true
	},
}

func (g *LocalGenerator) Generate(ctx context.Context, prompt string, images []Image) (string, error) {
	encoded := make([]string, len(images))
	for i, img := range images {
		encoded[i] = base64.StdEncoding.EncodeToString(img.Data)
	}

	payload, err := json.Marshal(localRequest{
		Model:  g.model,
		Prompt: prompt,
		Images: encoded,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("local: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("local: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("local: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("local: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return "", fmt.Errorf("local: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed localResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("local: decode response: %w", err)
	}
	return extractLocalText(parsed)
}

func extractLocalText(r localResponse) (string, error) {
	for _, extract := range localExtractors {
		if text, ok := extract(r); ok {
			return text, nil
		}
	}
	return "", errors.New("local: response has no recognised text field")
}
