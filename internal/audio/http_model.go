package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPModel is a speech model served by a local model server.
// POST /load warms the model and reports its sample rate; POST /synthesize returns float samples.
type HTTPModel struct {
	baseURL    string
	name       string
	sampleRate int
	client     *http.Client
}

type loadRequest struct {
	Model string `json:"model"`
}

type loadResponse struct {
	SampleRate int `json:"sample_rate"`
}

type synthesizeRequest struct {
	Model string  `json:"model"`
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

type synthesizeResponse struct {
	Samples []float32 `json:"samples"`
}

// HTTPLoader returns a Loader that warms the named model on the server at baseURL.
func HTTPLoader(baseURL, name string, client *http.Client) Loader {
	if client == nil {
		client = &http.Client{}
	}
	base := strings.TrimSuffix(baseURL, "/")
	return func(ctx context.Context) (Model, error) {
		var resp loadResponse
		if err := postJSON(ctx, client, base+"/load", loadRequest{Model: name}, &resp); err != nil {
			return nil, fmt.Errorf("load speech model %q: %w", name, err)
		}
		if resp.SampleRate <= 0 {
			return nil, fmt.Errorf("load speech model %q: invalid sample rate %d", name, resp.SampleRate)
		}
		return &HTTPModel{baseURL: base, name: name, sampleRate: resp.SampleRate, client: client}, nil
	}
}

func (m *HTTPModel) SampleRate() int { return m.sampleRate }

func (m *HTTPModel) Synthesize(ctx context.Context, text string, opts Options) ([]float32, error) {
	var resp synthesizeResponse
	req := synthesizeRequest{Model: m.name, Text: text, Voice: opts.Voice, Speed: opts.Speed}
	if err := postJSON(ctx, m.client, m.baseURL+"/synthesize", req, &resp); err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	if len(resp.Samples) == 0 {
		return nil, errors.New("synthesize: model returned no samples")
	}
	return resp.Samples, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
