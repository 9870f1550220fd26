package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Anway001/AI-Memory-Space/internal/config"
)

// ErrGenerationFailed is the only failure callers of the pipeline see.
var ErrGenerationFailed = errors.New("story could not be generated")

// Generator turns a prompt plus images into raw story text.
type Generator interface {
	Generate(ctx context.Context, prompt string, images []Image) (string, error)
}

// GenerationError wraps a backend failure. Its message never leaks backend detail;
// use Unwrap (or %+v on Err) for logs.
type GenerationError struct {
	Backend string
	Err     error
}

func (e *GenerationError) Error() string { return ErrGenerationFailed.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// Backend names accepted by AI_PROVIDER.
const (
	BackendGemini = "gemini"
	BackendLocal  = "local"
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// New builds the configured backend wrapped with metrics.
func New(ctx context.Context, cfg *config.Config) (Generator, string, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	if backend == "" {
		backend = BackendGemini
	}

	var (
		g   Generator
		err error
	)
	switch backend {
	case BackendGemini:
		g, err = NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case BackendLocal:
		g, err = NewLocalGenerator(cfg.LocalAIURL, cfg.LocalAIModel, nil)
	case BackendOllama:
		g, err = NewOllamaGenerator(cfg.OllamaURL, cfg.OllamaModel, nil)
	case BackendOpenAI:
		g, err = NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		return nil, "", fmt.Errorf("unknown AI_PROVIDER %q", cfg.AIProvider)
	}
	if err != nil {
		return nil, "", fmt.Errorf("init %s backend: %w", backend, err)
	}
	return Instrument(backend, g), backend, nil
}
