package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/audio"
	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/generation"
	"github.com/Anway001/AI-Memory-Space/internal/models"
	"github.com/google/uuid"
)

// ErrNothingToGenerate means the request carried neither photos nor a description.
var ErrNothingToGenerate = errors.New("at least one photo or a description is required")

// Narrator turns story text into base64 audio.
type Narrator interface {
	Synthesize(ctx context.Context, text string, opts audio.Options) (string, error)
}

// GenerateInput is one story request after the upload has been read.
type GenerateInput struct {
	Images      []generation.Image
	Description string
	Genre       string
	Length      string
	WhatIf      string
	WantAudio   bool
	Save        bool

	// User is set when the caller is signed in.
	User *models.User
}

type GenerateResult struct {
	Story       string
	AudioBase64 *string
	StoryID     *uuid.UUID
}

// GenerationService runs prompt building, generation, cleanup, narration and optional save.
type GenerationService struct {
	generator generation.Generator
	backend   string
	narrator  Narrator
	stories   *StoryService
	timeout   time.Duration
}

// NewGenerationService wires the pipeline. narrator may be nil when narration is off.
func NewGenerationService(generator generation.Generator, backend string, narrator Narrator, stories *StoryService, timeout time.Duration) *GenerationService {
	return &GenerationService{
		generator: generator,
		backend:   backend,
		narrator:  narrator,
		stories:   stories,
		timeout:   timeout,
	}
}

func (s *GenerationService) Backend() string { return s.backend }

func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if len(in.Images) == 0 && strings.TrimSpace(in.Description) == "" {
		return nil, ErrNothingToGenerate
	}

	req := generation.StoryRequest{
		Genre:       in.Genre,
		Length:      in.Length,
		Description: in.Description,
		WhatIf:      in.WhatIf,
	}
	if in.User != nil {
		if req.Genre == "" {
			req.Genre = in.User.DefaultGenre
		}
		if req.Length == "" {
			req.Length = in.User.StoryLength
		}
	}

	log := slog.With("backend", s.backend, "images", len(in.Images))
	if in.User != nil {
		log = log.With("user_id", in.User.ID.String())
	}

	story, err := s.generate(ctx, generation.BuildPrompt(req), in.Images)
	if err != nil {
		log.Error("story generation failed", "action", "generate_story", "error", errors.Unwrap(err))
		return nil, err
	}

	result := &GenerateResult{Story: story}

	if in.WantAudio && s.narrator != nil {
		encoded, err := s.narrator.Synthesize(ctx, story, voiceOptions(in.User))
		if err != nil {
			log.Warn("narration skipped", "action", "synthesize_audio", "error", err)
		} else {
			result.AudioBase64 = &encoded
		}
	}

	if in.Save && in.User != nil && s.stories != nil {
		saved, _, err := s.stories.Create(in.User.ID, &dto.CreateStoryRequest{
			Text:        story,
			AudioBase64: result.AudioBase64,
			ImageBase64: firstImageBase64(in.Images),
		}, "")
		if err != nil {
			log.Error("auto-save failed", "action", "save_story", "error", err)
		} else {
			result.StoryID = &saved.ID
		}
	}

	return result, nil
}

// generate makes the single upstream attempt and folds every failure into a GenerationError.
func (s *GenerationService) generate(ctx context.Context, prompt string, images []generation.Image) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.generator.Generate(ctx, prompt, images)
	if err != nil {
		return "", &generation.GenerationError{Backend: s.backend, Err: err}
	}

	story := generation.Sanitize(raw)
	if story == "" {
		return "", &generation.GenerationError{Backend: s.backend, Err: errors.New("sanitized story is empty")}
	}
	return story, nil
}

func voiceOptions(user *models.User) audio.Options {
	if user == nil {
		return audio.Options{Speed: 1}
	}
	opts := audio.Options{Speed: audio.ParseSpeed(user.AudioSpeed)}
	if user.Voice != "" && user.Voice != models.DefaultVoice {
		opts.Voice = user.Voice
	}
	return opts
}

func firstImageBase64(images []generation.Image) *string {
	if len(images) == 0 {
		return nil
	}
	img := images[0]
	encoded := "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	return &encoded
}
