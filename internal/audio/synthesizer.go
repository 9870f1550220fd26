package audio

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultMaxChars bounds how much story text is narrated.
const DefaultMaxChars = 600

const ellipsis = "..."

var synthDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "memorylane_tts_duration_seconds",
		Help:    "Time spent narrating a story, including first-use model load.",
		Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"status"},
)

// Synthesizer narrates story text into a base64 WAV.
type Synthesizer struct {
	holder   *Holder
	maxChars int
}

func NewSynthesizer(holder *Holder, maxChars int) *Synthesizer {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Synthesizer{holder: holder, maxChars: maxChars}
}

// Synthesize returns the narration as base64-encoded WAV bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts Options) (string, error) {
	start := time.Now()
	encoded, err := s.synthesize(ctx, text, opts)
	status := "success"
	if err != nil {
		status = "error"
	}
	synthDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	return encoded, err
}

func (s *Synthesizer) synthesize(ctx context.Context, text string, opts Options) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to narrate")
	}

	model, err := s.holder.Get(ctx)
	if err != nil {
		return "", err
	}

	samples, err := model.Synthesize(ctx, Truncate(text, s.maxChars), opts)
	if err != nil {
		return "", err
	}

	wav := EncodeWAV(FloatToPCM16(samples), model.SampleRate())
	return base64.StdEncoding.EncodeToString(wav), nil
}

// Ready reports whether the model has been loaded.
func (s *Synthesizer) Ready() bool {
	return s.holder.Loaded()
}

// Truncate cuts text to maxChars runes and marks the cut with an ellipsis.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + ellipsis
}

// ParseSpeed turns a preference like "1.5x" into a rate multiplier. Unparseable values mean 1.
func ParseSpeed(pref string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(strings.ToLower(pref)), "x"), 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}
