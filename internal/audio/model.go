package audio

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrDisabled is returned when narration is turned off.
var ErrDisabled = errors.New("narration is disabled")

// Options carry per-listener voice preferences.
type Options struct {
	Voice string
	Speed float64
}

// Model is a loaded speech model that produces float samples in [-1, 1].
type Model interface {
	SampleRate() int
	Synthesize(ctx context.Context, text string, opts Options) ([]float32, error)
}

// Loader brings a Model into memory. It may be slow.
type Loader func(ctx context.Context) (Model, error)

// Holder loads its model on first use and keeps it for the life of the process.
// Concurrent first callers wait for the same load; a failed load is retried by the next caller.
// Callers waiting on another caller's load give up when their ctx is done.
type Holder struct {
	load    Loader
	loading *semaphore.Weighted
	model   atomic.Pointer[loadedModel]
}

type loadedModel struct{ Model }

func NewHolder(load Loader) *Holder {
	return &Holder{load: load, loading: semaphore.NewWeighted(1)}
}

func (h *Holder) Get(ctx context.Context) (Model, error) {
	if lm := h.model.Load(); lm != nil {
		return lm.Model, nil
	}
	if h.load == nil {
		return nil, ErrDisabled
	}

	if err := h.loading.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.loading.Release(1)

	if lm := h.model.Load(); lm != nil {
		return lm.Model, nil
	}
	m, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("loader returned no model")
	}
	h.model.Store(&loadedModel{m})
	return m, nil
}

// Loaded reports whether the model is already in memory. It never waits on a load.
func (h *Holder) Loaded() bool {
	return h.model.Load() != nil
}
