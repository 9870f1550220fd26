package generation

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorylane_generation_requests_total",
			Help: "Story generation calls, partitioned by backend and outcome.",
		},
		[]string{"backend", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memorylane_generation_duration_seconds",
			Help:    "Latency of story generation calls.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"backend"},
	)
	imagesPerRequest = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "memorylane_generation_images",
			Help:    "Number of images attached to a generation call.",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		},
	)
)

type instrumented struct {
	backend string
	next    Generator
}

// Instrument records request counts and latency for g under the backend label.
func Instrument(backend string, g Generator) Generator {
	return &instrumented{backend: backend, next: g}
}

func (i *instrumented) Generate(ctx context.Context, prompt string, images []Image) (string, error) {
	start := time.Now()
	imagesPerRequest.Observe(float64(len(images)))

	text, err := i.next.Generate(ctx, prompt, images)

	requestDuration.WithLabelValues(i.backend).Observe(time.Since(start).Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	requestsTotal.WithLabelValues(i.backend, status).Inc()
	return text, err
}
