package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	stepRender     = "render"
	stepUpload     = "upload"
	stepPresign    = "presign"
	stepRelational = "insert_relational"
	stepDocument   = "insert_document"
)

var (
	stepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "colorstash_swatch_steps_total",
			Help: "Swatch pipeline steps by outcome",
		},
		[]string{"step", "result"},
	)

	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "colorstash_swatch_step_duration_seconds",
			Help:    "Duration of swatch pipeline steps in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step"},
	)
)

func observe[T any](step string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	stepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	stepsTotal.WithLabelValues(step, result).Inc()
	return v, err
}
