package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion outcomes as recorded by the converter service.
const (
	OutcomeSuccess = "success"
	OutcomeNoMatch = "no_match"
	OutcomeEmpty   = "empty_input"
)

// Copy outcomes as reported back by the converter page.
const (
	CopyOutcomeSuccess = "success"
	CopyOutcomeFailed  = "failed"
	CopyOutcomeNoLink  = "no_link"
)

var (
	// ConversionsTotal counts generation attempts by outcome.
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivefetch",
		Name:      "conversions_total",
		Help:      "Number of link generation attempts, partitioned by outcome.",
	}, []string{"outcome"})

	// CopiesTotal counts clipboard copy attempts by outcome.
	CopiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivefetch",
		Name:      "copies_total",
		Help:      "Number of clipboard copy attempts, partitioned by outcome.",
	}, []string{"outcome"})

	// ConversionDelaySeconds observes the configured artificial processing pause.
	ConversionDelaySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "drivefetch",
		Name:      "conversion_delay_seconds",
		Help:      "Observed duration of the artificial processing pause.",
		Buckets:   prometheus.DefBuckets,
	})
)
