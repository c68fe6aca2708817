package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	windowCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myday_window_candidates_total",
			Help: "Rows fetched by padded window queries",
		},
		[]string{"query"},
	)

	windowDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myday_window_dropped_total",
			Help: "Rows discarded by the exact-day filter",
		},
		[]string{"query"},
	)
)
