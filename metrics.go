package learnhub

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	factory promauto.Factory

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	quizzesGenerated *prometheus.CounterVec
	quizGrades       *prometheus.CounterVec
	savedItems       *prometheus.CounterVec
	sessionsOpen     prometheus.GaugeFunc
}

// NewMetrics registers all collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		factory: factory,
		upstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "learnhub_upstream_requests_total",
				Help: "Calls made to external collaborators",
			},
			[]string{"collaborator", "status"}, // status: success/failure
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "learnhub_upstream_request_duration_seconds",
				Help:    "Time spent waiting on external collaborators",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"collaborator"},
		),
		quizzesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "learnhub_quizzes_generated_total",
				Help: "Quiz generation attempts",
			},
			[]string{"status"},
		),
		quizGrades: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "learnhub_quiz_grades_total",
				Help: "Graded quizzes by remark band",
			},
			[]string{"band"},
		),
		savedItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "learnhub_saved_items_total",
				Help: "Save requests by kind and outcome",
			},
			[]string{"kind", "outcome"}, // outcome: added/duplicate
		),
	}
}

// WatchSessions exposes the number of open quiz sessions as a gauge
func (m *Metrics) WatchSessions(store SessionStore) {
	if m == nil {
		return
	}
	m.sessionsOpen = m.factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "learnhub_quiz_sessions_open",
			Help: "Quiz sessions issued but not yet graded",
		},
		func() float64 {
			n, err := store.Len(context.Background())
			if err != nil {
				return 0
			}
			return float64(n)
		},
	)
}

func (m *Metrics) observeUpstream(collaborator string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.upstreamCalls.WithLabelValues(collaborator, status).Inc()
	m.upstreamDuration.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
}

func (m *Metrics) quizGenerated(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.quizzesGenerated.WithLabelValues(status).Inc()
}

func (m *Metrics) quizGraded(band RemarkBand) {
	if m == nil {
		return
	}
	m.quizGrades.WithLabelValues(string(band)).Inc()
}

func (m *Metrics) itemSaved(kind string, added bool) {
	if m == nil {
		return
	}
	outcome := "added"
	if !added {
		outcome = "duplicate"
	}
	m.savedItems.WithLabelValues(kind, outcome).Inc()
}
