package replan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by a Loop.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Plans          prometheus.Counter
	Replans        prometheus.Counter
	SearchFailures *prometheus.CounterVec // label: reason
	Detections     *prometheus.CounterVec // label: kind
	Moves          prometheus.Counter
	Scans          prometheus.Counter
	Expanded       prometheus.Histogram
	Runs           *prometheus.CounterVec // label: state
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Plans: f.NewCounter(prometheus.CounterOpts{
			Name: "gridnav_plans_total",
			Help: "Successful path searches",
		}),
		Replans: f.NewCounter(prometheus.CounterOpts{
			Name: "gridnav_replans_total",
			Help: "Replans triggered by a sighting",
		}),
		SearchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridnav_search_failures_total",
			Help: "Failed path searches by reason",
		}, []string{"reason"}),
		Detections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridnav_detections_total",
			Help: "Registered sightings by kind",
		}, []string{"kind"}),
		Moves: f.NewCounter(prometheus.CounterOpts{
			Name: "gridnav_moves_total",
			Help: "Completed MoveTo commands",
		}),
		Scans: f.NewCounter(prometheus.CounterOpts{
			Name: "gridnav_scans_total",
			Help: "In-place scan turns",
		}),
		Expanded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridnav_search_expanded_cells",
			Help:    "Cells expanded per successful search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridnav_runs_total",
			Help: "Finished runs by final state",
		}, []string{"state"}),
	}
}

func (m *Metrics) plan(expanded int) {
	if m == nil {
		return
	}
	m.Plans.Inc()
	m.Expanded.Observe(float64(expanded))
}

func (m *Metrics) searchFailed(reason string) {
	if m == nil {
		return
	}
	m.SearchFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) replan() {
	if m == nil {
		return
	}
	m.Replans.Inc()
}

func (m *Metrics) detection(k SightingKind) {
	if m == nil {
		return
	}
	m.Detections.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) move() {
	if m == nil {
		return
	}
	m.Moves.Inc()
}

func (m *Metrics) scan() {
	if m == nil {
		return
	}
	m.Scans.Inc()
}

func (m *Metrics) finish(s State) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(s.String()).Inc()
}
