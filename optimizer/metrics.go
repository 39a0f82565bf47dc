package optimizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the ambient observability surface for one trajectory,
// grounded on damir5-kosarica's internal/optimizer/metrics.go. Unlike that
// service (one long-lived process, one global registry), a Metrics here
// owns its own prometheus.Registry so that many independent trajectories
// (spec §5) can run in the same process without colliding on metric
// registration; a driver that wants them exposed gathers Collector()
// alongside its own registry (e.g. via prometheus.Gatherers).
type Metrics struct {
	registry *prometheus.Registry

	iterations   prometheus.Counter
	bestScore    prometheus.Gauge
	currentScore prometheus.Gauge
	tabuSize     prometheus.Gauge
	iterationDur prometheus.Histogram
	noImprove    prometheus.Counter
}

// NewMetrics constructs a fresh, independently registered Metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shelfopt_iterations_total",
			Help: "Total number of outer optimizer iterations run.",
		}),
		bestScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shelfopt_best_score",
			Help: "Best-ever total_score seen so far in this trajectory.",
		}),
		currentScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shelfopt_current_score",
			Help: "total_score of the current plan.",
		}),
		tabuSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shelfopt_tabu_queue_size",
			Help: "Current number of fingerprints held in the tabu queue.",
		}),
		iterationDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shelfopt_iteration_duration_seconds",
			Help:    "Wall time of one outer optimizer iteration.",
			Buckets: prometheus.DefBuckets,
		}),
		noImprove: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shelfopt_no_improving_neighbor_total",
			Help: "Number of iterations that found no improving neighbor.",
		}),
	}
	reg.MustRegister(m.iterations, m.bestScore, m.currentScore, m.tabuSize, m.iterationDur, m.noImprove)
	return m
}

// Collector returns the trajectory's own registry as a prometheus.Gatherer
// for a driver to gather from; it is not a prometheus.Collector and cannot
// be passed to Registry.Register (the HTTP endpoint that would serve the
// metrics is, like the rest of the driver, out of scope).
func (m *Metrics) Collector() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) recordIteration(score, best Score, tabuLen int, dur time.Duration) {
	m.iterations.Inc()
	m.currentScore.Set(score.TotalScore)
	m.bestScore.Set(best.TotalScore)
	m.tabuSize.Set(float64(tabuLen))
	m.iterationDur.Observe(dur.Seconds())
}

func (m *Metrics) recordNoImprovement() {
	m.noImprove.Inc()
}
