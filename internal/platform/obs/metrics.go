package obs

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the assignment pipeline's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Missions         *prometheus.CounterVec
	MissionDurations prometheus.Histogram
	Candidates       *prometheus.HistogramVec
	DistanceLookups  *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice against the same registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	missions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "killchain_missions_total",
		Help: "Missions evaluated, labeled by outcome (resolved, unresolved, failed).",
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "killchain_mission_duration_seconds",
		Help:    "Time to filter and score one mission.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}))
	if err != nil {
		return nil, err
	}

	candidates, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "killchain_candidates",
		Help:    "Feasible candidates per mission after envelope filtering.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"category"}))
	if err != nil {
		return nil, err
	}

	lookups, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "killchain_distance_lookups_total",
		Help: "Distance table requests, labeled computed or reused.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Missions:         missions,
		MissionDurations: durations,
		Candidates:       candidates,
		DistanceLookups:  lookups,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// Handler exposes a /metrics handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveMission(status string, dur time.Duration) {
	if c == nil {
		return
	}
	c.Missions.WithLabelValues(status).Inc()
	if dur > 0 {
		c.MissionDurations.Observe(dur.Seconds())
	}
}

func (c *Collector) ObserveCandidates(category string, n int) {
	if c == nil {
		return
	}
	c.Candidates.WithLabelValues(category).Observe(float64(n))
}

func (c *Collector) ObserveDistances(computed, reused int) {
	if c == nil {
		return
	}
	c.DistanceLookups.WithLabelValues("computed").Add(float64(computed))
	c.DistanceLookups.WithLabelValues("reused").Add(float64(reused))
}
