package services

import "time"

// Metrics receives assignment-run observations. The Prometheus collector in
// platform/obs satisfies it.
type Metrics interface {
	ObserveMission(status string, dur time.Duration)
	ObserveCandidates(category string, n int)
	ObserveDistances(computed, reused int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveMission(string, time.Duration) {}
func (nopMetrics) ObserveCandidates(string, int)        {}
func (nopMetrics) ObserveDistances(int, int)            {}
