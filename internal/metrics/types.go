package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	QueueJoins         prometheus.Counter
	QueueLeaves        prometheus.Counter
	GamesStarted       prometheus.Counter
	GamesEnded         prometheus.Counter
	Rotations          *prometheus.CounterVec
	EndGameDuration    prometheus.Histogram
	PredictionDuration prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	WebhooksSent       prometheus.Counter
	WebhooksFailed     prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
