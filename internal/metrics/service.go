package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		QueueJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_queue_joins_total",
			Help: "The total number of successful queue joins.",
		}),
		QueueLeaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_queue_leaves_total",
			Help: "The total number of voluntary queue leaves.",
		}),
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_games_started_total",
			Help: "The total number of games started.",
		}),
		GamesEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_games_ended_total",
			Help: "The total number of games completed.",
		}),
		Rotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtflow_rotations_total",
			Help: "The total number of rotation decisions, by rotation type.",
		}, []string{"type"}),
		EndGameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtflow_end_game_processing_duration_seconds",
			Help:    "The duration of end-game processing (ledger close, decision, queue update).",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtflow_prediction_duration_seconds",
			Help:    "The duration of wait-time prediction lookups.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		WebhooksSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_webhooks_sent_total",
			Help: "The total number of webhook deliveries successfully posted.",
		}),
		WebhooksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtflow_webhooks_failed_total",
			Help: "The total number of webhook deliveries that failed.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtflow_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.QueueJoins,
		s.QueueLeaves,
		s.GamesStarted,
		s.GamesEnded,
		s.Rotations,
		s.EndGameDuration,
		s.PredictionDuration,
		s.NotifSent,
		s.NotifFailed,
		s.WebhooksSent,
		s.WebhooksFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncQueueJoins() {
	s.QueueJoins.Inc()
}

func (s *Service) IncQueueLeaves() {
	s.QueueLeaves.Inc()
}

func (s *Service) IncGamesStarted() {
	s.GamesStarted.Inc()
}

func (s *Service) IncGamesEnded() {
	s.GamesEnded.Inc()
}

func (s *Service) IncRotations(rotationType string) {
	s.Rotations.WithLabelValues(rotationType).Inc()
}

func (s *Service) ObserveEndGameDuration(duration float64) {
	s.EndGameDuration.Observe(duration)
}

func (s *Service) ObservePredictionDuration(duration float64) {
	s.PredictionDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) IncWebhooksSent() {
	s.WebhooksSent.Inc()
}

func (s *Service) IncWebhooksFailed() {
	s.WebhooksFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
