package http

import (
	"net/http"

	"github.com/courtflow/courtflow/internal/config"
	"github.com/courtflow/courtflow/internal/engine"
	"github.com/courtflow/courtflow/internal/facility"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/courtflow/courtflow/internal/players"
	"github.com/courtflow/courtflow/internal/pubsub"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/courtflow/courtflow/internal/webhook"
)

func NewServer(
	eng *engine.Engine,
	queues queue.QueueStore,
	playerStore players.PlayerStore,
	registry facility.Registry,
	webhooks webhook.Emitter,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	pubsub pubsub.PubSubClient,
) *Server {
	server := &Server{
		Engine:         eng,
		Queues:         queues,
		Players:        playerStore,
		Registry:       registry,
		Webhooks:       webhooks,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearQueuesHandler(), paramsMiddleware))
	s.Router.Handle("/queues/create", Chain(s.CreateQueueHandler(), paramsMiddleware))
	s.Router.Handle("/queues/join", Chain(s.JoinQueueHandler(), paramsMiddleware))
	s.Router.Handle("/queues/leave", Chain(s.LeaveQueueHandler(), paramsMiddleware))
	s.Router.Handle("/queues/status", Chain(s.QueueStatusHandler(), paramsMiddleware))
	s.Router.Handle("/games/start", Chain(s.StartGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/end", Chain(s.EndGameHandler(), paramsMiddleware))
	s.Router.Handle("/predict", Chain(s.PredictWaitHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/webhooks/register", Chain(s.RegisterWebhookHandler(), paramsMiddleware))
	s.Router.Handle("/update-player-stats", Chain(s.UpdatePlayerStatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
