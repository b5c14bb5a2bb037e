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

type Server struct {
	Engine         *engine.Engine
	Queues         queue.QueueStore
	Players        players.PlayerStore
	Registry       facility.Registry
	Webhooks       webhook.Emitter
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
