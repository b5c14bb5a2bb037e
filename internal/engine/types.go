package engine

import (
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/courtflow/courtflow/internal/notify"
	"github.com/courtflow/courtflow/internal/predictor"
	"github.com/courtflow/courtflow/internal/pubsub"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/courtflow/courtflow/internal/rotation"
	"github.com/courtflow/courtflow/internal/webhook"
)

// Engine orchestrates the queue, ledger, rotation policy and predictor into
// the operations the API exposes. Stores own their transactions; the engine
// sequences them and fires notifications, webhooks and pubsub messages only
// after the mutating store call has committed.
type Engine struct {
	queues    queue.QueueStore
	games     ledger.GameLedger
	predictor WaitPredictor
	rotation  rotation.Config
	trigger   *notify.Trigger
	notifier  Notifier
	webhooks  webhook.Emitter
	pubsub    pubsub.PubSubClient
	metrics   metrics.Metrics
}

// JoinResult is returned from JoinQueue: the assigned position plus an
// immediate wait estimate for it.
type JoinResult struct {
	Position int                 `json:"position"`
	Estimate *predictor.Estimate `json:"estimate,omitempty"`
}

// EndGameResult bundles the completed game with the rotation that follows it.
type EndGameResult struct {
	Game     *ledger.Game      `json:"game"`
	Decision rotation.Decision `json:"decision"`
	// NextUp holds the dequeued entries filling the vacated court slots, in
	// their former queue order.
	NextUp []queue.Entry `json:"next_up"`
}
