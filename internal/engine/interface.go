package engine

import (
	"github.com/courtflow/courtflow/internal/notifier"
	"github.com/courtflow/courtflow/internal/predictor"
)

// WaitPredictor estimates the wait for a queue position.
type WaitPredictor interface {
	Predict(queueID string, position int) (predictor.Estimate, error)
}

// Notifier defines the notification operations required by the engine.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
