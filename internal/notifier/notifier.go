package notifier

import (
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/queue"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
// Delivery is fire-and-forget: the engine logs failures but never depends on
// delivery success.
type Notifier interface {
	// SendNextUp tells a player at position 1 or 2 to get ready.
	SendNextUp(entry queue.Entry, dryRun bool) error
	// SendApproaching tells a player at position 3 or 4 their turn is close.
	SendApproaching(entry queue.Entry, dryRun bool) error
	// SendGameResult announces a completed game.
	SendGameResult(game *ledger.Game, dryRun bool) error
}
