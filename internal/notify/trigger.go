package notify

import (
	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/notifier"
	"github.com/courtflow/courtflow/internal/queue"
)

// TierStore is the slice of the queue store the trigger needs to remember
// which tier a player was last notified at.
type TierStore interface {
	SetNotifiedTier(queueID, playerID string, tier int) error
}

// Trigger decides when position changes warrant a notification. Delivery is
// delegated to the Notifier; the trigger only applies the tier policy:
// positions 1-2 are "next up", 3-4 are "approaching", and each player hears
// about a tier at most once per queue membership.
type Trigger struct {
	tiers    TierStore
	notifier notifier.Notifier
}

// New creates a new Trigger.
func New(tiers TierStore, notifier notifier.Notifier) *Trigger {
	return &Trigger{
		tiers:    tiers,
		notifier: notifier,
	}
}

// TierFor maps a 1-based position onto a notification tier.
func TierFor(position int) int {
	switch {
	case position <= 2:
		return queue.TierNextUp
	case position <= 4:
		return queue.TierApproaching
	default:
		return queue.TierNone
	}
}

// Evaluate walks a fresh queue snapshot and fires notifications for every
// player whose position crossed into a tier they have not been notified at.
// It is called after the mutating transaction has committed, never inside it.
func (t *Trigger) Evaluate(entries []queue.Entry, dryRun bool) {
	for _, entry := range entries {
		tier := TierFor(entry.Position)
		if tier <= entry.NotifiedTier {
			continue
		}

		var err error
		switch tier {
		case queue.TierNextUp:
			err = t.notifier.SendNextUp(entry, dryRun)
		case queue.TierApproaching:
			err = t.notifier.SendApproaching(entry, dryRun)
		default:
			continue
		}
		if err != nil {
			// Fire-and-forget: a delivery failure never blocks queue flow,
			// and the tier stays unrecorded so a later change can retry.
			log.Error("Failed to send position notification", "error", err, "queueID", entry.QueueID, "playerID", entry.PlayerID, "tier", tier)
			continue
		}

		if dryRun {
			continue
		}
		if err := t.tiers.SetNotifiedTier(entry.QueueID, entry.PlayerID, tier); err != nil {
			log.Error("Failed to record notification tier", "error", err, "queueID", entry.QueueID, "playerID", entry.PlayerID)
		}
	}
}
