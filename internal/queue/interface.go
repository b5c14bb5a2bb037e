package queue

// QueueStore defines the interface for interacting with queue data.
// All mutating operations run in a single transaction and maintain the
// invariant that positions are exactly 1..n in list order with no duplicate
// player per queue.
type QueueStore interface {
	// CreateQueue registers a queue for a facility. Existing queues are left untouched.
	CreateQueue(queueID, facilityID, skillLevel string) error
	// GetQueue returns queue metadata or ErrQueueNotFound.
	GetQueue(queueID string) (*Info, error)
	// Join appends the player at the tail and returns the assigned position.
	// Fails with ErrAlreadyInQueue if the player is already present.
	Join(queueID, playerID, displayName string) (int, error)
	// Leave removes the player and renumbers the remaining entries in their
	// existing relative order. Fails with ErrNotInQueue if absent.
	Leave(queueID, playerID string) error
	// RotationApply removes the given players in one transaction and renumbers
	// the rest. Returns the removed entries in their original queue order.
	// Players not present are ignored.
	RotationApply(queueID string, playerIDs []string) ([]Entry, error)
	// PopNextUp atomically removes and returns up to n entries from the front
	// of the queue. Returns fewer (possibly zero) entries when the queue is
	// shorter than n; that is not an error.
	PopNextUp(queueID string, n int) ([]Entry, error)
	// Status returns the live ordered entry list. It is a read-only snapshot
	// for display; mutation decisions re-read inside their own transaction.
	Status(queueID string) ([]Entry, error)
	// WaitingCount returns the current queue length.
	WaitingCount(queueID string) (int, error)
	// SetNotifiedTier records that the player has been notified at the given tier.
	SetNotifiedTier(queueID, playerID string, tier int) error
	// Clear removes every entry from every queue. Test and admin helper.
	Clear()
}
