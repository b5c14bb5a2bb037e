package queue

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for queues.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Sentinel errors surfaced to callers. Handlers map these onto HTTP statuses.
var (
	ErrQueueNotFound  = errors.New("queue not found")
	ErrAlreadyInQueue = errors.New("player already in queue")
	ErrNotInQueue     = errors.New("player not in queue")
)

// Notification tiers recorded on an entry. A player is notified at most once
// per tier per queue membership; re-joining resets the tier.
const (
	TierNone        = 0
	TierApproaching = 1
	TierNextUp      = 2
)

// Entry is a single player's place in a queue. Positions are 1-based and
// dense; they are recomputed on every removal and are never an identity.
type Entry struct {
	QueueID      string `json:"queue_id"`
	PlayerID     string `json:"player_id"`
	DisplayName  string `json:"display_name"`
	JoinedAt     int64  `json:"joined_at"`
	Position     int    `json:"position"`
	NotifiedTier int    `json:"notified_tier"`
}

// Info describes a queue itself, independent of its entries.
type Info struct {
	ID         string `json:"id"`
	FacilityID string `json:"facility_id"`
	SkillLevel string `json:"skill_level"`
	CreatedAt  int64  `json:"created_at"`
}
