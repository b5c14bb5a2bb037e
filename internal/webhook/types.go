package webhook

import "time"

// Event names emitted to registered endpoints.
const (
	EventPlayerJoined = "player.joined"
	EventPlayerLeft   = "player.left"
	EventGameStarted  = "game.started"
	EventGameEnded    = "game.ended"
)

// Endpoint is a registered webhook destination for a facility.
type Endpoint struct {
	ID         string
	FacilityID string
	URL        string
	Secret     string
	Active     bool
}

// Event is the JSON payload delivered to endpoints.
type Event struct {
	Type       string      `json:"type"`
	FacilityID string      `json:"facility_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}
