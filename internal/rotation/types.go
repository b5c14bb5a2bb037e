package rotation

// Type says how many players leave the court after a game.
type Type string

const (
	// Full rotates all four players off the court.
	Full Type = "FULL"
	// Partial rotates only the losing pair off.
	Partial Type = "PARTIAL"
)

// Reason records why the policy picked its rotation type.
type Reason string

const (
	ReasonHighDemand          Reason = "high_demand"
	ReasonConsecutiveWinLimit Reason = "consecutive_win_limit"
	ReasonNormalPlay          Reason = "normal_play"
)

// Decision is the computed outcome of one completed game. It is an ephemeral
// value, not a persisted entity.
type Decision struct {
	Type        Type     `json:"rotation_type"`
	Reason      Reason   `json:"reason"`
	PlayersOff  []string `json:"players_off"`
	PlayersStay []string `json:"players_stay"`
	// NextUpCount is how many players should be pulled from the front of the
	// queue to fill the vacated slots, already capped by the queue length.
	NextUpCount int `json:"next_up_count"`
	// NextUp is filled in by the caller once the players have actually been
	// dequeued; the policy itself never touches the queue.
	NextUp []string `json:"next_up"`
}

// Config holds the policy thresholds. The defaults mirror house rules:
// eight waiting players force a full rotation, and a pair is rotated off
// after its third consecutive win.
type Config struct {
	FullRotationQueueLen int
	MaxConsecutiveWins   int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		FullRotationQueueLen: 8,
		MaxConsecutiveWins:   3,
	}
}
