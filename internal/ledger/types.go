package ledger

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for games and their derived metrics.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	ErrCourtNotFound   = errors.New("court not found")
	ErrCourtBusy       = errors.New("court already has a game in progress")
	ErrGameNotFound    = errors.New("game not found")
	ErrAlreadyEnded    = errors.New("game already ended")
	ErrTiedScore       = errors.New("score must not be a tie")
	ErrInvalidTeamSize = errors.New("each team must have exactly two players")
)

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusCompleted  GameStatus = "COMPLETED"
)

// TeamKey identifies one of the two sides of a game.
type TeamKey string

const (
	TeamA TeamKey = "A"
	TeamB TeamKey = "B"
)

// TeamPlayer is one member of a pair.
type TeamPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Game is a single four-player game on one court. Completed games are
// immutable; they form the append-only history the predictor reads.
type Game struct {
	ID              string       `json:"id"`
	CourtID         string       `json:"court_id"`
	QueueID         string       `json:"queue_id"`
	FacilityID      string       `json:"facility_id"`
	TeamAPlayers    []TeamPlayer `json:"team_a"`
	TeamBPlayers    []TeamPlayer `json:"team_b"`
	StartedAt       int64        `json:"started_at"`
	EndedAt         int64        `json:"ended_at,omitempty"`
	DurationSeconds int64        `json:"duration_seconds,omitempty"`
	ScoreA          int          `json:"score_a,omitempty"`
	ScoreB          int          `json:"score_b,omitempty"`
	Winner          TeamKey      `json:"winner,omitempty"`
	Status          GameStatus   `json:"status"`
}

// WinnerIDs returns the player ids of the winning pair, nil while in progress.
func (g *Game) WinnerIDs() []string {
	switch g.Winner {
	case TeamA:
		return playerIDs(g.TeamAPlayers)
	case TeamB:
		return playerIDs(g.TeamBPlayers)
	}
	return nil
}

// LoserIDs returns the player ids of the losing pair, nil while in progress.
func (g *Game) LoserIDs() []string {
	switch g.Winner {
	case TeamA:
		return playerIDs(g.TeamBPlayers)
	case TeamB:
		return playerIDs(g.TeamAPlayers)
	}
	return nil
}

func playerIDs(players []TeamPlayer) []string {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}
