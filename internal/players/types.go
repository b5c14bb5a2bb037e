package players

import (
	"database/sql"
	"sync"
)

// store handles database operations for players and their stats.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a player in the store.
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SkillLevel string `json:"skill_level"`
}

// PlayerStats represents a player's record for the leaderboard.
type PlayerStats struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	GamesPlayed   int     `json:"games_played"`
	GamesWon      int     `json:"games_won"`
	GamesLost     int     `json:"games_lost"`
	WinPercentage float64 `json:"win_percentage"`
}
