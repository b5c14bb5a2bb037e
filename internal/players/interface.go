package players

// PlayerStore defines the interface for interacting with player data.
type PlayerStore interface {
	UpsertPlayer(playerID, name, skillLevel string) error
	IsKnownPlayer(playerID string) bool
	GetAllPlayers() ([]PlayerInfo, error)
	// RecordResult bumps the win/loss counters for the two pairs of a
	// completed game. Unknown players are created on the fly so historical
	// imports never drop a result.
	RecordResult(winnerIDs, loserIDs []string) error
	// Leaderboard returns stats for all players with at least one game,
	// best win percentage first.
	Leaderboard() ([]PlayerStats, error)
}
