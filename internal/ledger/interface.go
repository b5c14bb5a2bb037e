package ledger

// GameLedger records game lifecycle and serves the historical samples the
// wait predictor reads.
type GameLedger interface {
	// Start creates an in-progress game on the court. Fails with
	// ErrInvalidTeamSize unless both teams have exactly two players, and with
	// ErrCourtBusy if the court already has a game in progress.
	Start(courtID, queueID string, teamA, teamB []TeamPlayer) (*Game, error)
	// End completes the game: validates the score, computes duration and
	// winner, and emits one metric row, all in one transaction. Fails with
	// ErrGameNotFound, ErrAlreadyEnded or ErrTiedScore.
	End(gameID string, scoreA, scoreB int) (*Game, error)
	// Get returns a game by id, or ErrGameNotFound.
	Get(gameID string) (*Game, error)
	// ConsecutiveWins counts how many of the most recent completed games on
	// the court, scanned newest first up to lookback, were won by exactly
	// this pair in unbroken sequence.
	ConsecutiveWins(pair []string, courtID string, lookback int) (int, error)

	// Sample queries for the predictor. Durations are in seconds, ordered
	// most recent first. hour < 0 means any time of day; otherwise the window
	// is hour±1 with midnight wraparound.
	SamplesForCourts(courtIDs []string, hour int, limit int) ([]float64, error)
	SamplesForFacility(facilityID string, limit int) ([]float64, error)
}
