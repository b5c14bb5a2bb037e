package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new GameLedger backed by the given database.
func New(db *sql.DB) GameLedger {
	return &store{
		db: db,
	}
}

func (s *store) Start(courtID, queueID string, teamA, teamB []TeamPlayer) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(teamA) != 2 || len(teamB) != 2 {
		return nil, ErrInvalidTeamSize
	}
	// A game needs four distinct players, within and across teams.
	seen := make(map[string]struct{}, 4)
	for _, p := range teamA {
		seen[p.ID] = struct{}{}
	}
	for _, p := range teamB {
		seen[p.ID] = struct{}{}
	}
	if len(seen) != 4 {
		return nil, ErrInvalidTeamSize
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	var facilityID string
	err = tx.QueryRow(`SELECT facility_id FROM courts WHERE id = ?`, courtID).Scan(&facilityID)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return nil, ErrCourtNotFound
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// A court hosts at most one game at a time; the check and insert share
	// the transaction so two concurrent starts cannot both pass.
	var inProgress int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM games WHERE court_id = ? AND status = ?
	`, courtID, StatusInProgress).Scan(&inProgress)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if inProgress > 0 {
		tx.Rollback()
		return nil, ErrCourtBusy
	}

	game := &Game{
		ID:           uuid.New().String(),
		CourtID:      courtID,
		QueueID:      queueID,
		FacilityID:   facilityID,
		TeamAPlayers: teamA,
		TeamBPlayers: teamB,
		StartedAt:    time.Now().Unix(),
		Status:       StatusInProgress,
	}

	teamAJSON, err := json.Marshal(teamA)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	teamBJSON, err := json.Marshal(teamB)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO games (id, court_id, queue_id, facility_id, team_a_json, team_b_json, started_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, game.ID, game.CourtID, game.QueueID, game.FacilityID, teamAJSON, teamBJSON, game.StartedAt, game.Status)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Game started", "gameID", game.ID, "courtID", courtID, "queueID", queueID)
	return game, nil
}

func (s *store) End(gameID string, scoreA, scoreB int) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if scoreA < 0 || scoreB < 0 {
		return nil, fmt.Errorf("scores must be non-negative, got %d and %d", scoreA, scoreB)
	}
	if scoreA == scoreB {
		return nil, ErrTiedScore
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	game, err := getGameTx(tx, gameID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if game.Status == StatusCompleted {
		tx.Rollback()
		return nil, ErrAlreadyEnded
	}

	now := time.Now()
	game.EndedAt = now.Unix()
	game.DurationSeconds = game.EndedAt - game.StartedAt
	if game.DurationSeconds < 0 {
		game.DurationSeconds = 0
	}
	game.ScoreA = scoreA
	game.ScoreB = scoreB
	if scoreA > scoreB {
		game.Winner = TeamA
	} else {
		game.Winner = TeamB
	}
	game.Status = StatusCompleted

	_, err = tx.Exec(`
		UPDATE games
		SET ended_at = ?, duration_seconds = ?, score_a = ?, score_b = ?, winner = ?, status = ?
		WHERE id = ?
	`, game.EndedAt, game.DurationSeconds, game.ScoreA, game.ScoreB, game.Winner, game.Status, game.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Metric rows are written once at completion and never mutated.
	_, err = tx.Exec(`
		INSERT INTO game_metrics (game_id, facility_id, court_id, duration_seconds, hour_of_day, day_of_week, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, game.ID, game.FacilityID, game.CourtID, game.DurationSeconds, now.Hour(), int(now.Weekday()), now.Unix())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Game ended", "gameID", game.ID, "winner", game.Winner, "durationSeconds", game.DurationSeconds)
	return game, nil
}

func (s *store) Get(gameID string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectGame+` WHERE id = ?`, gameID)
	game, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, ErrGameNotFound
	}
	return game, err
}

// ConsecutiveWins scans completed games on the court newest first and counts
// how many in a row were won by exactly this pair. The streak breaks at the
// first game with a different winner, so a pair that did not win the most
// recent game scores zero.
func (s *store) ConsecutiveWins(pair []string, courtID string, lookback int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(pair) != 2 {
		return 0, ErrInvalidTeamSize
	}
	if lookback <= 0 {
		lookback = 3
	}

	rows, err := s.db.Query(selectGame+`
		WHERE court_id = ? AND status = ?
		ORDER BY ended_at DESC, started_at DESC
		LIMIT ?
	`, courtID, StatusCompleted, lookback)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	streak := 0
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return 0, err
		}
		if !samePair(game.WinnerIDs(), pair) {
			break
		}
		streak++
	}
	return streak, rows.Err()
}

func (s *store) SamplesForCourts(courtIDs []string, hour int, limit int) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(courtIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(courtIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(courtIDs)+4)
	for _, id := range courtIDs {
		args = append(args, id)
	}

	query := `
		SELECT duration_seconds FROM game_metrics
		WHERE court_id IN (` + placeholders + `)`
	if hour >= 0 {
		// hour±1 window with midnight wraparound.
		query += ` AND hour_of_day IN (?, ?, ?)`
		args = append(args, (hour+23)%24, hour, (hour+1)%24)
	}
	query += ` ORDER BY recorded_at DESC LIMIT ?`
	args = append(args, limit)

	return s.querySamples(query, args...)
}

func (s *store) SamplesForFacility(facilityID string, limit int) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.querySamples(`
		SELECT duration_seconds FROM game_metrics
		WHERE facility_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?
	`, facilityID, limit)
}

func (s *store) querySamples(query string, args ...any) ([]float64, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []float64
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		samples = append(samples, d)
	}
	return samples, rows.Err()
}

const selectGame = `
	SELECT id, court_id, queue_id, facility_id, team_a_json, team_b_json,
	       started_at, ended_at, duration_seconds, score_a, score_b, winner, status
	FROM games`

func getGameTx(tx *sql.Tx, gameID string) (*Game, error) {
	row := tx.QueryRow(selectGame+` WHERE id = ?`, gameID)
	game, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, ErrGameNotFound
	}
	return game, err
}

func scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var game Game
	var teamAJSON, teamBJSON string
	var endedAt, duration sql.NullInt64
	var scoreA, scoreB sql.NullInt64
	var winner sql.NullString

	err := scanner.Scan(
		&game.ID, &game.CourtID, &game.QueueID, &game.FacilityID, &teamAJSON, &teamBJSON,
		&game.StartedAt, &endedAt, &duration, &scoreA, &scoreB, &winner, &game.Status,
	)
	if err != nil {
		return nil, err
	}

	game.EndedAt = endedAt.Int64
	game.DurationSeconds = duration.Int64
	game.ScoreA = int(scoreA.Int64)
	game.ScoreB = int(scoreB.Int64)
	game.Winner = TeamKey(winner.String)

	if err := json.Unmarshal([]byte(teamAJSON), &game.TeamAPlayers); err != nil {
		log.Error("Failed to unmarshal team_a_json", "error", err, "gameID", game.ID)
	}
	if err := json.Unmarshal([]byte(teamBJSON), &game.TeamBPlayers); err != nil {
		log.Error("Failed to unmarshal team_b_json", "error", err, "gameID", game.ID)
	}
	return &game, nil
}

// samePair compares two pairs regardless of member order.
func samePair(a, b []string) bool {
	if len(a) != 2 || len(b) != 2 {
		return false
	}
	return (a[0] == b[0] && a[1] == b[1]) || (a[0] == b[1] && a[1] == b[0])
}
