package players

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertPlayer(playerID, name, skillLevel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, name, skill_level) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, skill_level = excluded.skill_level;
	`, playerID, name, skillLevel)
	return err
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM players WHERE id = ?`, playerID).Scan(&count); err != nil {
		log.Error("Failed to look up player", "error", err, "playerID", playerID)
		return false
	}
	return count > 0
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, skill_level FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.SkillLevel); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) RecordResult(winnerIDs, loserIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	bump := func(playerID string, won bool) error {
		if _, err := tx.Exec(`
			INSERT INTO players (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO NOTHING;
		`, playerID, playerID); err != nil {
			return err
		}
		wonInc := 0
		lostInc := 0
		if won {
			wonInc = 1
		} else {
			lostInc = 1
		}
		_, err := tx.Exec(`
			INSERT INTO player_stats (player_id, games_played, games_won, games_lost)
			VALUES (?, 1, ?, ?)
			ON CONFLICT(player_id) DO UPDATE SET
				games_played = games_played + 1,
				games_won = games_won + ?,
				games_lost = games_lost + ?;
		`, playerID, wonInc, lostInc, wonInc, lostInc)
		return err
	}

	for _, id := range winnerIDs {
		if err := bump(id, true); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, id := range loserIDs {
		if err := bump(id, false); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) Leaderboard() ([]PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT ps.player_id, p.name, ps.games_played, ps.games_won, ps.games_lost
		FROM player_stats ps
		JOIN players p ON p.id = ps.player_id
		WHERE ps.games_played > 0
		ORDER BY CAST(ps.games_won AS REAL) / ps.games_played DESC, ps.games_played DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var st PlayerStats
		if err := rows.Scan(&st.PlayerID, &st.PlayerName, &st.GamesPlayed, &st.GamesWon, &st.GamesLost); err != nil {
			return nil, err
		}
		if st.GamesPlayed > 0 {
			st.WinPercentage = float64(st.GamesWon) / float64(st.GamesPlayed) * 100
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

var _ PlayerStore = (*store)(nil)
