package queue

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new QueueStore backed by the given database.
func New(db *sql.DB) QueueStore {
	return &store{
		db: db,
	}
}

// maxTxAttempts bounds the internal retry on transient lock contention.
const maxTxAttempts = 3

// isRetryable reports whether the error is transient lock contention worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// withTx runs fn in a transaction, retrying a bounded number of times on
// transient contention. fn must not perform external I/O.
func (s *store) withTx(fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(fn)
		if !isRetryable(err) {
			return err
		}
		log.Warn("Retrying queue transaction after contention", "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}
	return fmt.Errorf("queue transaction failed after %d attempts: %w", maxTxAttempts, err)
}

func (s *store) runTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) CreateQueue(queueID, facilityID, skillLevel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO queues (id, facility_id, skill_level, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, queueID, facilityID, skillLevel, time.Now().Unix())
	return err
}

func (s *store) GetQueue(queueID string) (*Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var info Info
	err := s.db.QueryRow(`
		SELECT id, facility_id, skill_level, created_at FROM queues WHERE id = ?
	`, queueID).Scan(&info.ID, &info.FacilityID, &info.SkillLevel, &info.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrQueueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Join appends the player at the tail of the queue. Position is derived from
// the live length inside the same transaction, never from a stale read.
func (s *store) Join(queueID, playerID, displayName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var position int
	err := s.withTx(func(tx *sql.Tx) error {
		if err := queueExists(tx, queueID); err != nil {
			return err
		}

		var exists int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM queue_entries WHERE queue_id = ? AND player_id = ?
		`, queueID, playerID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrAlreadyInQueue
		}

		var length int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM queue_entries WHERE queue_id = ?`, queueID).Scan(&length); err != nil {
			return err
		}
		position = length + 1

		_, err = tx.Exec(`
			INSERT INTO queue_entries (queue_id, player_id, display_name, joined_at, position, notified_tier)
			VALUES (?, ?, ?, ?, ?, ?)
		`, queueID, playerID, displayName, time.Now().Unix(), position, TierNone)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info("Player joined queue", "queueID", queueID, "playerID", playerID, "position", position)
	return position, nil
}

func (s *store) Leave(queueID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withTx(func(tx *sql.Tx) error {
		if err := queueExists(tx, queueID); err != nil {
			return err
		}

		res, err := tx.Exec(`DELETE FROM queue_entries WHERE queue_id = ? AND player_id = ?`, queueID, playerID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotInQueue
		}
		return renumber(tx, queueID)
	})
	if err != nil {
		return err
	}
	log.Info("Player left queue", "queueID", queueID, "playerID", playerID)
	return nil
}

func (s *store) RotationApply(queueID string, playerIDs []string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(playerIDs) == 0 {
		return nil, nil
	}

	var removed []Entry
	err := s.withTx(func(tx *sql.Tx) error {
		if err := queueExists(tx, queueID); err != nil {
			return err
		}

		placeholders := strings.Repeat("?,", len(playerIDs))
		placeholders = placeholders[:len(placeholders)-1]

		args := make([]any, 0, len(playerIDs)+1)
		args = append(args, queueID)
		for _, id := range playerIDs {
			args = append(args, id)
		}

		rows, err := tx.Query(`
			SELECT queue_id, player_id, display_name, joined_at, position, notified_tier
			FROM queue_entries
			WHERE queue_id = ? AND player_id IN (`+placeholders+`)
			ORDER BY position
		`, args...)
		if err != nil {
			return err
		}
		removed, err = scanEntries(rows)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM queue_entries WHERE queue_id = ? AND player_id IN (`+placeholders+`)`, args...); err != nil {
			return err
		}
		return renumber(tx, queueID)
	})
	if err != nil {
		return nil, err
	}
	log.Info("Rotation applied to queue", "queueID", queueID, "removed", len(removed))
	return removed, nil
}

func (s *store) PopNextUp(queueID string, n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return nil, nil
	}

	var popped []Entry
	err := s.withTx(func(tx *sql.Tx) error {
		if err := queueExists(tx, queueID); err != nil {
			return err
		}

		rows, err := tx.Query(`
			SELECT queue_id, player_id, display_name, joined_at, position, notified_tier
			FROM queue_entries
			WHERE queue_id = ?
			ORDER BY position
			LIMIT ?
		`, queueID, n)
		if err != nil {
			return err
		}
		popped, err = scanEntries(rows)
		if err != nil {
			return err
		}

		for _, e := range popped {
			if _, err := tx.Exec(`DELETE FROM queue_entries WHERE queue_id = ? AND player_id = ?`, queueID, e.PlayerID); err != nil {
				return err
			}
		}
		return renumber(tx, queueID)
	})
	if err != nil {
		return nil, err
	}
	return popped, nil
}

func (s *store) Status(queueID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := queueExistsDB(s.db, queueID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT queue_id, player_id, display_name, joined_at, position, notified_tier
		FROM queue_entries
		WHERE queue_id = ?
		ORDER BY position
	`, queueID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (s *store) WaitingCount(queueID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := queueExistsDB(s.db, queueID); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM queue_entries WHERE queue_id = ?`, queueID).Scan(&count)
	return count, err
}

func (s *store) SetNotifiedTier(queueID, playerID string, tier int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE queue_entries SET notified_tier = ? WHERE queue_id = ? AND player_id = ?
	`, tier, queueID, playerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotInQueue
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM queue_entries`); err != nil {
		log.Error("Failed to clear queue entries", "error", err)
	}
}

// renumber rewrites positions to exactly 1..n in the existing relative order.
func renumber(tx *sql.Tx, queueID string) error {
	rows, err := tx.Query(`
		SELECT player_id FROM queue_entries WHERE queue_id = ? ORDER BY position
	`, queueID)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for i, id := range ids {
		if _, err := tx.Exec(`
			UPDATE queue_entries SET position = ? WHERE queue_id = ? AND player_id = ?
		`, i+1, queueID, id); err != nil {
			return err
		}
	}
	return nil
}

func queueExists(tx *sql.Tx, queueID string) error {
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM queues WHERE id = ?`, queueID).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return ErrQueueNotFound
	}
	return nil
}

func queueExistsDB(db *sql.DB, queueID string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM queues WHERE id = ?`, queueID).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return ErrQueueNotFound
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.QueueID, &e.PlayerID, &e.DisplayName, &e.JoinedAt, &e.Position, &e.NotifiedTier); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
