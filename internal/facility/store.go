package facility

import (
	"database/sql"
)

// New creates a new Registry backed by the given database.
func New(db *sql.DB) Registry {
	return &store{
		db: db,
	}
}

func (s *store) UpsertFacility(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO facilities (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name;
	`, id, name)
	return err
}

func (s *store) UpsertCourt(court Court) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	if court.Active {
		active = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO courts (id, facility_id, name, skill_level, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			facility_id = excluded.facility_id,
			name = excluded.name,
			skill_level = excluded.skill_level,
			active = excluded.active;
	`, court.ID, court.FacilityID, court.Name, court.SkillLevel, active)
	return err
}

func (s *store) ActiveCourts(facilityID, skillLevel string) ([]Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryCourts(`
		SELECT id, facility_id, name, skill_level, active FROM courts
		WHERE facility_id = ? AND skill_level = ? AND active = 1
		ORDER BY name
	`, facilityID, skillLevel)
}

func (s *store) ListCourts(facilityID string) ([]Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryCourts(`
		SELECT id, facility_id, name, skill_level, active FROM courts
		WHERE facility_id = ?
		ORDER BY name
	`, facilityID)
}

func (s *store) queryCourts(query string, args ...any) ([]Court, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		var c Court
		var active int
		if err := rows.Scan(&c.ID, &c.FacilityID, &c.Name, &c.SkillLevel, &active); err != nil {
			return nil, err
		}
		c.Active = active == 1
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

var _ Registry = (*store)(nil)
