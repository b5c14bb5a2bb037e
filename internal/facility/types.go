package facility

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles database operations for the facility/court registry.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var ErrFacilityNotFound = errors.New("facility not found")

// Skill levels a queue or court can be scoped to.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Facility is one physical location.
type Facility struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Court is one playable court within a facility, mapped to a skill level.
type Court struct {
	ID         string `json:"id"`
	FacilityID string `json:"facility_id"`
	Name       string `json:"name"`
	SkillLevel string `json:"skill_level"`
	Active     bool   `json:"active"`
}
