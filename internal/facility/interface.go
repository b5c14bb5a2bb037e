package facility

// Registry is the read-mostly source of court-to-skill-level mappings and
// active-court counts. The predictor and rotation sizing consume it; writes
// only happen at facility setup and from the seeder.
type Registry interface {
	UpsertFacility(id, name string) error
	UpsertCourt(court Court) error
	// ActiveCourts returns the active courts of a facility mapped to the
	// given skill level, in stable name order.
	ActiveCourts(facilityID, skillLevel string) ([]Court, error)
	// ListCourts returns every court of a facility.
	ListCourts(facilityID string) ([]Court, error)
}
