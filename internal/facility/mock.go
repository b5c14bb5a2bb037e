package facility

import "sync"

// MockRegistry is a mock implementation of the Registry interface for testing.
type MockRegistry struct {
	mu sync.Mutex

	UpsertFacilityFunc func(id, name string) error
	UpsertCourtFunc    func(court Court) error
	ActiveCourtsFunc   func(facilityID, skillLevel string) ([]Court, error)
	ListCourtsFunc     func(facilityID string) ([]Court, error)
}

// NewMock creates a new mock instance.
func NewMock() *MockRegistry {
	return &MockRegistry{}
}

func (m *MockRegistry) UpsertFacility(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertFacilityFunc != nil {
		return m.UpsertFacilityFunc(id, name)
	}
	return nil
}

func (m *MockRegistry) UpsertCourt(court Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertCourtFunc != nil {
		return m.UpsertCourtFunc(court)
	}
	return nil
}

func (m *MockRegistry) ActiveCourts(facilityID, skillLevel string) ([]Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ActiveCourtsFunc != nil {
		return m.ActiveCourtsFunc(facilityID, skillLevel)
	}
	return []Court{{ID: "court-1", FacilityID: facilityID, Name: "Court 1", SkillLevel: skillLevel, Active: true}}, nil
}

func (m *MockRegistry) ListCourts(facilityID string) ([]Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListCourtsFunc != nil {
		return m.ListCourtsFunc(facilityID)
	}
	return nil, nil
}
