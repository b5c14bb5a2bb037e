package webhook

import "sync"

// Mock is a mock implementation of the Emitter interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterFunc func(facilityID, url, secret string) (string, error)
	ListFunc     func(facilityID string) ([]Endpoint, error)

	// Call records
	EmitCalls []struct {
		FacilityID string
		EventType  string
		Data       interface{}
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmitCalls = nil
}

func (m *Mock) Register(facilityID, url, secret string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RegisterFunc != nil {
		return m.RegisterFunc(facilityID, url, secret)
	}
	return "mock-webhook-id", nil
}

func (m *Mock) Deactivate(endpointID string) error { return nil }

func (m *Mock) List(facilityID string) ([]Endpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(facilityID)
	}
	return nil, nil
}

func (m *Mock) Emit(facilityID, eventType string, data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmitCalls = append(m.EmitCalls, struct {
		FacilityID string
		EventType  string
		Data       interface{}
	}{facilityID, eventType, data})
}
