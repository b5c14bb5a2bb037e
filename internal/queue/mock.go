package queue

import (
	"sync"
)

// MockStore is a mock implementation of the QueueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateQueueFunc     func(queueID, facilityID, skillLevel string) error
	GetQueueFunc        func(queueID string) (*Info, error)
	JoinFunc            func(queueID, playerID, displayName string) (int, error)
	LeaveFunc           func(queueID, playerID string) error
	RotationApplyFunc   func(queueID string, playerIDs []string) ([]Entry, error)
	PopNextUpFunc       func(queueID string, n int) ([]Entry, error)
	StatusFunc          func(queueID string) ([]Entry, error)
	WaitingCountFunc    func(queueID string) (int, error)
	SetNotifiedTierFunc func(queueID, playerID string, tier int) error

	// Call records
	JoinCalls []struct {
		QueueID     string
		PlayerID    string
		DisplayName string
	}
	LeaveCalls []struct {
		QueueID  string
		PlayerID string
	}
	RotationApplyCalls []struct {
		QueueID   string
		PlayerIDs []string
	}
	PopNextUpCalls []struct {
		QueueID string
		N       int
	}
	SetNotifiedTierCalls []struct {
		QueueID  string
		PlayerID string
		Tier     int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JoinCalls = nil
	m.LeaveCalls = nil
	m.RotationApplyCalls = nil
	m.PopNextUpCalls = nil
	m.SetNotifiedTierCalls = nil
}

func (m *MockStore) CreateQueue(queueID, facilityID, skillLevel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateQueueFunc != nil {
		return m.CreateQueueFunc(queueID, facilityID, skillLevel)
	}
	return nil
}

func (m *MockStore) GetQueue(queueID string) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetQueueFunc != nil {
		return m.GetQueueFunc(queueID)
	}
	return &Info{ID: queueID, FacilityID: "facility-1", SkillLevel: "intermediate"}, nil
}

func (m *MockStore) Join(queueID, playerID, displayName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JoinCalls = append(m.JoinCalls, struct {
		QueueID     string
		PlayerID    string
		DisplayName string
	}{queueID, playerID, displayName})
	if m.JoinFunc != nil {
		return m.JoinFunc(queueID, playerID, displayName)
	}
	return len(m.JoinCalls), nil
}

func (m *MockStore) Leave(queueID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaveCalls = append(m.LeaveCalls, struct {
		QueueID  string
		PlayerID string
	}{queueID, playerID})
	if m.LeaveFunc != nil {
		return m.LeaveFunc(queueID, playerID)
	}
	return nil
}

func (m *MockStore) RotationApply(queueID string, playerIDs []string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RotationApplyCalls = append(m.RotationApplyCalls, struct {
		QueueID   string
		PlayerIDs []string
	}{queueID, playerIDs})
	if m.RotationApplyFunc != nil {
		return m.RotationApplyFunc(queueID, playerIDs)
	}
	return nil, nil
}

func (m *MockStore) PopNextUp(queueID string, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PopNextUpCalls = append(m.PopNextUpCalls, struct {
		QueueID string
		N       int
	}{queueID, n})
	if m.PopNextUpFunc != nil {
		return m.PopNextUpFunc(queueID, n)
	}
	return nil, nil
}

func (m *MockStore) Status(queueID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatusFunc != nil {
		return m.StatusFunc(queueID)
	}
	return nil, nil
}

func (m *MockStore) WaitingCount(queueID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WaitingCountFunc != nil {
		return m.WaitingCountFunc(queueID)
	}
	return 0, nil
}

func (m *MockStore) SetNotifiedTier(queueID, playerID string, tier int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetNotifiedTierCalls = append(m.SetNotifiedTierCalls, struct {
		QueueID  string
		PlayerID string
		Tier     int
	}{queueID, playerID, tier})
	if m.SetNotifiedTierFunc != nil {
		return m.SetNotifiedTierFunc(queueID, playerID, tier)
	}
	return nil
}

func (m *MockStore) Clear() {}
