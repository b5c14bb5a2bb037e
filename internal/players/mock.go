package players

import "sync"

// MockStore is a mock implementation of the PlayerStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	UpsertPlayerFunc  func(playerID, name, skillLevel string) error
	IsKnownPlayerFunc func(playerID string) bool
	GetAllPlayersFunc func() ([]PlayerInfo, error)
	RecordResultFunc  func(winnerIDs, loserIDs []string) error
	LeaderboardFunc   func() ([]PlayerStats, error)

	RecordResultCalls []struct {
		WinnerIDs []string
		LoserIDs  []string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(playerID, name, skillLevel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(playerID, name, skillLevel)
	}
	return nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return true
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) RecordResult(winnerIDs, loserIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordResultCalls = append(m.RecordResultCalls, struct {
		WinnerIDs []string
		LoserIDs  []string
	}{winnerIDs, loserIDs})
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(winnerIDs, loserIDs)
	}
	return nil
}

func (m *MockStore) Leaderboard() ([]PlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc()
	}
	return nil, nil
}
