package ledger

import (
	"sync"
)

// MockLedger is a mock implementation of the GameLedger interface for testing.
// It is safe for concurrent use.
type MockLedger struct {
	mu sync.Mutex

	// Spies for method calls
	StartFunc              func(courtID, queueID string, teamA, teamB []TeamPlayer) (*Game, error)
	EndFunc                func(gameID string, scoreA, scoreB int) (*Game, error)
	GetFunc                func(gameID string) (*Game, error)
	ConsecutiveWinsFunc    func(pair []string, courtID string, lookback int) (int, error)
	SamplesForCourtsFunc   func(courtIDs []string, hour int, limit int) ([]float64, error)
	SamplesForFacilityFunc func(facilityID string, limit int) ([]float64, error)

	// Call records
	StartCalls []struct {
		CourtID string
		QueueID string
		TeamA   []TeamPlayer
		TeamB   []TeamPlayer
	}
	EndCalls []struct {
		GameID string
		ScoreA int
		ScoreB int
	}
	ConsecutiveWinsCalls []struct {
		Pair     []string
		CourtID  string
		Lookback int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockLedger {
	return &MockLedger{}
}

// Reset clears all call records.
func (m *MockLedger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCalls = nil
	m.EndCalls = nil
	m.ConsecutiveWinsCalls = nil
}

func (m *MockLedger) Start(courtID, queueID string, teamA, teamB []TeamPlayer) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCalls = append(m.StartCalls, struct {
		CourtID string
		QueueID string
		TeamA   []TeamPlayer
		TeamB   []TeamPlayer
	}{courtID, queueID, teamA, teamB})
	if m.StartFunc != nil {
		return m.StartFunc(courtID, queueID, teamA, teamB)
	}
	return &Game{ID: "game-1", CourtID: courtID, QueueID: queueID, TeamAPlayers: teamA, TeamBPlayers: teamB, Status: StatusInProgress}, nil
}

func (m *MockLedger) End(gameID string, scoreA, scoreB int) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EndCalls = append(m.EndCalls, struct {
		GameID string
		ScoreA int
		ScoreB int
	}{gameID, scoreA, scoreB})
	if m.EndFunc != nil {
		return m.EndFunc(gameID, scoreA, scoreB)
	}
	return &Game{ID: gameID, Status: StatusCompleted}, nil
}

func (m *MockLedger) Get(gameID string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(gameID)
	}
	return &Game{ID: gameID}, nil
}

func (m *MockLedger) ConsecutiveWins(pair []string, courtID string, lookback int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConsecutiveWinsCalls = append(m.ConsecutiveWinsCalls, struct {
		Pair     []string
		CourtID  string
		Lookback int
	}{pair, courtID, lookback})
	if m.ConsecutiveWinsFunc != nil {
		return m.ConsecutiveWinsFunc(pair, courtID, lookback)
	}
	return 0, nil
}

func (m *MockLedger) SamplesForCourts(courtIDs []string, hour int, limit int) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SamplesForCourtsFunc != nil {
		return m.SamplesForCourtsFunc(courtIDs, hour, limit)
	}
	return nil, nil
}

func (m *MockLedger) SamplesForFacility(facilityID string, limit int) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SamplesForFacilityFunc != nil {
		return m.SamplesForFacilityFunc(facilityID, limit)
	}
	return nil, nil
}
