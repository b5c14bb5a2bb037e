package notifier

import (
	"sync"

	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/queue"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendNextUpFunc      func(entry queue.Entry, dryRun bool) error
	SendApproachingFunc func(entry queue.Entry, dryRun bool) error
	SendGameResultFunc  func(game *ledger.Game, dryRun bool) error

	// Call records
	SendNextUpCalls      []queue.Entry
	SendApproachingCalls []queue.Entry
	SendGameResultCalls  []*ledger.Game
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendNextUpCalls = nil
	m.SendApproachingCalls = nil
	m.SendGameResultCalls = nil
}

func (m *Mock) SendNextUp(entry queue.Entry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendNextUpCalls = append(m.SendNextUpCalls, entry)
	if m.SendNextUpFunc != nil {
		return m.SendNextUpFunc(entry, dryRun)
	}
	return nil
}

func (m *Mock) SendApproaching(entry queue.Entry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendApproachingCalls = append(m.SendApproachingCalls, entry)
	if m.SendApproachingFunc != nil {
		return m.SendApproachingFunc(entry, dryRun)
	}
	return nil
}

func (m *Mock) SendGameResult(game *ledger.Game, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameResultCalls = append(m.SendGameResultCalls, game)
	if m.SendGameResultFunc != nil {
		return m.SendGameResultFunc(game, dryRun)
	}
	return nil
}
