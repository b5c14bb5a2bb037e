package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	QueueJoinCount      int
	QueueLeaveCount     int
	GamesStartedCount   int
	GamesEndedCount     int
	RotationCounts      map[string]int
	NotifSentCount      int
	NotifFailedCount    int
	WebhooksSentCount   int
	WebhooksFailedCount int
	StartupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		RotationCounts: make(map[string]int),
	}
}

func (m *Mock) IncQueueJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueJoinCount++
}

func (m *Mock) IncQueueLeaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueLeaveCount++
}

func (m *Mock) IncGamesStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GamesStartedCount++
}

func (m *Mock) IncGamesEnded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GamesEndedCount++
}

func (m *Mock) IncRotations(rotationType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RotationCounts[rotationType]++
}

func (m *Mock) ObserveEndGameDuration(duration float64) {}

func (m *Mock) ObservePredictionDuration(duration float64) {}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCount++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCount++
}

func (m *Mock) IncWebhooksSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WebhooksSentCount++
}

func (m *Mock) IncWebhooksFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WebhooksFailedCount++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
