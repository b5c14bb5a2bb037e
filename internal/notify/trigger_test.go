package notify

import (
	"errors"
	"testing"

	"github.com/courtflow/courtflow/internal/notifier"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	assert.Equal(t, queue.TierNextUp, TierFor(1))
	assert.Equal(t, queue.TierNextUp, TierFor(2))
	assert.Equal(t, queue.TierApproaching, TierFor(3))
	assert.Equal(t, queue.TierApproaching, TierFor(4))
	assert.Equal(t, queue.TierNone, TierFor(5))
}

func TestEvaluate_FiresByTier(t *testing.T) {
	store := queue.NewMock()
	notif := notifier.NewMock()
	trigger := New(store, notif)

	entries := []queue.Entry{
		{QueueID: "q1", PlayerID: "p1", Position: 1},
		{QueueID: "q1", PlayerID: "p2", Position: 2},
		{QueueID: "q1", PlayerID: "p3", Position: 3},
		{QueueID: "q1", PlayerID: "p4", Position: 4},
		{QueueID: "q1", PlayerID: "p5", Position: 5},
	}
	trigger.Evaluate(entries, false)

	require.Len(t, notif.SendNextUpCalls, 2)
	require.Len(t, notif.SendApproachingCalls, 2)
	require.Len(t, store.SetNotifiedTierCalls, 4)
	assert.Equal(t, queue.TierNextUp, store.SetNotifiedTierCalls[0].Tier)
}

func TestEvaluate_OncePerTier(t *testing.T) {
	store := queue.NewMock()
	notif := notifier.NewMock()
	trigger := New(store, notif)

	// Already notified at approaching; moving within 3..4 stays silent,
	// crossing into 1..2 fires the next-up tier.
	entries := []queue.Entry{
		{QueueID: "q1", PlayerID: "p3", Position: 3, NotifiedTier: queue.TierApproaching},
		{QueueID: "q1", PlayerID: "p2", Position: 2, NotifiedTier: queue.TierApproaching},
		{QueueID: "q1", PlayerID: "p1", Position: 1, NotifiedTier: queue.TierNextUp},
	}
	trigger.Evaluate(entries, false)

	assert.Empty(t, notif.SendApproachingCalls)
	require.Len(t, notif.SendNextUpCalls, 1)
	assert.Equal(t, "p2", notif.SendNextUpCalls[0].PlayerID)
}

func TestEvaluate_DeliveryFailureLeavesTierUnrecorded(t *testing.T) {
	store := queue.NewMock()
	notif := notifier.NewMock()
	notif.SendNextUpFunc = func(entry queue.Entry, dryRun bool) error {
		return errors.New("delivery down")
	}
	trigger := New(store, notif)

	trigger.Evaluate([]queue.Entry{{QueueID: "q1", PlayerID: "p1", Position: 1}}, false)
	assert.Empty(t, store.SetNotifiedTierCalls, "failed delivery must not consume the tier")
}

func TestEvaluate_DryRunDoesNotPersist(t *testing.T) {
	store := queue.NewMock()
	notif := notifier.NewMock()
	trigger := New(store, notif)

	trigger.Evaluate([]queue.Entry{{QueueID: "q1", PlayerID: "p1", Position: 1}}, true)
	require.Len(t, notif.SendNextUpCalls, 1)
	assert.Empty(t, store.SetNotifiedTierCalls)
}
