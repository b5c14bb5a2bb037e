package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	cfg := DefaultConfig()
	winners := []string{"w1", "w2"}
	losers := []string{"l1", "l2"}

	tests := []struct {
		name            string
		queueLength     int
		winnerStreak    int
		wantType        Type
		wantReason      Reason
		wantOff         []string
		wantStay        []string
		wantNextUpCount int
	}{
		{
			name:            "below threshold is partial",
			queueLength:     7,
			winnerStreak:    0,
			wantType:        Partial,
			wantReason:      ReasonNormalPlay,
			wantOff:         losers,
			wantStay:        winners,
			wantNextUpCount: 2,
		},
		{
			name:            "at threshold is full",
			queueLength:     8,
			winnerStreak:    0,
			wantType:        Full,
			wantReason:      ReasonHighDemand,
			wantOff:         []string{"w1", "w2", "l1", "l2"},
			wantStay:        []string{},
			wantNextUpCount: 4,
		},
		{
			name:            "consecutive win limit overrides short queue",
			queueLength:     2,
			winnerStreak:    3,
			wantType:        Full,
			wantReason:      ReasonConsecutiveWinLimit,
			wantOff:         []string{"w1", "w2", "l1", "l2"},
			wantStay:        []string{},
			wantNextUpCount: 2,
		},
		{
			name:            "empty queue still decides correctly",
			queueLength:     0,
			winnerStreak:    0,
			wantType:        Partial,
			wantReason:      ReasonNormalPlay,
			wantOff:         losers,
			wantStay:        winners,
			wantNextUpCount: 0,
		},
		{
			name:            "short queue caps full rotation pull",
			queueLength:     3,
			winnerStreak:    4,
			wantType:        Full,
			wantReason:      ReasonConsecutiveWinLimit,
			wantOff:         []string{"w1", "w2", "l1", "l2"},
			wantStay:        []string{},
			wantNextUpCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cfg.Decide(tt.queueLength, winners, losers, tt.winnerStreak)
			assert.Equal(t, tt.wantType, d.Type)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.ElementsMatch(t, tt.wantOff, d.PlayersOff)
			assert.ElementsMatch(t, tt.wantStay, d.PlayersStay)
			assert.Equal(t, tt.wantNextUpCount, d.NextUpCount)
		})
	}
}

func TestDecide_CustomThresholds(t *testing.T) {
	cfg := Config{FullRotationQueueLen: 4, MaxConsecutiveWins: 2}

	d := cfg.Decide(4, []string{"w1", "w2"}, []string{"l1", "l2"}, 0)
	assert.Equal(t, Full, d.Type)
	assert.Equal(t, ReasonHighDemand, d.Reason)

	d = cfg.Decide(1, []string{"w1", "w2"}, []string{"l1", "l2"}, 2)
	assert.Equal(t, Full, d.Type)
	assert.Equal(t, ReasonConsecutiveWinLimit, d.Reason)
}
