package predictor

import (
	"math"
	"testing"
	"time"

	"github.com/courtflow/courtflow/internal/facility"
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)
}

func newTestPredictor(samples *ledger.MockLedger, cfg Config) *Predictor {
	queues := queue.NewMock()
	queues.GetQueueFunc = func(queueID string) (*queue.Info, error) {
		if queueID == "missing" {
			return nil, queue.ErrQueueNotFound
		}
		return &queue.Info{ID: queueID, FacilityID: "fac1", SkillLevel: "beginner"}, nil
	}
	p := New(samples, queues, facility.NewMock(), cfg)
	p.now = fixedClock
	return p
}

func TestWeightedAverage(t *testing.T) {
	// Samples ordered most recent first; weights are exp(-0.05*i).
	samples := []float64{10, 20, 30}
	want := (10 + 20*math.Exp(-0.05) + 30*math.Exp(-0.10)) /
		(1 + math.Exp(-0.05) + math.Exp(-0.10))

	got := WeightedAverage(samples)
	assert.InDelta(t, want, got, 1e-9)
	assert.InDelta(t, 19.67, got, 0.01)

	assert.Equal(t, 0.0, WeightedAverage(nil))
	assert.Equal(t, 42.0, WeightedAverage([]float64{42}))
}

func TestPredict_DefaultTierWhenNoHistory(t *testing.T) {
	p := newTestPredictor(ledger.NewMock(), DefaultConfig())

	est, err := p.Predict("q1", 3)
	require.NoError(t, err)

	// ceil(3/2) = 2 games, one court, beginner default 12 min/game.
	assert.Equal(t, 2, est.GamesUntilTurn)
	assert.Equal(t, TierDefault, est.Tier)
	assert.Equal(t, ConfidenceLow, est.Confidence)
	assert.InDelta(t, 24.0, est.Minutes, 1e-9)
	assert.Equal(t, 25, est.DisplayMinutes, "display value rounds to nearest 5")
}

func TestPredict_TierFallthrough(t *testing.T) {
	mins := func(n int, minutes float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = minutes * 60
		}
		return out
	}

	t.Run("court and hour tier wins when populated", func(t *testing.T) {
		samples := ledger.NewMock()
		samples.SamplesForCourtsFunc = func(courtIDs []string, hour, limit int) ([]float64, error) {
			require.Equal(t, []string{"court-1"}, courtIDs)
			if hour == 18 {
				return mins(50, 20), nil
			}
			return mins(120, 10), nil
		}
		p := newTestPredictor(samples, DefaultConfig())

		est, err := p.Predict("q1", 1)
		require.NoError(t, err)
		assert.Equal(t, TierCourtHour, est.Tier)
		assert.Equal(t, 50, est.SampleCount)
		assert.Equal(t, ConfidenceMedium, est.Confidence)
		assert.InDelta(t, 20.0, est.Minutes, 1e-9)
	})

	t.Run("falls back to any-hour court samples", func(t *testing.T) {
		samples := ledger.NewMock()
		samples.SamplesForCourtsFunc = func(courtIDs []string, hour, limit int) ([]float64, error) {
			if hour >= 0 {
				return mins(2, 20), nil // below MinSamples
			}
			return mins(150, 10), nil
		}
		p := newTestPredictor(samples, DefaultConfig())

		est, err := p.Predict("q1", 1)
		require.NoError(t, err)
		assert.Equal(t, TierCourt, est.Tier)
		assert.Equal(t, ConfidenceHigh, est.Confidence)
	})

	t.Run("falls back to facility samples", func(t *testing.T) {
		samples := ledger.NewMock()
		samples.SamplesForFacilityFunc = func(facilityID string, limit int) ([]float64, error) {
			require.Equal(t, "fac1", facilityID)
			return mins(12, 30), nil
		}
		p := newTestPredictor(samples, DefaultConfig())

		est, err := p.Predict("q1", 1)
		require.NoError(t, err)
		assert.Equal(t, TierFacility, est.Tier)
		assert.Equal(t, ConfidenceLow, est.Confidence, "12 samples trusts the tier but stays low confidence")
		assert.InDelta(t, 30.0, est.Minutes, 1e-9)
	})
}

func TestPredict_GamesUntilTurnConvention(t *testing.T) {
	p := newTestPredictor(ledger.NewMock(), DefaultConfig())

	// Two players rotate off per game in steady state, so position 1 and 2
	// share the same games-until-turn.
	for position, want := range map[int]int{1: 1, 2: 1, 3: 2, 8: 4, 9: 5} {
		est, err := p.Predict("q1", position)
		require.NoError(t, err)
		assert.Equal(t, want, est.GamesUntilTurn, "position %d", position)
	}
}

func TestPredict_Errors(t *testing.T) {
	p := newTestPredictor(ledger.NewMock(), DefaultConfig())

	_, err := p.Predict("missing", 1)
	assert.ErrorIs(t, err, queue.ErrQueueNotFound)

	_, err = p.Predict("q1", 0)
	assert.Error(t, err)
}

func TestPredict_MultipleCourtsRunInParallel(t *testing.T) {
	samples := ledger.NewMock()
	queues := queue.NewMock()
	registry := facility.NewMock()
	registry.ActiveCourtsFunc = func(facilityID, skillLevel string) ([]facility.Court, error) {
		return []facility.Court{
			{ID: "c1", FacilityID: facilityID, SkillLevel: skillLevel, Active: true},
			{ID: "c2", FacilityID: facilityID, SkillLevel: skillLevel, Active: true},
		}, nil
	}
	queues.GetQueueFunc = func(queueID string) (*queue.Info, error) {
		return &queue.Info{ID: queueID, FacilityID: "fac1", SkillLevel: "beginner"}, nil
	}
	p := New(samples, queues, registry, DefaultConfig())
	p.now = fixedClock

	// Position 7: ceil(7/2) = 4 games, two courts -> 2 waves of 12 min.
	est, err := p.Predict("q1", 7)
	require.NoError(t, err)
	assert.Equal(t, 4, est.GamesUntilTurn)
	assert.InDelta(t, 24.0, est.Minutes, 1e-9)
}
