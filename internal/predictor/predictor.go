package predictor

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/facility"
	"github.com/courtflow/courtflow/internal/queue"
)

// SampleSource serves historical game-duration samples in seconds, ordered
// most recent first. The game ledger implements it.
type SampleSource interface {
	SamplesForCourts(courtIDs []string, hour int, limit int) ([]float64, error)
	SamplesForFacility(facilityID string, limit int) ([]float64, error)
}

// QueueSource resolves a queue id to its facility and skill level.
type QueueSource interface {
	GetQueue(queueID string) (*queue.Info, error)
}

// Predictor estimates wait times from historical game durations.
type Predictor struct {
	samples  SampleSource
	queues   QueueSource
	registry facility.Registry
	cfg      Config
	now      func() time.Time
}

// New creates a new Predictor.
func New(samples SampleSource, queues QueueSource, registry facility.Registry, cfg Config) *Predictor {
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = DefaultConfig().MinSamples
	}
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = DefaultConfig().SampleLimit
	}
	return &Predictor{
		samples:  samples,
		queues:   queues,
		registry: registry,
		cfg:      cfg,
		now:      time.Now,
	}
}

// playersPerRotation fixes the rotation cadence the estimate assumes. Partial
// rotation (two players per game) is the steady state under the default
// thresholds, so two is used everywhere; this is the one documented
// convention for games-until-turn.
const playersPerRotation = 2

// Predict estimates the wait for the given 1-based queue position.
//
// The average duration falls through three tiers, each needing MinSamples to
// be trusted: the queue's courts within the current hour ±1, the queue's
// courts at any time, then the whole facility. If none qualify, a static
// per-skill-level default is used with low confidence. Missing history is
// never an error; the estimate degrades instead.
func (p *Predictor) Predict(queueID string, position int) (Estimate, error) {
	info, err := p.queues.GetQueue(queueID)
	if err != nil {
		return Estimate{}, err
	}
	if position < 1 {
		return Estimate{}, fmt.Errorf("position must be >= 1, got %d", position)
	}

	gamesUntil := int(math.Ceil(float64(position) / playersPerRotation))

	courts, err := p.registry.ActiveCourts(info.FacilityID, info.SkillLevel)
	if err != nil {
		log.Error("Failed to resolve courts for prediction", "error", err, "queueID", queueID)
		courts = nil
	}
	courtIDs := make([]string, 0, len(courts))
	for _, c := range courts {
		courtIDs = append(courtIDs, c.ID)
	}

	avgSeconds, sampleCount, tier := p.averageDuration(courtIDs, info)
	avgMinutes := avgSeconds / 60

	// Courts run in parallel: with C effective courts, only every C-th
	// completed game frees a slot for this queue position.
	effectiveCourts := len(courtIDs)
	if effectiveCourts < 1 {
		effectiveCourts = 1
	}
	waves := math.Ceil(float64(gamesUntil) / float64(effectiveCourts))
	minutes := waves * avgMinutes

	return Estimate{
		Minutes:        minutes,
		DisplayMinutes: roundToNearest5(minutes),
		GamesUntilTurn: gamesUntil,
		Confidence:     confidenceFor(sampleCount, tier),
		Tier:           tier,
		SampleCount:    sampleCount,
	}, nil
}

// averageDuration walks the fallback tiers and returns the chosen weighted
// average in seconds along with the backing sample count and tier.
func (p *Predictor) averageDuration(courtIDs []string, info *queue.Info) (float64, int, Tier) {
	hour := p.now().Hour()

	if samples, err := p.samples.SamplesForCourts(courtIDs, hour, p.cfg.SampleLimit); err != nil {
		log.Error("Tier 1 sample query failed", "error", err)
	} else if len(samples) >= p.cfg.MinSamples {
		return WeightedAverage(samples), len(samples), TierCourtHour
	}

	if samples, err := p.samples.SamplesForCourts(courtIDs, -1, p.cfg.SampleLimit); err != nil {
		log.Error("Tier 2 sample query failed", "error", err)
	} else if len(samples) >= p.cfg.MinSamples {
		return WeightedAverage(samples), len(samples), TierCourt
	}

	if samples, err := p.samples.SamplesForFacility(info.FacilityID, p.cfg.SampleLimit); err != nil {
		log.Error("Tier 3 sample query failed", "error", err)
	} else if len(samples) >= p.cfg.MinSamples {
		return WeightedAverage(samples), len(samples), TierFacility
	}

	minutes, ok := defaultMinutesBySkill[info.SkillLevel]
	if !ok {
		minutes = fallbackDefaultMinutes
	}
	return minutes * 60, 0, TierDefault
}

// WeightedAverage computes a recency-weighted mean of samples ordered most
// recent first: weight exp(-0.05*i) for the i-th sample. Recent play
// dominates without discarding older data.
func WeightedAverage(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum, weightSum float64
	for i, v := range samples {
		w := math.Exp(-0.05 * float64(i))
		sum += v * w
		weightSum += w
	}
	return sum / weightSum
}

func confidenceFor(sampleCount int, tier Tier) Confidence {
	if tier == TierDefault {
		return ConfidenceLow
	}
	switch {
	case sampleCount >= 100:
		return ConfidenceHigh
	case sampleCount >= 30:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func roundToNearest5(minutes float64) int {
	return int(math.Round(minutes/5)) * 5
}
