package predictor

// Confidence is the qualitative trust label on an estimate, driven purely by
// how many historical samples backed the chosen lookup tier.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Tier records which fallback level produced the estimate.
type Tier string

const (
	TierCourtHour Tier = "court_hour"
	TierCourt     Tier = "court"
	TierFacility  Tier = "facility"
	TierDefault   Tier = "default"
)

// Estimate is a wait-time prediction for one queue position.
type Estimate struct {
	// Minutes is the raw estimate, kept unrounded for further computation.
	Minutes float64 `json:"minutes"`
	// DisplayMinutes is Minutes rounded to the nearest 5 for presentation.
	DisplayMinutes int        `json:"display_minutes"`
	GamesUntilTurn int        `json:"games_until_turn"`
	Confidence     Confidence `json:"confidence"`
	Tier           Tier       `json:"tier"`
	SampleCount    int        `json:"sample_count"`
}

// Config holds the predictor tunables.
type Config struct {
	// MinSamples is the count a tier needs before its average is trusted.
	MinSamples int
	// SampleLimit caps how many recent samples each tier query returns.
	SampleLimit int
}

// DefaultConfig returns the standard predictor tunables.
func DefaultConfig() Config {
	return Config{
		MinSamples:  10,
		SampleLimit: 200,
	}
}

// Static fallbacks when no tier has enough history, in minutes per skill level.
var defaultMinutesBySkill = map[string]float64{
	"beginner":     12,
	"intermediate": 15,
	"advanced":     18,
}

const fallbackDefaultMinutes = 15
