package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Slack         SlackConfig
	ProjectID     string
	Rotation      RotationConfig
	Predictor     PredictorConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// RotationConfig holds the tunable thresholds for the rotation policy.
type RotationConfig struct {
	// FullRotationQueueLen is the waiting-queue length at or above which a
	// full rotation is forced after every game.
	FullRotationQueueLen int
	// MaxConsecutiveWins is the number of back-to-back wins after which the
	// winning pair is rotated off regardless of demand.
	MaxConsecutiveWins int
}

// PredictorConfig holds the tunables for the wait-time predictor.
type PredictorConfig struct {
	// MinSamples is the sample count a lookup tier needs before it is trusted.
	MinSamples int
	// SampleLimit caps how many recent samples a tier query returns.
	SampleLimit int
}
