package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncQueueJoins()
	IncQueueLeaves()
	IncGamesStarted()
	IncGamesEnded()
	IncRotations(rotationType string)
	ObserveEndGameDuration(duration float64)
	ObservePredictionDuration(duration float64)
	IncNotifSent()
	IncNotifFailed()
	IncWebhooksSent()
	IncWebhooksFailed()
	SetStartupTime(duration float64)
}
