package webhook

// Emitter delivers domain events to registered webhook endpoints.
type Emitter interface {
	// Register adds or reactivates an endpoint for a facility.
	Register(facilityID, url, secret string) (string, error)
	// Deactivate disables an endpoint without removing its row.
	Deactivate(endpointID string) error
	// List returns the endpoints registered for a facility.
	List(facilityID string) ([]Endpoint, error)
	// Emit delivers an event to every active endpoint of the facility.
	// Delivery failures are logged and counted, never returned: a dead
	// endpoint must not affect queue flow.
	Emit(facilityID, eventType string, data interface{})
}
