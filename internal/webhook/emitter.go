package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/google/uuid"
)

// SignatureHeader carries the HMAC-SHA256 signature of the request body,
// hex-encoded and prefixed with the algorithm name.
const SignatureHeader = "X-Webhook-Signature"

const deliveryTimeout = 10 * time.Second

type emitter struct {
	db      *sql.DB
	client  *http.Client
	metrics metrics.Metrics
	mu      sync.RWMutex
}

// New creates a new webhook Emitter backed by the given database.
func New(db *sql.DB, metrics metrics.Metrics) Emitter {
	return &emitter{
		db:      db,
		client:  &http.Client{Timeout: deliveryTimeout},
		metrics: metrics,
	}
}

func (e *emitter) Register(facilityID, url, secret string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := uuid.NewString()
	_, err := e.db.Exec(`
		INSERT INTO webhooks (id, facility_id, url, secret, active)
		VALUES (?, ?, ?, ?, 1)`,
		id, facilityID, url, secret)
	if err != nil {
		return "", fmt.Errorf("failed to register webhook: %w", err)
	}
	log.Info("Registered webhook", "facilityID", facilityID, "url", url)
	return id, nil
}

func (e *emitter) Deactivate(endpointID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.db.Exec(`UPDATE webhooks SET active = 0 WHERE id = ?`, endpointID)
	if err != nil {
		return fmt.Errorf("failed to deactivate webhook: %w", err)
	}
	return nil
}

func (e *emitter) List(facilityID string) ([]Endpoint, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rows, err := e.db.Query(`
		SELECT id, facility_id, url, secret, active
		FROM webhooks
		WHERE facility_id = ?`, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	defer rows.Close()

	var endpoints []Endpoint
	for rows.Next() {
		var ep Endpoint
		if err := rows.Scan(&ep.ID, &ep.FacilityID, &ep.URL, &ep.Secret, &ep.Active); err != nil {
			return nil, fmt.Errorf("failed to scan webhook: %w", err)
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, rows.Err()
}

func (e *emitter) Emit(facilityID, eventType string, data interface{}) {
	endpoints, err := e.List(facilityID)
	if err != nil {
		log.Error("Failed to load webhook endpoints", "error", err, "facilityID", facilityID)
		return
	}

	event := Event{
		Type:       eventType,
		FacilityID: facilityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Error("Failed to marshal webhook event", "error", err, "type", eventType)
		return
	}

	for _, ep := range endpoints {
		if !ep.Active {
			continue
		}
		if err := e.deliver(ep, body); err != nil {
			e.metrics.IncWebhooksFailed()
			log.Error("Webhook delivery failed", "error", err, "url", ep.URL, "type", eventType)
			continue
		}
		e.metrics.IncWebhooksSent()
		log.Debug("Webhook delivered", "url", ep.URL, "type", eventType)
	}
}

func (e *emitter) deliver(ep Endpoint, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Sign(ep.Secret, body))

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// Sign computes the signature header value for a payload.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether a received signature matches the payload.
// Comparison is constant-time.
func VerifySignature(secret string, body []byte, signature string) bool {
	return hmac.Equal([]byte(Sign(secret, body)), []byte(signature))
}
