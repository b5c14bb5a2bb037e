package webhook_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courtflow/courtflow/internal/database"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/courtflow/courtflow/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEmitter(t *testing.T) (webhook.Emitter, *metrics.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO facilities (id, name) VALUES ('fac1', 'Test Facility')`)
	require.NoError(t, err)

	metr := metrics.NewMock()
	return webhook.New(db, metr), metr, dbTeardown
}

func TestEmit_DeliversSignedPayload(t *testing.T) {
	emitter, metr, teardown := setupEmitter(t)
	defer teardown()

	var gotBody []byte
	var gotSignature string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get(webhook.SignatureHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := emitter.Register("fac1", server.URL, "topsecret")
	require.NoError(t, err)

	emitter.Emit("fac1", webhook.EventPlayerJoined, map[string]string{"player_id": "p1"})

	require.NotEmpty(t, gotBody, "endpoint should have received the event")
	assert.True(t, webhook.VerifySignature("topsecret", gotBody, gotSignature))
	assert.False(t, webhook.VerifySignature("wrongsecret", gotBody, gotSignature))

	var event webhook.Event
	require.NoError(t, json.Unmarshal(gotBody, &event))
	assert.Equal(t, webhook.EventPlayerJoined, event.Type)
	assert.Equal(t, "fac1", event.FacilityID)
	assert.Equal(t, 1, metr.WebhooksSentCount)
}

func TestEmit_SkipsInactiveEndpoints(t *testing.T) {
	emitter, metr, teardown := setupEmitter(t)
	defer teardown()

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	id, err := emitter.Register("fac1", server.URL, "s")
	require.NoError(t, err)
	require.NoError(t, emitter.Deactivate(id))

	emitter.Emit("fac1", webhook.EventGameEnded, nil)
	assert.Equal(t, 0, hits)
	assert.Equal(t, 0, metr.WebhooksSentCount)
}

func TestEmit_CountsFailures(t *testing.T) {
	emitter, metr, teardown := setupEmitter(t)
	defer teardown()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := emitter.Register("fac1", server.URL, "s")
	require.NoError(t, err)

	emitter.Emit("fac1", webhook.EventGameStarted, nil)
	assert.Equal(t, 1, metr.WebhooksFailedCount)
	assert.Equal(t, 0, metr.WebhooksSentCount)
}

func TestSign_Format(t *testing.T) {
	sig := webhook.Sign("secret", []byte(`{"hello":"world"}`))
	assert.Regexp(t, `^sha256=[0-9a-f]{64}$`, sig)
}
