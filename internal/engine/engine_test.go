package engine_test

import (
	"errors"
	"testing"

	"github.com/courtflow/courtflow/internal/database"
	"github.com/courtflow/courtflow/internal/engine"
	"github.com/courtflow/courtflow/internal/facility"
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/courtflow/courtflow/internal/notifier"
	"github.com/courtflow/courtflow/internal/predictor"
	"github.com/courtflow/courtflow/internal/pubsub"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/courtflow/courtflow/internal/rotation"
	"github.com/courtflow/courtflow/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineDeps struct {
	notif    *notifier.Mock
	webhooks *webhook.Mock
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Mock
}

// setupEngine wires an engine against real stores on an in-memory database,
// with the outbound collaborators mocked.
func setupEngine(t *testing.T) (*engine.Engine, *engineDeps, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	registry := facility.New(db)
	require.NoError(t, registry.UpsertFacility("fac1", "Test Facility"))
	require.NoError(t, registry.UpsertCourt(facility.Court{
		ID: "court-1", FacilityID: "fac1", Name: "Court 1",
		SkillLevel: facility.SkillIntermediate, Active: true,
	}))

	queues := queue.New(db)
	require.NoError(t, queues.CreateQueue("q1", "fac1", facility.SkillIntermediate))

	games := ledger.New(db)
	deps := &engineDeps{
		notif:    notifier.NewMock(),
		webhooks: webhook.NewMock(),
		pubsub:   pubsub.NewMock(),
		metrics:  metrics.NewMock(),
	}

	pred := predictor.New(games, queues, registry, predictor.DefaultConfig())
	eng := engine.New(queues, games, pred, rotation.DefaultConfig(),
		deps.notif, deps.webhooks, deps.pubsub, deps.metrics)
	return eng, deps, dbTeardown
}

func pair(a, b string) []ledger.TeamPlayer {
	return []ledger.TeamPlayer{{ID: a, Name: "Player " + a}, {ID: b, Name: "Player " + b}}
}

func joinN(t *testing.T, eng *engine.Engine, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := eng.JoinQueue("q1", id, "Player "+id, false)
		require.NoError(t, err)
	}
}

func TestJoinQueue_ReturnsPositionAndEstimate(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	result, err := eng.JoinQueue("q1", "p1", "Player One", false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Position)
	require.NotNil(t, result.Estimate, "join always carries a wait estimate")
	assert.Equal(t, predictor.TierDefault, result.Estimate.Tier, "no history yet, default tier expected")
	assert.Equal(t, 1, deps.metrics.QueueJoinCount)

	require.Len(t, deps.webhooks.EmitCalls, 1)
	assert.Equal(t, webhook.EventPlayerJoined, deps.webhooks.EmitCalls[0].EventType)
	assert.Equal(t, "fac1", deps.webhooks.EmitCalls[0].FacilityID)
}

func TestJoinQueue_DuplicateRejected(t *testing.T) {
	eng, _, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "p1")
	_, err := eng.JoinQueue("q1", "p1", "Player One", false)
	assert.ErrorIs(t, err, queue.ErrAlreadyInQueue)
}

func TestJoinQueue_NotifiesFrontPositions(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "p1", "p2", "p3", "p4", "p5")

	assert.Len(t, deps.notif.SendNextUpCalls, 2, "positions 1 and 2 hear next-up")
	assert.Len(t, deps.notif.SendApproachingCalls, 2, "positions 3 and 4 hear approaching")
}

func TestLeaveQueue_MovesOthersUp(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "p1", "p2", "p3")
	require.NoError(t, eng.LeaveQueue("q1", "p1", false))

	entries, err := eng.QueueStatus("q1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 1, deps.metrics.QueueLeaveCount)

	assert.ErrorIs(t, eng.LeaveQueue("q1", "p1", false), queue.ErrNotInQueue)
}

func TestStartGame_DequeuesStarters(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "a", "b", "c", "d", "e")

	game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusInProgress, game.Status)

	entries, err := eng.QueueStatus("q1")
	require.NoError(t, err)
	require.Len(t, entries, 1, "the four starters leave the queue")
	assert.Equal(t, "e", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 1, deps.metrics.GamesStartedCount)
}

func TestStartGame_CourtBusy(t *testing.T) {
	eng, _, teardown := setupEngine(t)
	defer teardown()

	_, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
	require.NoError(t, err)
	_, err = eng.StartGame("court-1", "q1", pair("e", "f"), pair("g", "h"), false)
	assert.ErrorIs(t, err, ledger.ErrCourtBusy)
}

func TestEndGame_PartialRotation(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "a", "b", "c", "d", "e", "f", "g")
	game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
	require.NoError(t, err)
	// Queue is now e,f,g: three waiting, below the high-demand threshold.

	result, err := eng.EndGame(game.ID, 11, 7, false)
	require.NoError(t, err)

	assert.Equal(t, rotation.Partial, result.Decision.Type)
	assert.Equal(t, rotation.ReasonNormalPlay, result.Decision.Reason)
	assert.ElementsMatch(t, []string{"c", "d"}, result.Decision.PlayersOff)
	assert.ElementsMatch(t, []string{"a", "b"}, result.Decision.PlayersStay)
	require.Len(t, result.NextUp, 2)
	assert.Equal(t, "e", result.NextUp[0].PlayerID)
	assert.Equal(t, "f", result.NextUp[1].PlayerID)

	entries, err := eng.QueueStatus("q1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "g", entries[0].PlayerID)

	require.Len(t, deps.notif.SendGameResultCalls, 1)
	assert.Equal(t, map[string]int{"PARTIAL": 1}, deps.metrics.RotationCounts)
	require.Len(t, deps.pubsub.SendMessageCalls, 3)
	assert.Equal(t, "game-ended", deps.pubsub.SendMessageCalls[0].Topic)
	assert.Equal(t, "rotation-applied", deps.pubsub.SendMessageCalls[1].Topic)
	assert.Equal(t, "update-player-stats", deps.pubsub.SendMessageCalls[2].Topic)
}

// Twelve players join; a,b vs c,d start, leaving eight waiting. Eight or
// more waiting forces a full rotation: all four come off, four are pulled
// from the front, and the rest close up to dense positions.
func TestEndGame_FullRotationHighDemand(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	all := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	joinN(t, eng, all...)

	game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
	require.NoError(t, err)
	// Eight players remain waiting: e..l.

	result, err := eng.EndGame(game.ID, 11, 5, false)
	require.NoError(t, err)

	assert.Equal(t, rotation.Full, result.Decision.Type)
	assert.Equal(t, rotation.ReasonHighDemand, result.Decision.Reason)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, result.Decision.PlayersOff)
	assert.Empty(t, result.Decision.PlayersStay)
	require.Len(t, result.NextUp, 4)
	assert.Equal(t, []string{"e", "f", "g", "h"}, result.Decision.NextUp)

	entries, err := eng.QueueStatus("q1")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	for i, want := range []string{"i", "j", "k", "l"} {
		assert.Equal(t, want, entries[i].PlayerID)
		assert.Equal(t, i+1, entries[i].Position)
	}
	assert.Equal(t, map[string]int{"FULL": 1}, deps.metrics.RotationCounts)
}

func TestEndGame_ConsecutiveWinLimit(t *testing.T) {
	eng, _, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "e", "f")

	// The same pair wins three games in a row on the court. The streak count
	// includes the game being recorded, so the third end hits the limit.
	var lastResult *engine.EndGameResult
	for i := 0; i < 3; i++ {
		game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
		require.NoError(t, err)
		lastResult, err = eng.EndGame(game.ID, 11, 5, false)
		require.NoError(t, err)
	}

	assert.Equal(t, rotation.Full, lastResult.Decision.Type)
	assert.Equal(t, rotation.ReasonConsecutiveWinLimit, lastResult.Decision.Reason)
}

func TestEndGame_TiedScoreRejected(t *testing.T) {
	eng, _, teardown := setupEngine(t)
	defer teardown()

	game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
	require.NoError(t, err)
	_, err = eng.EndGame(game.ID, 7, 7, false)
	assert.ErrorIs(t, err, ledger.ErrTiedScore)

	_, err = eng.EndGame(game.ID, 11, 5, false)
	require.NoError(t, err)
	_, err = eng.EndGame(game.ID, 11, 5, false)
	assert.ErrorIs(t, err, ledger.ErrAlreadyEnded)
}

func TestPredictWait(t *testing.T) {
	eng, _, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "p1", "p2", "p3")

	estimate, err := eng.PredictWait("q1", "p3")
	require.NoError(t, err)
	assert.Equal(t, 2, estimate.GamesUntilTurn, "position 3 waits two games at two seats per rotation")
	assert.Equal(t, predictor.ConfidenceLow, estimate.Confidence)

	_, err = eng.PredictWait("q1", "ghost")
	assert.ErrorIs(t, err, queue.ErrNotInQueue)
}

// Once End has committed, a retry can only hit AlreadyEnded, so queue
// failures afterwards degrade to an empty rotation pull instead of failing
// the whole call.
func TestEndGame_QueueFailureDegradesToEmptyRotation(t *testing.T) {
	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer dbTeardown()

	registry := facility.New(db)
	require.NoError(t, registry.UpsertFacility("fac1", "Test Facility"))
	require.NoError(t, registry.UpsertCourt(facility.Court{
		ID: "court-1", FacilityID: "fac1", Name: "Court 1",
		SkillLevel: facility.SkillIntermediate, Active: true,
	}))

	queues := queue.NewMock()
	queues.WaitingCountFunc = func(string) (int, error) {
		return 0, errors.New("database is locked")
	}
	queues.PopNextUpFunc = func(string, int) ([]queue.Entry, error) {
		return nil, errors.New("database is locked")
	}

	games := ledger.New(db)
	pred := predictor.New(games, queues, registry, predictor.DefaultConfig())
	eng := engine.New(queues, games, pred, rotation.DefaultConfig(),
		notifier.NewMock(), webhook.NewMock(), pubsub.NewMock(), metrics.NewMock())

	game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), false)
	require.NoError(t, err)

	result, err := eng.EndGame(game.ID, 11, 5, false)
	require.NoError(t, err, "completed game must be returned despite queue trouble")
	assert.Equal(t, ledger.StatusCompleted, result.Game.Status)
	assert.Empty(t, result.NextUp)
	assert.Empty(t, result.Decision.NextUp)

	got, err := games.Get(game.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, got.Status)
}

func TestDryRun_SuppressesOutboundSideEffects(t *testing.T) {
	eng, deps, teardown := setupEngine(t)
	defer teardown()

	joinN(t, eng, "e", "f")
	game, err := eng.StartGame("court-1", "q1", pair("a", "b"), pair("c", "d"), true)
	require.NoError(t, err)
	_, err = eng.EndGame(game.ID, 11, 5, true)
	require.NoError(t, err)

	assert.Empty(t, deps.pubsub.SendMessageCalls, "dry run must not publish")
}
