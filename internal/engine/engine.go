package engine

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/courtflow/courtflow/internal/notify"
	"github.com/courtflow/courtflow/internal/predictor"
	"github.com/courtflow/courtflow/internal/pubsub"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/courtflow/courtflow/internal/rotation"
	"github.com/courtflow/courtflow/internal/webhook"
)

// streakLookback bounds how far back ConsecutiveWins scans. A pair is rotated
// off at three wins, so ten completed games is always enough history.
const streakLookback = 10

// New creates a new Engine.
func New(
	queues queue.QueueStore,
	games ledger.GameLedger,
	waitPredictor WaitPredictor,
	rotationCfg rotation.Config,
	notif Notifier,
	webhooks webhook.Emitter,
	pubsubClient pubsub.PubSubClient,
	metrics metrics.Metrics,
) *Engine {
	return &Engine{
		queues:    queues,
		games:     games,
		predictor: waitPredictor,
		rotation:  rotationCfg,
		trigger:   notify.New(queues, notif),
		notifier:  notif,
		webhooks:  webhooks,
		pubsub:    pubsubClient,
		metrics:   metrics,
	}
}

// JoinQueue appends the player and returns their position with an immediate
// wait estimate. The estimate is best effort: a prediction failure is logged
// and the join still succeeds.
func (e *Engine) JoinQueue(queueID, playerID, displayName string, dryRun bool) (*JoinResult, error) {
	position, err := e.queues.Join(queueID, playerID, displayName)
	if err != nil {
		return nil, err
	}
	e.metrics.IncQueueJoins()
	log.Info("Player joined queue", "queueID", queueID, "playerID", playerID, "position", position)

	result := &JoinResult{Position: position}
	if estimate, err := e.predictor.Predict(queueID, position); err != nil {
		log.Error("Failed to predict wait on join", "error", err, "queueID", queueID)
	} else {
		result.Estimate = &estimate
	}

	e.notifyPositions(queueID, dryRun)
	e.emit(queueID, webhook.EventPlayerJoined, map[string]any{
		"player_id": playerID,
		"position":  position,
	})
	return result, nil
}

// LeaveQueue removes the player; everyone behind them moves up one position.
func (e *Engine) LeaveQueue(queueID, playerID string, dryRun bool) error {
	if err := e.queues.Leave(queueID, playerID); err != nil {
		return err
	}
	e.metrics.IncQueueLeaves()
	log.Info("Player left queue", "queueID", queueID, "playerID", playerID)

	e.notifyPositions(queueID, dryRun)
	e.emit(queueID, webhook.EventPlayerLeft, map[string]any{
		"player_id": playerID,
	})
	return nil
}

// StartGame opens a game on the court and removes any of its players still
// sitting in the queue. Queue members behind them move up.
func (e *Engine) StartGame(courtID, queueID string, teamA, teamB []ledger.TeamPlayer, dryRun bool) (*ledger.Game, error) {
	game, err := e.games.Start(courtID, queueID, teamA, teamB)
	if err != nil {
		return nil, err
	}
	e.metrics.IncGamesStarted()
	log.Info("Game started", "gameID", game.ID, "courtID", courtID)

	starterIDs := make([]string, 0, len(teamA)+len(teamB))
	for _, p := range teamA {
		starterIDs = append(starterIDs, p.ID)
	}
	for _, p := range teamB {
		starterIDs = append(starterIDs, p.ID)
	}
	if _, err := e.queues.RotationApply(queueID, starterIDs); err != nil {
		log.Error("Failed to dequeue starting players", "error", err, "queueID", queueID, "gameID", game.ID)
	}

	e.notifyPositions(queueID, dryRun)
	e.emit(queueID, webhook.EventGameStarted, game)
	return game, nil
}

// EndGame completes the game and applies the rotation that follows: count the
// winning pair's streak, decide FULL or PARTIAL against current demand, and
// pull the next players off the queue front. Leaderboard counters are updated
// by the update-player-stats push subscription, not here, so a game counts
// exactly once. Notifications, webhooks and pubsub fire only after every
// store write has committed.
func (e *Engine) EndGame(gameID string, scoreA, scoreB int, dryRun bool) (*EndGameResult, error) {
	startTime := time.Now()

	game, err := e.games.End(gameID, scoreA, scoreB)
	if err != nil {
		return nil, err
	}
	e.metrics.IncGamesEnded()
	log.Info("Game ended", "gameID", game.ID, "scoreA", scoreA, "scoreB", scoreB, "winner", game.Winner)

	winners := game.WinnerIDs()
	losers := game.LoserIDs()

	streak, err := e.games.ConsecutiveWins(winners, game.CourtID, streakLookback)
	if err != nil {
		log.Error("Failed to count consecutive wins, assuming none", "error", err, "gameID", game.ID)
		streak = 0
	}

	// The game is already committed, so queue trouble from here on degrades
	// to an empty rotation instead of failing the call. A retry would only
	// hit AlreadyEnded.
	waiting, err := e.queues.WaitingCount(game.QueueID)
	if err != nil {
		log.Error("Failed to count waiting players, rotating without a pull", "error", err, "queueID", game.QueueID, "gameID", game.ID)
		waiting = 0
	}

	decision := e.rotation.Decide(waiting, winners, losers, streak)
	e.metrics.IncRotations(string(decision.Type))
	log.Info("Rotation decided", "gameID", game.ID, "type", decision.Type, "reason", decision.Reason, "queueLength", waiting, "streak", streak)

	nextUp, err := e.queues.PopNextUp(game.QueueID, decision.NextUpCount)
	if err != nil {
		log.Error("Failed to pull next players off the queue", "error", err, "queueID", game.QueueID, "gameID", game.ID)
		nextUp = nil
	}
	for _, entry := range nextUp {
		decision.NextUp = append(decision.NextUp, entry.PlayerID)
	}

	result := &EndGameResult{Game: game, Decision: decision, NextUp: nextUp}

	if err := e.notifier.SendGameResult(game, dryRun); err != nil {
		log.Error("Failed to send game result notification", "error", err, "gameID", game.ID)
	}
	e.notifyPositions(game.QueueID, dryRun)
	e.emit(game.QueueID, webhook.EventGameEnded, result)
	if !dryRun {
		if err := e.pubsub.SendMessage(pubsub.EventGameEnded, game); err != nil {
			log.Error("Failed to publish game-ended event", "error", err, "gameID", game.ID)
		}
		if err := e.pubsub.SendMessage(pubsub.EventRotationApplied, decision); err != nil {
			log.Error("Failed to publish rotation event", "error", err, "gameID", game.ID)
		}
		if err := e.pubsub.SendMessage(pubsub.EventUpdatePlayerStats, game); err != nil {
			log.Error("Failed to publish stats event", "error", err, "gameID", game.ID)
		}
	}
	e.metrics.ObserveEndGameDuration(time.Since(startTime).Seconds())
	return result, nil
}

// PredictWait estimates the wait for a player already in the queue.
func (e *Engine) PredictWait(queueID, playerID string) (*predictor.Estimate, error) {
	startTime := time.Now()
	defer func() {
		e.metrics.ObservePredictionDuration(time.Since(startTime).Seconds())
	}()

	entries, err := e.queues.Status(queueID)
	if err != nil {
		return nil, err
	}
	position := 0
	for _, entry := range entries {
		if entry.PlayerID == playerID {
			position = entry.Position
			break
		}
	}
	if position == 0 {
		return nil, queue.ErrNotInQueue
	}

	estimate, err := e.predictor.Predict(queueID, position)
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// QueueStatus returns the live ordered entry list.
func (e *Engine) QueueStatus(queueID string) ([]queue.Entry, error) {
	return e.queues.Status(queueID)
}

// notifyPositions re-reads the queue and fires tier notifications for any
// player whose position change crossed a threshold.
func (e *Engine) notifyPositions(queueID string, dryRun bool) {
	entries, err := e.queues.Status(queueID)
	if err != nil {
		log.Error("Failed to read queue for notifications", "error", err, "queueID", queueID)
		return
	}
	e.trigger.Evaluate(entries, dryRun)
}

// emit resolves the queue's facility and delivers a webhook event.
func (e *Engine) emit(queueID, eventType string, data any) {
	info, err := e.queues.GetQueue(queueID)
	if err != nil {
		log.Error("Failed to resolve facility for webhook", "error", err, "queueID", queueID)
		return
	}
	e.webhooks.Emit(info.FacilityID, eventType, data)
}
