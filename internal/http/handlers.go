package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/pubsub"
	"github.com/courtflow/courtflow/internal/queue"
)

// statusForError maps domain sentinel errors onto HTTP status codes. Unknown
// errors are a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, queue.ErrQueueNotFound),
		errors.Is(err, queue.ErrNotInQueue),
		errors.Is(err, ledger.ErrCourtNotFound),
		errors.Is(err, ledger.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, queue.ErrAlreadyInQueue),
		errors.Is(err, ledger.ErrCourtBusy),
		errors.Is(err, ledger.ErrAlreadyEnded):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrTiedScore),
		errors.Is(err, ledger.ErrInvalidTeamSize):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Error("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearQueuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear all queues")
		s.Queues.Clear()
		if !isDryRunFromContext(r) {
			if err := s.pubsub.SendMessage(pubsub.EventQueueCleared, nil); err != nil {
				log.Error("Failed to publish queue-cleared event", "error", err)
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Queues cleared!")
		log.Info("Queues cleared successfully")
	}
}

func (s *Server) CreateQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QueueID    string `json:"queue_id"`
			FacilityID string `json:"facility_id"`
			SkillLevel string `json:"skill_level"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Queues.CreateQueue(req.QueueID, req.FacilityID, req.SkillLevel); err != nil {
			log.Error("Failed to create queue", "error", err, "queueID", req.QueueID)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, "Queue %s created", req.QueueID)
	}
}

func (s *Server) JoinQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QueueID     string `json:"queue_id"`
			PlayerID    string `json:"player_id"`
			DisplayName string `json:"display_name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := s.Engine.JoinQueue(req.QueueID, req.PlayerID, req.DisplayName, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to join queue", "error", err, "queueID", req.QueueID, "playerID", req.PlayerID)
			respondError(w, err)
			return
		}
		respondJSON(w, result)
	}
}

func (s *Server) LeaveQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QueueID  string `json:"queue_id"`
			PlayerID string `json:"player_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		if err := s.Engine.LeaveQueue(req.QueueID, req.PlayerID, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to leave queue", "error", err, "queueID", req.QueueID, "playerID", req.PlayerID)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) QueueStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queueID := r.URL.Query().Get("queueID")
		if queueID == "" {
			http.Error(w, "queueID is required", http.StatusBadRequest)
			return
		}

		entries, err := s.Engine.QueueStatus(queueID)
		if err != nil {
			log.Error("Failed to get queue status", "error", err, "queueID", queueID)
			respondError(w, err)
			return
		}
		respondJSON(w, entries)
	}
}

func (s *Server) StartGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourtID string              `json:"court_id"`
			QueueID string              `json:"queue_id"`
			TeamA   []ledger.TeamPlayer `json:"team_a"`
			TeamB   []ledger.TeamPlayer `json:"team_b"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		game, err := s.Engine.StartGame(req.CourtID, req.QueueID, req.TeamA, req.TeamB, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to start game", "error", err, "courtID", req.CourtID)
			respondError(w, err)
			return
		}
		respondJSON(w, game)
	}
}

func (s *Server) EndGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GameID string `json:"game_id"`
			ScoreA int    `json:"score_a"`
			ScoreB int    `json:"score_b"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := s.Engine.EndGame(req.GameID, req.ScoreA, req.ScoreB, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to end game", "error", err, "gameID", req.GameID)
			respondError(w, err)
			return
		}
		respondJSON(w, result)
	}
}

func (s *Server) PredictWaitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queueID := r.URL.Query().Get("queueID")
		playerID := r.URL.Query().Get("playerID")
		if queueID == "" || playerID == "" {
			http.Error(w, "queueID and playerID are required", http.StatusBadRequest)
			return
		}

		estimate, err := s.Engine.PredictWait(queueID, playerID)
		if err != nil {
			log.Error("Failed to predict wait", "error", err, "queueID", queueID, "playerID", playerID)
			respondError(w, err)
			return
		}
		respondJSON(w, estimate)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondJSON(w, players)
	}
}

// LeaderboardHandler returns a handler that serves the player statistics leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Players.Leaderboard()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats from store", "error", err)
			return
		}
		respondJSON(w, stats)
	}
}

func (s *Server) RegisterWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FacilityID string `json:"facility_id"`
			URL        string `json:"url"`
			Secret     string `json:"secret"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.FacilityID == "" || req.URL == "" || req.Secret == "" {
			http.Error(w, "facility_id, url and secret are required", http.StatusBadRequest)
			return
		}

		id, err := s.Webhooks.Register(req.FacilityID, req.URL, req.Secret)
		if err != nil {
			log.Error("Failed to register webhook", "error", err, "facilityID", req.FacilityID)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		respondJSON(w, map[string]string{"id": id})
	}
}

// UpdatePlayerStatsHandler is the pubsub push endpoint: it unwraps the
// base64 envelope, decodes the game and replays its result onto the
// leaderboard counters.
func (s *Server) UpdatePlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received update player stats message", "body", string(bodyBytes))
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		game := ledger.Game{}
		if err := s.pubsub.ProcessMessage(rawData, &game); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would update player stats", "gameID", game.ID)
			w.Write([]byte("OK"))
			return
		}
		if err := s.Players.RecordResult(game.WinnerIDs(), game.LoserIDs()); err != nil {
			log.Error("Failed to update player stats", "error", err, "gameID", game.ID)
			http.Error(w, "Failed to update player stats", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
