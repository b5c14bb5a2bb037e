package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/database"
	"github.com/courtflow/courtflow/internal/facility"
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "seed.db",
		"MIGRATIONS_DIR": "migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, dbTeardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()

	registry := facility.New(db)
	if err := registry.UpsertFacility("main-hall", "Main Hall"); err != nil {
		log.Fatalf("Failed to seed facility: %s", err)
	}

	courts := []facility.Court{
		{ID: "court-1", FacilityID: "main-hall", Name: "Court 1", SkillLevel: facility.SkillBeginner, Active: true},
		{ID: "court-2", FacilityID: "main-hall", Name: "Court 2", SkillLevel: facility.SkillIntermediate, Active: true},
		{ID: "court-3", FacilityID: "main-hall", Name: "Court 3", SkillLevel: facility.SkillIntermediate, Active: true},
		{ID: "court-4", FacilityID: "main-hall", Name: "Court 4", SkillLevel: facility.SkillAdvanced, Active: true},
	}
	for _, c := range courts {
		if err := registry.UpsertCourt(c); err != nil {
			log.Fatalf("Failed to seed court %s: %s", c.ID, err)
		}
	}

	queues := queue.New(db)
	for _, skill := range []string{facility.SkillBeginner, facility.SkillIntermediate, facility.SkillAdvanced} {
		if err := queues.CreateQueue("main-hall-"+skill, "main-hall", skill); err != nil {
			log.Fatalf("Failed to seed queue for %s: %s", skill, err)
		}
	}

	// Dummy players to appear in historical games
	dummyPlayers := []ledger.TeamPlayer{
		{ID: "player-1", Name: "Seeder Player A"},
		{ID: "player-2", Name: "Seeder Player B"},
		{ID: "player-3", Name: "Seeder Player C"},
		{ID: "player-4", Name: "Seeder Player D"},
	}
	for _, p := range dummyPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, skill_level) VALUES (?, ?, ?)", p.ID, p.Name, facility.SkillIntermediate)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 games at a time
	const numGames = 5000

	log.Info("Preparing to insert historical games...", "total", numGames, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	teamABlob, _ := json.Marshal(dummyPlayers[:2])
	teamBBlob, _ := json.Marshal(dummyPlayers[2:])

	gameValues := make([]string, 0, batchSize)
	gameArgs := make([]interface{}, 0, batchSize*13)
	metricValues := make([]string, 0, batchSize)
	metricArgs := make([]interface{}, 0, batchSize*7)

	flush := func() {
		if len(gameValues) == 0 {
			return
		}
		gameStmt := fmt.Sprintf(
			"INSERT INTO games (id, court_id, queue_id, facility_id, team_a_json, team_b_json, started_at, ended_at, duration_seconds, score_a, score_b, winner, status) VALUES %s",
			strings.Join(gameValues, ","))
		if _, err := tx.Exec(gameStmt, gameArgs...); err != nil {
			log.Fatalf("Failed to insert game batch: %s", err)
		}
		metricStmt := fmt.Sprintf(
			"INSERT INTO game_metrics (game_id, facility_id, court_id, duration_seconds, hour_of_day, day_of_week, recorded_at) VALUES %s",
			strings.Join(metricValues, ","))
		if _, err := tx.Exec(metricStmt, metricArgs...); err != nil {
			log.Fatalf("Failed to insert metric batch: %s", err)
		}
		gameValues = gameValues[:0]
		gameArgs = gameArgs[:0]
		metricValues = metricValues[:0]
		metricArgs = metricArgs[:0]
	}

	for i := 0; i < numGames; i++ {
		court := courts[rand.Intn(len(courts))]
		startedAt := time.Now().Add(-time.Duration(rand.Intn(180*24)) * time.Hour)
		// Durations cluster around 15 minutes, longer on the advanced court.
		durationSeconds := 600 + rand.Intn(900)
		if court.SkillLevel == facility.SkillAdvanced {
			durationSeconds += 300
		}
		endedAt := startedAt.Add(time.Duration(durationSeconds) * time.Second)
		winner := "A"
		scoreA, scoreB := 11, rand.Intn(10)
		if rand.Intn(2) == 1 {
			winner = "B"
			scoreA, scoreB = scoreB, scoreA
		}

		gameID := uuid.NewString()
		gameValues = append(gameValues, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		gameArgs = append(gameArgs,
			gameID,
			court.ID,
			"main-hall-"+court.SkillLevel,
			"main-hall",
			string(teamABlob),
			string(teamBBlob),
			startedAt.Unix(),
			endedAt.Unix(),
			durationSeconds,
			scoreA,
			scoreB,
			winner,
			"COMPLETED",
		)
		metricValues = append(metricValues, "(?, ?, ?, ?, ?, ?, ?)")
		metricArgs = append(metricArgs,
			gameID,
			"main-hall",
			court.ID,
			durationSeconds,
			endedAt.Hour(),
			int(endedAt.Weekday()),
			endedAt.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numGames {
			flush()
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit seed transaction: %s", err)
	}

	log.Info("Seeding complete.", "games", numGames, "duration", time.Since(startTime))
}
