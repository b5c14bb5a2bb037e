package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	queueID     string
	playerID    string
	displayName string
	gameID      string
	scoreA      int
	scoreB      int
)

func init() {
	joinCmd.Flags().StringVar(&queueID, "queue", "", "Queue id")
	joinCmd.Flags().StringVar(&playerID, "player", "", "Player id")
	joinCmd.Flags().StringVar(&displayName, "name", "", "Display name")
	leaveCmd.Flags().StringVar(&queueID, "queue", "", "Queue id")
	leaveCmd.Flags().StringVar(&playerID, "player", "", "Player id")
	statusCmd.Flags().StringVar(&queueID, "queue", "", "Queue id")
	predictCmd.Flags().StringVar(&queueID, "queue", "", "Queue id")
	predictCmd.Flags().StringVar(&playerID, "player", "", "Player id")
	endGameCmd.Flags().StringVar(&gameID, "game", "", "Game id")
	endGameCmd.Flags().IntVar(&scoreA, "score-a", 0, "Team A score")
	endGameCmd.Flags().IntVar(&scoreB, "score-b", 0, "Team B score")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(endGameCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join a queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queues/join", map[string]string{
			"queue_id":     queueID,
			"player_id":    playerID,
			"display_name": displayName,
		})
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave a queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queues/leave", map[string]string{
			"queue_id":  queueID,
			"player_id": playerID,
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the live queue in position order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/queues/status?queueID=" + url.QueryEscape(queueID))
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the wait for a queued player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/predict?queueID=%s&playerID=%s",
			url.QueryEscape(queueID), url.QueryEscape(playerID)))
	},
}

var endGameCmd = &cobra.Command{
	Use:   "end-game",
	Short: "Record a final score and apply the rotation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/games/end", map[string]any{
			"game_id": gameID,
			"score_a": scoreA,
			"score_b": scoreB,
		})
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the known players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the win/loss leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
