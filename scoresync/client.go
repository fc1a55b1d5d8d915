// Package scoresync pushes a session's tally to the score API and reads the
// aggregate leaderboard back. Failures never reach the game: a save reports
// one of a few outcomes, a refresh just fails and the caller keeps what it had.
package scoresync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"puissance4/games"
)

const (
	ScoresPath      = "/api/scores"
	LeaderboardPath = "/api/leaderboard"
)

// SaveResult is what became of a save request.
type SaveResult int

const (
	// Saved means the tally was written to the score store.
	Saved SaveResult = iota
	// SavedSession means the server has no store; the tally lives only in
	// the session.
	SavedSession
	// Rejected means the server answered with an error status.
	Rejected
	// Offline means the server could not be reached or answered garbage.
	Offline
)

// Notice is the one-line message shown to the player for r.
func (r SaveResult) Notice() string {
	switch r {
	case Saved:
		return "Scores saved!"
	case SavedSession:
		return "Scores saved (session only)"
	case Rejected:
		return "Could not save scores"
	default:
		return "Offline - scores kept for this session only"
	}
}

// Succeeded reports whether the server accepted the tally.
func (r SaveResult) Succeeded() bool {
	return r == Saved || r == SavedSession
}

func (r SaveResult) String() string {
	switch r {
	case Saved:
		return "saved"
	case SavedSession:
		return "session"
	case Rejected:
		return "rejected"
	default:
		return "offline"
	}
}

type saveResponse struct {
	Success bool   `json:"success"`
	Saved   bool   `json:"saved"`
	Note    string `json:"note,omitempty"`
}

// Client talks to the score API at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A nil httpClient gets a default one with a
// ten second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Save sends the tally once. It never retries and never returns an error.
func (c *Client) Save(ctx context.Context, tally games.Tally) SaveResult {
	body, err := json.Marshal(tally)
	if err != nil {
		return Offline
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ScoresPath, bytes.NewReader(body))
	if err != nil {
		log.Printf("Error building save request: %v", err)
		return Offline
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Error saving scores: %v", err)
		return Offline
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Score API refused save: %s", resp.Status)
		return Rejected
	}

	var saved saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		log.Printf("Error decoding save response: %v", err)
		return Offline
	}
	if saved.Saved {
		return Saved
	}
	return SavedSession
}

// Refresh fetches the aggregate summary.
func (c *Client) Refresh(ctx context.Context) (games.Summary, error) {
	var summary games.Summary

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+LeaderboardPath, nil)
	if err != nil {
		return summary, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return summary, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return summary, fmt.Errorf("fetch leaderboard: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return games.Summary{}, fmt.Errorf("decode leaderboard: %w", err)
	}
	return summary, nil
}
