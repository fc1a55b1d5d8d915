package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"puissance4/db"
	"puissance4/games"
	"puissance4/scoresync"
)

const noStoreNote = "table store not configured"

// Error response structure
type ErrorResponse struct {
	Error string `json:"error"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	Saved   bool   `json:"saved"`
	Note    string `json:"note,omitempty"`
}

// Handler serves the score API, live sessions and the game page. Store is nil
// when no table store is configured.
type Handler struct {
	Store db.ScoreStore
	Sync  Syncer
	Page  []byte
}

func New(store db.ScoreStore, sync Syncer, page []byte) *Handler {
	return &Handler{Store: store, Sync: sync, Page: page}
}

// Router builds the route table. Anything that does not match a route exactly,
// path and method, gets the game page.
func (h *Handler) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc(scoresync.ScoresPath, h.handle(h.SaveScores)).Methods(http.MethodPost)
	router.HandleFunc(scoresync.LeaderboardPath, h.handle(h.GetLeaderboard)).Methods(http.MethodGet)
	router.HandleFunc(SessionPath, h.ServeSession).Methods(http.MethodGet)
	router.Handle(MetricsPath, metricsHandler()).Methods(http.MethodGet)

	page := http.HandlerFunc(h.ServePage)
	router.NotFoundHandler = page
	router.MethodNotAllowedHandler = page

	return instrument(router)
}

// apiFunc is a handler that only writes on success. Errors it returns are
// turned into a 500 by handle.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

func (h *Handler) handle(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			log.WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			}).WithError(err).Error("api request failed")
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// Response helpers
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// SaveScores appends the posted tally to the store. Missing counters count as
// zero.
func (h *Handler) SaveScores(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	var tally *games.Tally
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&tally); err != nil {
		return fmt.Errorf("invalid score payload: %w", err)
	}
	if tally == nil {
		return errors.New("invalid score payload: expected an object")
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid score payload: unexpected data after object")
	}

	if h.Store == nil {
		scoreSaves.WithLabelValues("false").Inc()
		respondWithJSON(w, http.StatusOK, saveResponse{Success: true, Saved: false, Note: noStoreNote})
		return nil
	}

	if err := h.Store.Append(r.Context(), db.NewScoreRecord(*tally)); err != nil {
		return err
	}
	scoreSaves.WithLabelValues("true").Inc()
	log.Printf("Saved scores p1=%d p2=%d draw=%d", tally.P1, tally.P2, tally.Draw)

	respondWithJSON(w, http.StatusOK, saveResponse{Success: true, Saved: true})
	return nil
}

// GetLeaderboard returns the totals over every saved tally.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) error {
	var summary games.Summary
	if h.Store != nil {
		var err error
		if summary, err = h.Store.Summary(r.Context()); err != nil {
			return err
		}
	}

	respondWithJSON(w, http.StatusOK, summary)
	return nil
}

// ServePage writes the game page.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.Page)
}
