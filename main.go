// main.go - Entry point for the Connect 4 server
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"puissance4/api"
	"puissance4/db"
	"puissance4/scoresync"
	"puissance4/web"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect the score store; no url means scores stay in the session
	store, err := db.Open(ctx, cfg.StoreURL)
	if err != nil {
		log.Fatalf("Failed to open score store: %v", err)
	}
	if store == nil {
		log.Warn("No score store configured, saves will not be kept")
	} else {
		defer store.Close()
	}

	handler := api.New(store, scoresync.New(cfg.ScoreAPI, nil), web.Page())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.WithFields(log.Fields{
		"addr":      cfg.Addr,
		"store":     store != nil,
		"score_api": cfg.ScoreAPI,
	}).Info("Starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	log.Info("Server stopped")
}
