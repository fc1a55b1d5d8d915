package main

import (
	"flag"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads at startup. Each flag defaults to
// an environment variable so the binary also runs unchanged in a container.
type Config struct {
	Addr      string
	StoreURL  string
	ScoreAPI  string
	LogLevel  string
	LogFormat string
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func loadConfig(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("puissance4", flag.ContinueOnError)

	port := envOr("PORT", "9000")
	fs.StringVar(&cfg.Addr, "addr", ":"+port, "listen address")
	fs.StringVar(&cfg.StoreURL, "store", envOr("DATABASE_URL", ""), "score store url (postgres://, sqlite://, file:, redis://, memory://); empty disables saving")
	fs.StringVar(&cfg.ScoreAPI, "score-api", envOr("SCORE_API_URL", ""), "base url of the score api used by live sessions (default: this server)")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "debug|info|warn|error")
	fs.StringVar(&cfg.LogFormat, "log-format", envOr("LOG_FORMAT", "text"), "text|json")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.ScoreAPI == "" {
		cfg.ScoreAPI = loopbackURL(cfg.Addr)
	}
	return cfg, nil
}

// loopbackURL turns a listen address like ":9000" or "0.0.0.0:9000" into a
// URL this process can call itself on.
func loopbackURL(addr string) string {
	host, port := "127.0.0.1", addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		if h := addr[:i]; h != "" && h != "0.0.0.0" && h != "[::]" {
			host = h
		}
		port = addr[i+1:]
	}
	return "http://" + host + ":" + port
}

func setupLogging(cfg Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(os.Stdout)
}
