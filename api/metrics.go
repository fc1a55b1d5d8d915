package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"puissance4/games"
)

const MetricsPath = "/metrics"

var (
	gamesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "connect4_games_total", Help: "Finished games by result"},
		[]string{"result"},
	)
	scoreSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "connect4_score_saves_total", Help: "Score saves by whether a store kept them"},
		[]string{"stored"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)
	httpRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_requests_in_flight", Help: "Current in-flight requests"},
	)
)

func init() {
	prometheus.MustRegister(gamesTotal, scoreSaves)
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpRequestsInFlight)
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// resultLabel names the bucket a finished game lands in.
func resultLabel(s games.State) string {
	if s.Draw() {
		return "draw"
	}
	if s.Winner == games.RedToken {
		return "p1"
	}
	return "p2"
}
