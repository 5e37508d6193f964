package http

import (
	"log/slog"
	"net/http"

	"loan-insight/observability"
)

// Routes wires every endpoint onto a new mux.
type Routes struct {
	Assessment *AssessmentHandler
	Report     *ReportHandler
	Health     *HealthHandler
	Limiter    *RateLimiter
	Metrics    *observability.Metrics
	Logger     *slog.Logger
	StaticDir  string
}

func (rt Routes) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	logged := func(route string, h http.Handler) http.Handler {
		return LoggingMiddleware(rt.Logger, rt.Metrics, route)(h)
	}

	mux.Handle("POST /api/assess", logged("/api/assess",
		RateLimitMiddleware(rt.Limiter, http.HandlerFunc(rt.Assessment.Assess)),
	))
	mux.Handle("GET /api/reports/{id}", logged("/api/reports/{id}", http.HandlerFunc(rt.Report.Download)))

	rt.Health.RegisterRoutes(mux)
	mux.Handle("GET /metrics", rt.Metrics.Handler())

	if rt.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(rt.StaticDir)))
	}
	return mux
}
