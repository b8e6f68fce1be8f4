package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/web/handlers"
	"github.com/jusunglee/hangulfun/internal/web/middleware"
)

type Router struct {
	repo       db.Repository
	log        *slog.Logger
	translator handlers.Translator
}

// NewRouter wires the JSON API. translator may be nil, in which case
// POST /api/v1/translate answers 503.
func NewRouter(repo db.Repository, log *slog.Logger, translator handlers.Translator) *Router {
	return &Router{
		repo:       repo,
		log:        log,
		translator: translator,
	}
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	analysisHandler := handlers.NewAnalysisHandler(r.repo, r.log)
	lookupHandler := handlers.NewLookupHandler(r.repo, r.log)
	translationHandler := handlers.NewTranslationHandler(r.translator, r.log)

	rateLimiter := middleware.NewRateLimiter(30, time.Minute)

	mux.Handle("GET /api/v1/analyze",
		middleware.Chain(
			http.HandlerFunc(analysisHandler.Analyze),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
		),
	)

	mux.Handle("GET /api/v1/romanize",
		middleware.Chain(
			http.HandlerFunc(analysisHandler.Romanize),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, max-age=86400"),
		),
	)

	mux.Handle("GET /api/v1/lookups",
		middleware.Chain(
			http.HandlerFunc(lookupHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("POST /api/v1/translate",
		middleware.Chain(
			http.HandlerFunc(translationHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.MaxBytes(16<<10),
		),
	)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return middleware.CORS(mux)
}
