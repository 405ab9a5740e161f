// Package api serves the quiz engine over HTTP.
package api

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
)

type Options struct {
	// RateLimit is requests per minute per client IP on /api/v1. Zero
	// disables it.
	RateLimit   int
	CORSOrigins []string
}

type Server struct {
	svc      *engine.Service
	validate *validator.Validate
	opts     Options
}

func New(svc *engine.Service, opts Options) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{svc: svc, validate: v, opts: opts}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(s.opts.CORSOrigins))
	r.Use(instrument)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(s.opts.RateLimit))

		r.Get("/achievements", s.listCatalog)
		r.Get("/highscores", s.highscores)

		r.Get("/movies", s.listMovies)
		r.Post("/movies", s.createMovie)
		r.Post("/movies/{movieID}/quizzes", s.generateQuiz)
		r.Get("/questions/{questionID}/stats", s.questionStats)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Post("/quiz-attempts", s.submitQuiz)
			r.Post("/watchlist", s.addWatchlist)
			r.Post("/reviews", s.addReview)
			r.Get("/achievements", s.userAchievements)
			r.Post("/achievements/recheck", s.recheck)
			r.Get("/stats", s.userStats)
		})
	})
	return r
}
