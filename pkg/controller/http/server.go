package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/secmon-lab/mnemosyne/pkg/service/ratelimit"
	"github.com/secmon-lab/mnemosyne/pkg/usecase"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	limiter *ratelimit.Limiter
}

type Options func(*Server)

// WithRateLimiter enables per-client request throttling on the API routes
func WithRateLimiter(limiter *ratelimit.Limiter) Options {
	return func(s *Server) {
		s.limiter = limiter
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", UserIDHeader},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Group(func(r chi.Router) {
			r.Use(userIDMiddleware)
			if s.limiter != nil {
				r.Use(rateLimitMiddleware(s.limiter))
			}

			r.Post("/chat", s.handleChat)

			r.Get("/memory", s.handleGetMemory)
			r.Post("/memory/clear", s.handleClearMemory)
			r.Get("/export", s.handleExport)

			r.Post("/goals", s.handleAddGoal)
			r.Post("/goals/{id}/complete", s.handleCompleteGoal)
			r.Post("/goals/{id}/progress", s.handleGoalProgress)
			r.Delete("/goals/{id}", s.handleDeleteGoal)

			r.Post("/habits", s.handleAddHabit)
			r.Post("/habits/{id}/checkin", s.handleHabitCheckIn)
			r.Delete("/habits/{id}", s.handleDeleteHabit)

			r.Post("/mood", s.handleMoodCheck)
			r.Post("/reflections", s.handleAddReflection)

			r.Get("/action-items", s.handleActionItems)
			r.Get("/insights", s.handleInsights)
			r.Get("/report", s.handleReport)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
