package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/picourse/api/internal/metrics"
	"github.com/picourse/api/internal/service"
	"github.com/picourse/api/internal/token"
	"go.uber.org/zap"
)

// Pinger is the liveness check surface; satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	auth     *service.AuthService
	tutors   *service.TutorService
	lessons  *service.LessonService
	tokens   *token.Manager
	logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(
	auth *service.AuthService,
	tutors *service.TutorService,
	lessons *service.LessonService,
	tokens *token.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		tutors:   tutors,
		lessons:  lessons,
		tokens:   tokens,
		logger:   logger,
		validate: validator.New(),
	}
}

// Health pings the database with a short deadline.
func (h *Handler) Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
			defer cancel()
			t0 := time.Now()
			if err := db.Ping(ctx); err != nil {
				http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
			metrics.ObserveDBPing(time.Since(t0))
		}
		_, _ = w.Write([]byte("ok"))
	}
}
