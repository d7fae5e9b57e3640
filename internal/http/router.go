package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/redmonkez12/profile-directory/docs" // registers swagger docs
	"github.com/redmonkez12/profile-directory/internal/auth"
	"github.com/redmonkez12/profile-directory/internal/config"
	"github.com/redmonkez12/profile-directory/internal/httputil"
	"github.com/redmonkez12/profile-directory/internal/logging"
	"github.com/redmonkez12/profile-directory/internal/user"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, authHandler *auth.Handler, profileHandler *user.Handler, store Pinger, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.TrustedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth(store))

	// Swagger UI is only mounted in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/profiles", profileHandler.ListProfiles)
		r.Get("/search", profileHandler.Search)
	})

	return r
}

// handleHealth reports whether the store is reachable
// @Summary      Health check
// @Description  Check that the API is running and the store answers
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func handleHealth(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logging.GetLoggerFromContext(r.Context()).Error("health check failed", "error", err.Error())
			httputil.RespondJSON(w, map[string]string{"status": "store unavailable"}, http.StatusServiceUnavailable)
			return
		}

		httputil.RespondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
