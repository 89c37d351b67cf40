package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/handlers"
	"github.com/AnshRaj112/heritage-backend/internal/middleware"
)

// Options carries the middleware that differs between deployments.
type Options struct {
	AllowedOrigins []string
	// SubmitLimit guards POST routes; nil disables rate limiting.
	SubmitLimit func(http.Handler) http.Handler
	// TrustProxy mounts chi's RealIP so rate limits key on the forwarded
	// client address. Without it only the socket address counts.
	TrustProxy bool
	// ExportEnabled mounts the snapshot endpoint.
	ExportEnabled bool
	// Production adds HSTS and the Host check.
	Production  bool
	AllowedHost string
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewRouter builds the full middleware stack and mounts every route.
func NewRouter(h *handlers.Handler, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(logger.Named("HTTP")))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))
	if opts.Production {
		for _, mw := range middleware.ProductionSecurity(opts.AllowedHost) {
			r.Use(mw)
		}
	} else {
		r.Use(middleware.SecurityHeaders)
	}

	SetupRoutes(r, h, opts)
	return r
}

func SetupRoutes(r chi.Router, h *handlers.Handler, opts Options) {
	limit := opts.SubmitLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/health", h.Health)

	// Mirrored images
	r.Handle("/media/place_histories/*", h.Media())

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(opts.AllowedOrigins))
		r.With(limit).Post("/stories", h.CreateStory)
		r.Get("/stories", h.GetStories)
		r.With(limit).Post("/places", h.CreatePlace)
		r.Get("/places", h.GetPlaces)
		if opts.ExportEnabled {
			r.With(limit).Post("/admin/export", h.ExportData)
		}
	})

	// Navigation shell
	r.Get("/", h.Home)
	r.Post("/locale/toggle", h.ToggleLocale)
	r.Get("/{section}", h.Section)
	r.Get("/{section}/{action}", h.Page)
	r.With(limit).Post("/{section}/{action}", h.Submit)
}
