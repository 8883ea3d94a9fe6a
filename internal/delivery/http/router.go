package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter mounts the player, game, resource and calculator routes.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(h.logger), middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", healthz)
	r.Post("/players", h.CreatePlayer())
	r.Get("/resources", h.Resources())

	r.Route("/calculators", func(cr chi.Router) {
		cr.Post("/investment", h.Investment())
		cr.Post("/mortgage", h.Mortgage())
		cr.Post("/amortization", h.Amortization())
		cr.Post("/retirement", h.Retirement())
	})

	r.Group(func(pr chi.Router) {
		pr.Use(JWTMiddleware(h.auth))

		pr.Route("/games/current", func(gr chi.Router) {
			gr.Get("/", h.GetGame())
			gr.Post("/", h.StartGame())
			gr.Delete("/", h.Restart())
			gr.Get("/question", h.GetQuestion())
			gr.Post("/answers", h.SubmitAnswer())
			gr.Post("/next", h.Advance())
			gr.Get("/results", h.Results())
		})
	})

	return r
}

// requestLogger logs every request with zap once it completes.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
