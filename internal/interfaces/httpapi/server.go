package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5, "application/json"))
	r.Use(RequestTracing)
	r.Use(func(next http.Handler) http.Handler { return RequestLogging(logger, next) })
	r.Use(func(next http.Handler) http.Handler { return CORS(cfg.CORSAllowedOrigins, next) })
	r.Use(func(next http.Handler) http.Handler { return RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow, next) })
	r.Use(func(next http.Handler) http.Handler { return recoverPanic(logger, next) })

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	registerSystemRoutes(r, handler, cfg.SwaggerEnabled)
	registerFeedRoutes(r, handler)

	return r
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
