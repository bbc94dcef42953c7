package httpapi

import (
	"net/http"

	"github.com/riskibarqy/porra/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the router.
type RouterConfig struct {
	CORSAllowedOrigins []string
	InternalJobToken   string
	SwaggerEnabled     bool
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
	Metrics        HTTPMetrics
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.MetricsHandler)
	registerVotingRoutes(mux, handler)
	registerReadRoutes(mux, handler)
	registerResultsRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	routeOf := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}

	return RequestTracing(
		RequestID(
			RequestLogging(logger, cfg.Metrics, routeOf,
				CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)),
			),
		),
	)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
