package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
)

// RouterConfig carries the collaborators the router needs beyond the handler.
type RouterConfig struct {
	Verifier           TokenVerifier
	Teams              TeamResolver
	Stream             http.Handler
	CORSAllowedOrigins []string
	Logger             *logging.Logger
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Stream)
	registerPublicRoutes(mux, handler)
	registerTeamRoutes(mux, handler, cfg.Verifier, cfg.Teams)
	registerAdminRoutes(mux, handler, cfg.Verifier, cfg.Teams)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
