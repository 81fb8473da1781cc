package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "marketplace/pkg/errors"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("Panic recovered",
					"request_id", RequestID(r.Context()),
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				appErr := apperrors.Internal("Internal server error", fmt.Errorf("panic: %v", rec))
				if err := httputil.WriteError(w, appErr); err != nil {
					log.Error("failed to write error response", "handler", "Recovery", "operation", "WriteError", "error", err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
