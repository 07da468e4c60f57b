package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chicfit/storefront/internal/logging"
)

// RequestLogger binds a request-scoped slog logger into the request context
// and emits one completion line per request. Handlers retrieve the logger
// with logging.FromContext. Returned errors are routed through echo's error
// handler here so the logged status matches what the client saw.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// The RequestID middleware writes the id to the response
			// header when the client did not supply one.
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"path", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
			}

			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", c.Response().Size,
			}
			switch {
			case err != nil:
				l.Error("request", append(attrs, "error", err.Error())...)
			case status >= 500:
				l.Error("request", attrs...)
			case status >= 400:
				l.Warn("request", attrs...)
			default:
				l.Info("request", attrs...)
			}
			return nil
		}
	}
}
