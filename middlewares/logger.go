package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/corex/internal"
)

type statusRecorder interface {
	Status() int
	Size() int64
}

// Logger returns middleware that writes one record per request.
// Server errors log at error level, client errors at warn, the rest at info.
// Request-scoped attributes such as request_id come from the logger's
// context extractors.
func Logger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status, size := http.StatusOK, int64(0)
			if rec, ok := c.Response().(statusRecorder); ok && c.Written() {
				status, size = rec.Status(), rec.Size()
			} else if err != nil {
				status = http.StatusInternalServerError
				if he := internal.AsHTTPError(err); he != nil {
					status = he.Code
				}
			}

			r := c.Request()
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("size", size),
				slog.Duration("duration", time.Since(start)),
			}
			if ext := c.Extension(); ext != "" {
				attrs = append(attrs, slog.String("extension", ext))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}

			return err
		}
	}
}
