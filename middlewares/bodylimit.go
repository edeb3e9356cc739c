package middlewares

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/corex/internal"
)

// BodyLimit returns middleware that caps request bodies at limit bytes.
// Requests that declare a larger Content-Length are rejected with 413
// before the handler runs; bodies that exceed the cap while being read
// make the handler's read fail, and the resulting error is reported as 413.
// A non-positive limit disables the cap.
func BodyLimit(limit int64) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		if limit <= 0 {
			return next
		}

		return func(c internal.Context) error {
			r := c.Request()
			if r.ContentLength > limit {
				return internal.ErrRequestEntityTooLarge("request body too large")
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(c.Response(), r.Body, limit)
			}

			err := next(c)

			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return internal.ErrRequestEntityTooLarge("request body too large", internal.WithError(err))
			}
			return err
		}
	}
}
