package extensions

import (
	"net/http"

	"github.com/dmitrymomot/corex"
)

// Echo returns a sample extension answering GET /test with
// {"message":"Test endpoint"}. Useful as a smoke test for a deployment.
func Echo() corex.Extension {
	return corex.NewExtension("echo", func(r corex.Router) {
		r.GET("/test", func(c corex.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"message": "Test endpoint"})
		})
	})
}
