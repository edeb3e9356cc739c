package hostrouter

import (
	"net/http"
	"strings"
)

// Domain returns the request host without port, lowercased.
// "Example.COM:8080" yields "example.com"; "[::1]:8080" yields "[::1]".
func Domain(r *http.Request) string {
	return normalizeHost(r.Host)
}

// Subdomain returns the labels of the request host in front of baseDomain.
// "bar.foo.example.com" under "example.com" yields "bar.foo". The base
// domain itself and unrelated hosts yield "".
func Subdomain(r *http.Request, baseDomain string) string {
	sub, ok := strings.CutSuffix(Domain(r), "."+strings.ToLower(baseDomain))
	if !ok {
		return ""
	}
	return sub
}
