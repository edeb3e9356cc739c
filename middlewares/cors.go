package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/corex/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists allowed origins. "*" allows any origin and
	// "https://*.example.com" allows any subdomain of example.com.
	AllowOrigins []string

	// AllowOriginFunc replaces AllowOrigins when set.
	AllowOriginFunc func(origin string) bool

	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string

	// AllowCredentials echoes the request origin instead of "*".
	AllowCredentials bool

	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOrigins = origins }
}

// WithAllowOriginFunc sets a dynamic origin validator.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOriginFunc = fn }
}

// WithAllowMethods sets the methods announced in preflight responses.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowMethods = methods }
}

// WithAllowHeaders sets the request headers announced in preflight responses.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowHeaders = headers }
}

// WithExposeHeaders sets the response headers readable by the client.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.ExposeHeaders = headers }
}

// WithAllowCredentials allows cookies and authorization headers.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowCredentials = true }
}

// WithMaxAge sets the preflight cache duration. Zero omits the header.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) { cfg.MaxAge = d }
}

// originPattern matches "<scheme>://<anything>.<domain>".
type originPattern struct {
	prefix string
	suffix string
}

func (o originPattern) match(origin string) bool {
	rest, ok := strings.CutPrefix(origin, o.prefix)
	return ok && len(rest) > len(o.suffix) && strings.HasSuffix(rest, o.suffix)
}

// corsPolicy is CORSConfig with header values rendered once.
type corsPolicy struct {
	allowFunc   func(string) bool
	exact       []string
	wildcards   []originPattern
	anyOrigin   bool
	credentials bool

	methods string
	headers string
	expose  string
	maxAge  string
}

func newCORSPolicy(cfg CORSConfig) *corsPolicy {
	p := &corsPolicy{
		allowFunc:   cfg.AllowOriginFunc,
		credentials: cfg.AllowCredentials,
		methods:     strings.Join(cfg.AllowMethods, ", "),
		headers:     strings.Join(cfg.AllowHeaders, ", "),
		expose:      strings.Join(cfg.ExposeHeaders, ", "),
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	for _, o := range cfg.AllowOrigins {
		switch scheme, host, _ := strings.Cut(o, "://*."); {
		case o == "*":
			p.anyOrigin = true
		case host != "":
			p.wildcards = append(p.wildcards, originPattern{prefix: scheme + "://", suffix: "." + host})
		default:
			p.exact = append(p.exact, o)
		}
	}
	return p
}

func (p *corsPolicy) allowed(origin string) bool {
	if p.allowFunc != nil {
		return p.allowFunc(origin)
	}
	if p.anyOrigin || slices.Contains(p.exact, origin) {
		return true
	}
	return slices.ContainsFunc(p.wildcards, func(o originPattern) bool { return o.match(origin) })
}

// CORS returns middleware that handles Cross-Origin Resource Sharing.
//
// Preflight requests (OPTIONS carrying Access-Control-Request-Method) from
// allowed origins are answered with 204 and never reach a handler, so the
// middleware belongs at the global level. Requests from other origins pass
// through without CORS headers and the browser blocks the response.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       DefaultCORSMaxAge,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	policy := newCORSPolicy(cfg)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !policy.allowed(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if policy.anyOrigin && !policy.credentials && policy.allowFunc == nil {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if policy.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if policy.expose != "" {
				h.Set("Access-Control-Expose-Headers", policy.expose)
			}

			if c.Request().Method != http.MethodOptions || c.Header("Access-Control-Request-Method") == "" {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", policy.methods)
			h.Set("Access-Control-Allow-Headers", policy.headers)
			if policy.maxAge != "" {
				h.Set("Access-Control-Max-Age", policy.maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
