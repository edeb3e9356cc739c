package internal

import "strings"

// ExtractorSource reads one candidate value from a request.
// It reports false when the value is absent or empty.
type ExtractorSource = func(Context) (string, bool)

// Extractor returns the first value found among its sources.
// Middleware uses it to accept the same value from several places, such as
// an ID from either of two headers.
type Extractor struct {
	sources []ExtractorSource
}

func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract consults the sources in order. ("", false) means every source missed.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Header(name)) }
}

func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Query(name)) }
}

// FromParam reads a path parameter of the matched route.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Param(name)) }
}

func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		ck, err := c.Request().Cookie(name)
		if err != nil {
			return "", false
		}
		return present(ck.Value)
	}
}

// FromContext reads a string stored earlier in the chain with Context.Set.
func FromContext(key any) ExtractorSource {
	return func(c Context) (string, bool) {
		v, _ := c.Get(key).(string)
		return present(v)
	}
}

// FromBearerToken reads the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func FromBearerToken() ExtractorSource {
	return func(c Context) (string, bool) {
		scheme, token, ok := strings.Cut(c.Header("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			return "", false
		}
		return present(strings.TrimSpace(token))
	}
}

func present(v string) (string, bool) {
	return v, v != ""
}
