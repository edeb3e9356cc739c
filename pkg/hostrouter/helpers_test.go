package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex/pkg/hostrouter"
)

func request(host string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = host
	return req
}

func TestDomain(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"example.com":          "example.com",
		"example.com:8080":     "example.com",
		"API.Example.Com:8080": "api.example.com",
		"192.168.1.1:8080":     "192.168.1.1",
		"[::1]":                "[::1]",
		"[2001:db8::1]:8080":   "[2001:db8::1]",
		"localhost:3000":       "localhost",
		"example.com.":         "example.com",
		"":                     "",
	}

	for host, want := range tests {
		require.Equal(t, want, hostrouter.Domain(request(host)), host)
	}
}

func TestSubdomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		base string
		want string
	}{
		{"foo.example.com", "example.com", "foo"},
		{"bar.foo.example.com", "example.com", "bar.foo"},
		{"foo.example.com:8080", "example.com", "foo"},
		{"FOO.Example.COM", "example.com", "foo"},
		{"foo.example.com", "EXAMPLE.COM", "foo"},
		{"example.com", "example.com", ""},
		{"notexample.com", "example.com", ""},
		{"foo.other.com", "example.com", ""},
		{"tenant1.localhost", "localhost", "tenant1"},
		{"", "example.com", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, hostrouter.Subdomain(request(tt.host), tt.base), tt.host)
	}
}
