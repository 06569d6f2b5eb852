// Package auth applies registry credentials to outgoing HTTP requests.
//
//go:generate mockgen -destination=./mocks/auth.go . Authenticator
package auth

import "net/http"

// Authenticator decorates a request with credentials for a registry.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type names an authentication scheme.
type Type string

// Supported authentication schemes.
const (
	// TokenAuthType is the bearer-token scheme hosted pub servers use.
	TokenAuthType Type = "token"
	// BasicAuthType is HTTP Basic Authentication.
	BasicAuthType Type = "basic"
	// HeaderAuthType sets arbitrary request headers.
	HeaderAuthType Type = "header"
)

// TokenAuth authenticates with a bearer token, the scheme `dart pub token`
// uses for private registries.
type TokenAuth struct {
	Token string
}

// Apply sets the Authorization header.
func (t TokenAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+t.Token)
	return nil
}

// Type returns TokenAuthType.
func (t TokenAuth) Type() Type { return TokenAuthType }

// BasicAuth authenticates with a username and password.
type BasicAuth struct {
	Username string
	Password string
}

// Apply sets Basic Authentication on the request.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns BasicAuthType.
func (b BasicAuth) Type() Type { return BasicAuthType }

// HeaderAuth authenticates with custom headers, for registries fronted by
// proxies that expect their own header names.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply sets the configured headers on the request.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns HeaderAuthType.
func (h HeaderAuth) Type() Type { return HeaderAuthType }
