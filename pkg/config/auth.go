package config

import "github.com/glorpus-work/panakit/pkg/auth"

// AuthConfig holds the registry credential configuration. At most one
// scheme should be set; they are tried in declaration order.
type AuthConfig struct {
	TokenAuth  *TokenAuth  `yaml:"token,omitempty"`
	BasicAuth  *BasicAuth  `yaml:"basic,omitempty"`
	HeaderAuth *HeaderAuth `yaml:"header,omitempty"`
}

// TokenAuth holds configuration for bearer-token authentication.
type TokenAuth struct {
	Token string `yaml:"token"`
}

// BasicAuth holds configuration for HTTP Basic Authentication.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// HeaderAuth holds configuration for custom header-based authentication.
type HeaderAuth struct {
	Headers map[string]string `yaml:"headers"`
}

// ToAuthenticator converts the TokenAuth configuration to an Authenticator.
func (t *TokenAuth) ToAuthenticator() auth.Authenticator {
	return auth.TokenAuth{Token: t.Token}
}

// ToAuthenticator converts the BasicAuth configuration to an Authenticator.
func (b *BasicAuth) ToAuthenticator() auth.Authenticator {
	return auth.BasicAuth{
		Username: b.Username,
		Password: b.Password,
	}
}

// ToAuthenticator converts the HeaderAuth configuration to an Authenticator.
func (h *HeaderAuth) ToAuthenticator() auth.Authenticator {
	return auth.HeaderAuth{Headers: h.Headers}
}

// Authenticator returns the registry authenticator configured for this
// config, or nil when the registry needs no credentials.
func (c *Config) Authenticator() auth.Authenticator {
	authCfg := c.Registry.Auth
	if authCfg == nil {
		return nil
	}
	switch {
	case authCfg.TokenAuth != nil:
		return authCfg.TokenAuth.ToAuthenticator()
	case authCfg.BasicAuth != nil:
		return authCfg.BasicAuth.ToAuthenticator()
	case authCfg.HeaderAuth != nil:
		return authCfg.HeaderAuth.ToAuthenticator()
	}
	return nil
}
