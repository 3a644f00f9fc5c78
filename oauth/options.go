package oauth

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"
)

// Option defines a function signature for setting OAuth client options.
type Option func(*OAuth)

// WithScopes sets the scopes requested during authorization. (default: none)
func WithScopes(scopes ...string) Option {
	return func(o *OAuth) {
		o.config.Scopes = scopes
	}
}

// WithUserAgent sets the User-Agent header sent on GitHub API requests.
// (default: DefaultUserAgent)
func WithUserAgent(agent string) Option {
	return func(o *OAuth) {
		if agent != "" {
			o.userAgent = agent
		}
	}
}

// WithStateCookie enables CSRF protection: the login redirect carries a
// random state value that is round-tripped through a secure cookie and
// checked on the callback.
func WithStateCookie(sc *securecookie.SecureCookie) Option {
	return func(o *OAuth) {
		o.sc = sc
	}
}

// WithInsecureCookie allows the state cookie over plain HTTP, for local
// development.
func WithInsecureCookie() Option {
	return func(o *OAuth) {
		o.secure = false
	}
}

// WithHTTPClient sets the HTTP client used for outbound GitHub calls.
// (default: a client with a 10s timeout)
func WithHTTPClient(client *http.Client) Option {
	return func(o *OAuth) {
		o.client = client
	}
}

// WithEndpoints overrides the GitHub endpoints. Tests use this to point the
// client at a stub server.
func WithEndpoints(endpoint oauth2.Endpoint, userURL, emailsURL string) Option {
	return func(o *OAuth) {
		o.config.Endpoint = endpoint
		o.userURL = userURL
		o.emailsURL = emailsURL
	}
}
