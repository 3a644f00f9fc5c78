package oauth

import (
	"context"
	"net/http"
)

// Authenticator defines the OAuth2 operations the strategy drives against GitHub.
type Authenticator interface {
	// Validate reports whether the client holds the credentials required
	// for an authentication attempt to proceed.
	Validate() error

	// AuthCodeURL returns the URL to redirect to in order to initiate the
	// authentication process.
	AuthCodeURL(w http.ResponseWriter, returnURL string) (string, error)

	// Verify checks the callback request against the state written by
	// AuthCodeURL and returns the URL to redirect to following successful
	// authentication.
	Verify(w http.ResponseWriter, r *http.Request) (returnURL string, err error)

	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (accessToken string, err error)

	// Profile fetches the authenticated user's raw profile.
	Profile(ctx context.Context, accessToken string) (RawProfile, error)

	// PrimaryEmail fetches the user's primary verified email address.
	PrimaryEmail(ctx context.Context, accessToken string) (string, error)
}
