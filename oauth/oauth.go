// Package oauth implements the GitHub half of the OAuth2 web application
// flow: authorize-URL construction, the authorization-code exchange, and the
// authenticated profile and email fetches. GitHub uses plain OAuth 2.0
// without ID tokens, so user information comes from a separate API call.
package oauth

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/errors/v5"
	"github.com/gofrs/uuid"
	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"
	oauth2github "golang.org/x/oauth2/github"
)

const (
	defaultUserURL   = "https://api.github.com/user"
	defaultEmailsURL = "https://api.github.com/user/emails"

	// DefaultUserAgent identifies this client to the GitHub API, which
	// rejects requests that carry no User-Agent header.
	DefaultUserAgent = "cccteam-githubauth"

	requestTimeout = 10 * time.Second
)

var _ Authenticator = &OAuth{}

// OAuth is the GitHub OAuth2 client. Configuration is fixed at construction
// and the client is safe for concurrent use.
type OAuth struct {
	config    oauth2.Config
	userURL   string
	emailsURL string
	userAgent string
	client    *http.Client
	sc        *securecookie.SecureCookie
	secure    bool
}

// New returns a new GitHub OAuth2 client.
func New(clientID, clientSecret, callbackURL string, options ...Option) *OAuth {
	o := &OAuth{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint:     oauth2github.Endpoint,
		},
		userURL:   defaultUserURL,
		emailsURL: defaultEmailsURL,
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: requestTimeout},
		secure:    true,
	}
	for _, opt := range options {
		opt(o)
	}

	return o
}

// Validate reports whether the client holds the credentials required for an
// authentication attempt to proceed.
func (o *OAuth) Validate() error {
	if o.config.ClientID == "" || o.config.ClientSecret == "" || o.config.RedirectURL == "" {
		return NewError(KindConfiguration, "client id, client secret, and callback URL are required")
	}

	return nil
}

// AuthCodeURL returns the GitHub authorize URL to redirect to. When a state
// cookie codec is configured, a random state value and the returnURL are
// carried in the cookie and the state is included in the URL; otherwise the
// URL carries only client_id, redirect_uri, response_type, and scope.
func (o *OAuth) AuthCodeURL(w http.ResponseWriter, returnURL string) (string, error) {
	if o.sc == nil {
		return o.config.AuthCodeURL(""), nil
	}

	// Use a random string as the state to protect against CSRF attacks
	state, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "uuid.NewV4()")
	}

	cval := map[stKey]string{
		stState:     state.String(),
		stReturnURL: returnURL, // URL to redirect to following successful authentication
	}

	if err := o.writeStateCookie(w, cval); err != nil {
		return "", errors.Wrap(err, "writeStateCookie()")
	}

	return o.config.AuthCodeURL(state.String()), nil
}

// Verify validates the callback request against the state cookie written by
// AuthCodeURL and returns the URL to redirect to following successful
// authentication. It is a no-op when no state cookie codec is configured.
func (o *OAuth) Verify(w http.ResponseWriter, r *http.Request) (string, error) {
	if o.sc == nil {
		return "", nil
	}

	cval, ok := o.readStateCookie(r)
	if !ok {
		return "", NewError(KindValidation, "no state cookie")
	}
	o.deleteStateCookie(w)

	returnURL := cval[stReturnURL]
	if strings.TrimSpace(returnURL) == "" {
		returnURL = "/"
	}

	if r.URL.Query().Get("state") != cval[stState] {
		return "", NewError(KindValidation, "invalid 'state' parameter value")
	}

	return returnURL, nil
}
