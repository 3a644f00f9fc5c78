// Package githubauth implements GitHub OAuth2 authentication as a pluggable
// strategy behind an application's login routes. It drives the web
// application flow end to end: redirect to GitHub's authorize endpoint,
// exchange of the callback code for an access token, fetch of the user's
// profile, and mapping into a canonical Profile handed to the configured
// success responder.
package githubauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cccteam/githubauth/oauth"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/githubauth"

// SuccessHandler responds to a successfully authenticated attempt.
type SuccessHandler func(ctx context.Context, w http.ResponseWriter, r *http.Request, returnURL string, p *Profile) error

// FailureHandler responds to a failed attempt. It is handed the tagged
// failure and returns the error the LogHandler should record.
type FailureHandler func(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) error

// GitHubAuth authenticates users against GitHub. Exactly one terminal
// response fires per attempt: the success responder, the failure responder,
// or the redirect to GitHub's authorize endpoint.
type GitHubAuth struct {
	auth        oauth.Authenticator
	enricher    ProfileEnricher
	emailLookup bool
	loginURL    string
	success     SuccessHandler
	failure     FailureHandler
	handle      LogHandler
}

// New creates a new GitHub authentication strategy around the given
// authenticator. Configuration is fixed once New returns; concurrent
// requests share it read-only.
func New(auth oauth.Authenticator, options ...Option) *GitHubAuth {
	g := &GitHubAuth{
		auth:   auth,
		handle: logHandler,
	}
	for _, opt := range options {
		opt(g)
	}
	if g.success == nil {
		g.success = g.defaultSuccess
	}
	if g.failure == nil {
		g.failure = g.defaultFailure
	}

	return g
}

// Authenticate is the single-entry handler: requests carrying a code (or a
// provider error) complete the flow, everything else initiates it.
func (g *GitHubAuth) Authenticate() http.HandlerFunc {
	login := g.Login()
	callback := g.Callback()

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("code") == "" && query.Get("error") == "" {
			login(w, r)

			return
		}

		callback(w, r)
	}
}

// Login initiates the flow by redirecting the user to GitHub's authorize URL.
func (g *GitHubAuth) Login() http.HandlerFunc {
	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "GitHubAuth.Login()")
		defer span.End()

		if err := g.auth.Validate(); err != nil {
			return g.failure(ctx, w, r, errors.Wrap(err, "oauth.Authenticator.Validate()"))
		}

		authCodeURL, err := g.auth.AuthCodeURL(w, r.URL.Query().Get("returnUrl"))
		if err != nil {
			return g.failure(ctx, w, r, errors.Wrap(err, "oauth.Authenticator.AuthCodeURL()"))
		}

		http.Redirect(w, r, authCodeURL, http.StatusFound)

		return nil
	})
}

// Callback completes the flow for GitHub's redirect back to the application.
func (g *GitHubAuth) Callback() http.HandlerFunc {
	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "GitHubAuth.Callback()")
		defer span.End()

		returnURL, profile, err := g.authenticate(ctx, w, r)
		if err != nil {
			return g.failure(ctx, w, r, err)
		}

		return g.success(ctx, w, r, returnURL, profile)
	})
}

// authenticate drives the callback pipeline: state verification, token
// exchange, profile fetch, mapping, and enrichment. Every exit path carries
// a tagged failure so an attempt can never stall without a response.
func (g *GitHubAuth) authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, *Profile, error) {
	if err := g.auth.Validate(); err != nil {
		return "", nil, errors.Wrap(err, "oauth.Authenticator.Validate()")
	}

	query := r.URL.Query()
	if errCode := query.Get("error"); errCode != "" {
		return "", nil, oauth.NewError(oauth.KindProvider, fmt.Sprintf("provider denied authorization: %s: %s", errCode, query.Get("error_description")))
	}

	code := query.Get("code")
	if code == "" {
		return "", nil, oauth.NewError(oauth.KindValidation, "callback request has no code parameter")
	}

	returnURL, err := g.auth.Verify(w, r)
	if err != nil {
		return "", nil, errors.Wrap(err, "oauth.Authenticator.Verify()")
	}

	accessToken, err := g.auth.Exchange(ctx, code)
	if err != nil {
		return "", nil, errors.Wrap(err, "oauth.Authenticator.Exchange()")
	}

	raw, err := g.auth.Profile(ctx, accessToken)
	if err != nil {
		return "", nil, errors.Wrap(err, "oauth.Authenticator.Profile()")
	}

	profile, err := NewProfile(raw)
	if err != nil {
		return "", nil, errors.Wrap(err, "NewProfile()")
	}

	if g.emailLookup && len(profile.Emails) == 0 {
		email, err := g.auth.PrimaryEmail(ctx, accessToken)
		if err != nil {
			// The account may simply have no visible email; ship the profile without one.
			logger.Req(r).Infof("primary email lookup failed: %v", err)
		} else {
			profile.Emails = []Email{{Value: email, Type: "primary"}}
		}
	}

	if g.enricher != nil {
		if err := g.enricher.Update(ctx, profile, raw); err != nil {
			return "", nil, oauth.WrapError(oauth.KindEnricher, err, "ProfileEnricher.Update()")
		}
	}

	return returnURL, profile, nil
}

// defaultSuccess redirects to the attempt's return URL when one was carried
// through the state cookie, and otherwise responds with the profile encoded
// as JSON.
func (g *GitHubAuth) defaultSuccess(_ context.Context, w http.ResponseWriter, r *http.Request, returnURL string, p *Profile) error {
	if returnURL != "" {
		http.Redirect(w, r, returnURL, http.StatusFound)

		return nil
	}

	return httpio.NewEncoder(w).Ok(p)
}

// defaultFailure redirects to the configured login URL with a message when
// one is set, and otherwise encodes a client message.
func (g *GitHubAuth) defaultFailure(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) error {
	cerr := clientError(err)

	if g.loginURL != "" {
		http.Redirect(w, r, fmt.Sprintf("%s?message=%s", g.loginURL, url.QueryEscape(httpio.Message(cerr))), http.StatusFound)

		return cerr
	}

	return httpio.NewEncoder(w).ClientMessage(ctx, cerr)
}

// clientError converts a tagged failure into the message surfaced to the
// client. Configuration failures are internal errors; everything else is
// undifferentiated to avoid leaking provider details.
func clientError(err error) error {
	if kind, ok := oauth.KindOf(err); ok && kind == oauth.KindConfiguration {
		return httpio.NewInternalServerErrorMessageWithError(err, "internal configuration error")
	}

	return httpio.NewUnauthorizedMessageWithError(err, "authentication failed")
}
