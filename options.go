package githubauth

// Option defines a function signature for setting GitHubAuth options.
type Option func(*GitHubAuth)

// WithLogHandler sets the LogHandler. (default: logs via cccteam/logger)
func WithLogHandler(l LogHandler) Option {
	return func(g *GitHubAuth) {
		g.handle = l
	}
}

// WithLoginURL sets the login page of the consuming application. When set,
// failed attempts redirect there with the failure message in the query
// string instead of encoding a response. (default: unset)
func WithLoginURL(u string) Option {
	return func(g *GitHubAuth) {
		g.loginURL = u
	}
}

// WithSuccessHandler overrides the response to a successful attempt.
// (default: redirect to the attempt's return URL, else encode the profile)
func WithSuccessHandler(h SuccessHandler) Option {
	return func(g *GitHubAuth) {
		g.success = h
	}
}

// WithFailureHandler overrides the response to a failed attempt.
func WithFailureHandler(h FailureHandler) Option {
	return func(g *GitHubAuth) {
		g.failure = h
	}
}

// WithProfileEnricher sets the hook invoked with the mapped profile and the
// raw GitHub fields before the success responder fires.
func WithProfileEnricher(e ProfileEnricher) Option {
	return func(g *GitHubAuth) {
		g.enricher = e
	}
}

// WithEmailLookup enables the fallback call to GitHub's emails API when the
// profile carries no public email. Requires the user:email scope.
func WithEmailLookup() Option {
	return func(g *GitHubAuth) {
		g.emailLookup = true
	}
}
