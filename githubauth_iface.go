package githubauth

import "net/http"

var _ Handlers = &GitHubAuth{}

// Handlers defines the http handlers implemented by the GitHub strategy.
type Handlers interface {
	Authenticate() http.HandlerFunc
	Callback() http.HandlerFunc
	Login() http.HandlerFunc
}
