package githubauth

import "github.com/go-chi/chi/v5"

// Routes mounts the strategy's handlers on a new chi router, for consuming
// applications that want the conventional layout:
//
//	GET /login    -> redirect to GitHub
//	GET /callback -> complete authentication
func Routes(h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Get("/login", h.Login())
	r.Get("/callback", h.Callback())

	return r
}
