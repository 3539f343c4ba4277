package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Options carries the authentication setup. A zero Options runs the server
// fully open, which is how the tests and the local sandbox use it.
type Options struct {
	JWTSecret    string
	AdminEmail   string
	AdminPwdHash string
}

// NewRouter assembles the full HTTP surface of the reference server.
func NewRouter(store Store, opts Options) http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		authHandler := NewAuthHandler(opts.JWTSecret, opts.AdminEmail, opts.AdminPwdHash)
		r.Post("/auth/login/", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuthForWrites(opts.JWTSecret))
			NewHandler(store).RegisterRoutes(r)
		})
	})

	return router
}
