package api

import (
	"net/http"
	"os"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "askai/client/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions holds the settings the router needs beyond its handlers.
type RouterOptions struct {
	CookieName     string
	SecureCookie   bool
	RequestTimeout time.Duration
	FrontendDir    string
	Metrics        http.Handler
}

// NewRouter creates the chi router of the web client.
func NewRouter(auth *AuthHandler, landing *LandingHandler, dashboard *DashboardHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ViewIdentity(opts.CookieName, opts.SecureCookie))

		// Round trips are bounded by the backend client's own timeout; the
		// request timeout only protects the JSON endpoints.
		r.Group(func(r chi.Router) {
			if opts.RequestTimeout > 0 {
				r.Use(middleware.Timeout(opts.RequestTimeout))
			}

			r.Post("/login", auth.HandleLogin)
			r.Post("/signup", auth.HandleSignup)
			r.Post("/singnup", auth.HandleSignup)
			r.Post("/logout", auth.HandleLogout)

			r.Post("/landing", landing.HandleSubmit)
			r.Get("/landing/suggestions", landing.HandleSuggestions)

			r.Get("/dashboard", dashboard.HandleEnter)
			r.Post("/dashboard/ask", dashboard.HandleAsk)
			r.Post("/dashboard/new-chat", dashboard.HandleNewChat)
			r.Post("/dashboard/history/{entryID}/select", dashboard.HandleSelectHistory)
		})

		// Streaming endpoints must not have a timeout.
		r.Group(func(r chi.Router) {
			r.Get("/dashboard/events", dashboard.HandleEvents)
		})
	})

	if opts.FrontendDir != "" {
		if info, err := os.Stat(opts.FrontendDir); err == nil && info.IsDir() {
			fileServer := http.FileServer(http.Dir(opts.FrontendDir))
			r.Handle("/*", http.StripPrefix("/", fileServer))
		}
	}

	return r
}
