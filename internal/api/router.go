package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"auction-backend/internal/api/handlers"
	"auction-backend/internal/config"
	"auction-backend/internal/metrics"
	"auction-backend/internal/middleware"
)

type RouterDeps struct {
	Cfg      config.Config
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Products *handlers.ProductsHandler
	Auctions *handlers.AuctionsHandler
	WS       *handlers.WSHandler
	AuthMW   *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/signup", d.Auth.Signup)
		r.Post("/auth/login", d.Auth.Login)

		// ---------- public reads ----------
		r.Get("/users", d.Users.List)
		r.Get("/users/{id}", d.Users.Get)
		r.Get("/products", d.Products.List)
		r.Get("/products/{id}", d.Products.Get)
		r.Get("/auctions", d.Auctions.List)
		r.Get("/auctions/{id}", d.Auctions.Get)
		r.Get("/auctions/{id}/time-left", d.Auctions.TimeLeft)
		r.Get("/auctions/{id}/messages", d.Auctions.Messages)
		r.Get("/market", handlers.Market)

		// ---------- mutations require a token ----------
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Auth)

			r.Put("/users/{id}", d.Users.Update)
			r.Delete("/users/{id}", d.Users.Delete)

			r.Post("/products", d.Products.Create)
			r.Put("/products/{id}", d.Products.Update)
			r.Delete("/products/{id}", d.Products.Delete)

			r.Post("/auctions", d.Auctions.Create)
			r.Put("/auctions/{id}", d.Auctions.Update)
			r.Delete("/auctions/{id}", d.Auctions.Delete)
		})

		// websocket handshake carries its own token (header or ?token=)
		r.Get("/ws/auctions/{id}", d.WS.Serve)
	})

	return r
}
