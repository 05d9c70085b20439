// Package server is the terminal's local HTTP API: the surface the POS UI
// talks to for cart, order, kitchen, and session state.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/comanda-pos/terminal/internal/config"
	"github.com/comanda-pos/terminal/internal/kitchen"
	"github.com/comanda-pos/terminal/internal/pos"
	"github.com/comanda-pos/terminal/internal/session"
)

// Deps are the application objects the router wires handlers onto.
type Deps struct {
	Cart     *pos.Cart
	Registry OrderRegistry
	Board    *kitchen.Board
	Session  *session.Store
	Catalog  Catalog
}

// New creates the terminal router with all handlers wired up.
func New(cfg *config.Config, deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.UIOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/session", NewSessionHandler(deps.Session).RegisterRoutes)
	r.Route("/catalogo", NewCatalogHandler(deps.Catalog).RegisterRoutes)
	r.Route("/cart", NewCartHandler(deps.Cart, deps.Registry).RegisterRoutes)

	ordersHandler := NewOrdersHandler(deps.Registry)
	r.Route("/orders", ordersHandler.RegisterRoutes)

	r.Route("/cocina", NewKitchenHandler(deps.Board).RegisterRoutes)

	return r
}
