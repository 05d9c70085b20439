package backoffice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the stub back office.
type Server struct {
	store     *Store
	hub       *hub
	jwtSecret string
}

// New creates a stub back office with seeded data and a running feed hub.
func New(jwtSecret string) *Server {
	s := &Server{
		store:     NewStore(),
		hub:       newHub(),
		jwtSecret: jwtSecret,
	}
	go s.hub.run()
	return s
}

// Router builds the full route surface of the back-office API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public auth routes
	r.Post("/login", s.Login)
	r.Post("/register", s.Register)

	// Kitchen feed (auth via query token)
	r.Get("/ws/cocina", s.serveFeed)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/logout", s.Logout)

		r.Route("/empleados", func(r chi.Router) {
			r.Get("/", s.listEmployees)
			r.Post("/", s.createEmployee)
			r.Put("/{id}", s.updateEmployee)
			r.Delete("/{id}", s.deleteEmployee)
		})

		r.Route("/mesas", func(r chi.Router) {
			r.Get("/", s.listTables)
			r.Post("/", s.createTable)
			r.Put("/{id}", s.updateTable)
			r.Delete("/{id}", s.deleteTable)
		})

		r.Route("/platillos", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.createProduct)
			r.Post("/{id}", s.submitProduct) // _method=PUT override
			r.Delete("/{id}", s.deleteProduct)
		})

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Post("/", s.createCustomer)
			r.Put("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.deleteCustomer)
		})

		r.Route("/proveedores", func(r chi.Router) {
			r.Get("/", s.listSuppliers)
			r.Post("/", s.createSupplier)
			r.Put("/{id}", s.updateSupplier)
			r.Delete("/{id}", s.deleteSupplier)
		})

		r.Route("/ingredientes", func(r chi.Router) {
			r.Get("/", s.listIngredients)
			r.Post("/", s.createIngredient)
			r.Put("/{id}", s.updateIngredient)
			r.Delete("/{id}", s.deleteIngredient)
		})

		r.Route("/categorias-ingredientes", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
		})

		r.Get("/tipos-movimiento", s.listMovementTypes)

		r.Route("/movimientos", func(r chi.Router) {
			r.Get("/", s.listMovements)
			r.Post("/", s.createMovement)
		})

		r.Get("/form-data", s.formData)

		// Kitchen tickets enter here and fan out over the feed
		r.Post("/cocina/tickets", s.createTicket)

		// Simulated domains
		r.Get("/entregas", s.listDeliveries)
		r.Get("/facturas", s.listInvoices)
		r.Get("/pedidos-proveedor", s.listSupplierOrders)
	})

	return r
}
