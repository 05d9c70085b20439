package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comanda-pos/terminal/internal/api"
)

// Catalog is the slice of the back-office client the POS screens need.
// Satisfied by *api.Client.
type Catalog interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
	ListTables(ctx context.Context) ([]api.Table, error)
	ListEmployees(ctx context.Context) ([]api.Employee, error)
}

// CatalogHandler proxies the back-office lookups the POS UI renders:
// products for the menu grid, tables and employees for the dropdowns.
type CatalogHandler struct {
	catalog Catalog
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/platillos", h.Products)
	r.Get("/mesas", h.Tables)
	r.Get("/empleados", h.Employees)
}

// Products handles GET /catalogo/platillos. The menu grid is required:
// upstream failures surface to the caller.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if products == nil {
		products = []api.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Tables handles GET /catalogo/mesas. Dropdown lookups are best effort:
// on failure the list comes back empty and the page stays usable.
func (h *CatalogHandler) Tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.catalog.ListTables(r.Context())
	if err != nil {
		slog.Warn("load tables", "error", err)
		tables = nil
	}
	if tables == nil {
		tables = []api.Table{}
	}
	writeJSON(w, http.StatusOK, tables)
}

// Employees handles GET /catalogo/empleados, best effort like Tables.
func (h *CatalogHandler) Employees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.catalog.ListEmployees(r.Context())
	if err != nil {
		slog.Warn("load employees", "error", err)
		employees = nil
	}
	if employees == nil {
		employees = []api.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}
