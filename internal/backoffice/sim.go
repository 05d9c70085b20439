package backoffice

import "net/http"

// Simulated domains: the real back office never shipped these endpoints,
// so the old front-end rendered hardcoded sample arrays. They live here
// behind the same route surface so a future backend integration is a
// drop-in replacement.

type delivery struct {
	ID        int    `json:"id"`
	Cliente   string `json:"cliente"`
	Direccion string `json:"direccion"`
	Estado    string `json:"estado"`
	Total     string `json:"total"`
}

type invoice struct {
	ID      int    `json:"id"`
	Folio   string `json:"folio"`
	Cliente string `json:"cliente"`
	Fecha   string `json:"fecha"`
	Total   string `json:"total"`
	Pagada  bool   `json:"pagada"`
}

type supplierOrder struct {
	ID        int    `json:"id"`
	Proveedor string `json:"proveedor"`
	Fecha     string `json:"fecha"`
	Estado    string `json:"estado"`
	Total     string `json:"total"`
}

var sampleDeliveries = []delivery{
	{ID: 1, Cliente: "Carlos Peña", Direccion: "Av. Reforma 12", Estado: "en camino", Total: "230.00"},
	{ID: 2, Cliente: "María López", Direccion: "Calle 5 de Mayo 88", Estado: "entregado", Total: "145.50"},
}

var sampleInvoices = []invoice{
	{ID: 1, Folio: "F-0001", Cliente: "Carlos Peña", Fecha: "2026-08-20", Total: "230.00", Pagada: true},
	{ID: 2, Folio: "F-0002", Cliente: "Comedor Industrial SA", Fecha: "2026-08-26", Total: "1840.00", Pagada: false},
}

var sampleSupplierOrders = []supplierOrder{
	{ID: 1, Proveedor: "Carnes del Norte", Fecha: "2026-08-24", Estado: "recibido", Total: "3200.00"},
	{ID: 2, Proveedor: "Verduras La Huerta", Fecha: "2026-08-28", Estado: "pendiente", Total: "960.00"},
}

func (s *Server) listDeliveries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sampleDeliveries)
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sampleInvoices)
}

func (s *Server) listSupplierOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sampleSupplierOrders)
}
