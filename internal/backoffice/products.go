package backoffice

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/comanda-pos/terminal/internal/api"
)

const maxProductForm = 8 << 20 // 8 MiB, image included

// Products arrive as multipart form submissions because of the image
// upload; updates come as POST with a _method=PUT override field.

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Product(nil), s.store.products...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	p, errs, ok := s.parseProductForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	p.ID = s.store.next("platillos")
	s.store.products = append(s.store.products, p)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

// submitProduct handles POST /platillos/{id}: with _method=PUT it is an
// update, anything else is rejected.
func (s *Server) submitProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	p, errs, ok := s.parseProductForm(w, r)
	if !ok {
		return
	}
	if r.FormValue("_method") != "PUT" {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "método no permitido"})
		return
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.products {
		if s.store.products[i].ID == id {
			p.ID = id
			if p.Imagen == "" {
				p.Imagen = s.store.products[i].Imagen
			}
			s.store.products[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.products {
		if s.store.products[i].ID == id {
			s.store.products = append(s.store.products[:i], s.store.products[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "platillo eliminado"})
			return
		}
	}
	writeNotFound(w)
}

// parseProductForm reads the multipart submission. The image is not
// stored anywhere; the stub just records a fake URL so the UI has
// something to render.
func (s *Server) parseProductForm(w http.ResponseWriter, r *http.Request) (api.Product, map[string][]string, bool) {
	if err := r.ParseMultipartForm(maxProductForm); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "formulario inválido"})
		return api.Product{}, nil, false
	}

	p := api.Product{
		Nombre:      r.FormValue("nombre"),
		Descripcion: r.FormValue("descripcion"),
		Precio:      r.FormValue("precio"),
		Disponible:  r.FormValue("disponible") == "true",
	}
	if v := r.FormValue("categoria_id"); v != "" {
		// Bad numbers fall through to validation below as categoria 0.
		p.CategoriaID, _ = strconv.Atoi(v)
	}

	errs := map[string][]string{}
	if p.Nombre == "" {
		errs["nombre"] = []string{"El nombre es obligatorio."}
	}
	if d, err := decimal.NewFromString(p.Precio); err != nil || d.IsNegative() {
		errs["precio"] = []string{"El precio debe ser un número válido."}
	}
	if p.CategoriaID <= 0 {
		errs["categoria_id"] = []string{"La categoría es obligatoria."}
	}

	if _, header, err := r.FormFile("imagen"); err == nil {
		p.Imagen = "/storage/platillos/" + header.Filename
	}

	return p, errs, true
}
