package backoffice

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/comanda-pos/terminal/internal/api"
)

func urlID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// --- Employees ---

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Employee(nil), s.store.employees...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var e api.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if errs := validateEmployee(e); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	e.ID = s.store.next("empleados")
	s.store.employees = append(s.store.employees, e)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	var e api.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if errs := validateEmployee(e); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.employees {
		if s.store.employees[i].ID == id {
			e.ID = id
			s.store.employees[i] = e
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.employees {
		if s.store.employees[i].ID == id {
			s.store.employees = append(s.store.employees[:i], s.store.employees[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "empleado eliminado"})
			return
		}
	}
	writeNotFound(w)
}

func validateEmployee(e api.Employee) map[string][]string {
	errs := map[string][]string{}
	if e.Nombre == "" {
		errs["nombre"] = []string{"El nombre es obligatorio."}
	}
	if e.Email == "" {
		errs["email"] = []string{"El correo es obligatorio."}
	}
	return errs
}

// --- Tables ---

func (s *Server) listTables(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Table(nil), s.store.tables...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTable(w http.ResponseWriter, r *http.Request) {
	var t api.Table
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if t.Numero <= 0 || t.Capacidad <= 0 {
		writeValidation(w, map[string][]string{
			"cantidad": {"El número y la capacidad de la mesa deben ser mayores a cero."},
		})
		return
	}

	s.store.mu.Lock()
	t.ID = s.store.next("mesas")
	s.store.tables = append(s.store.tables, t)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTable(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	var t api.Table
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.tables {
		if s.store.tables[i].ID == id {
			t.ID = id
			s.store.tables[i] = t
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) deleteTable(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.tables {
		if s.store.tables[i].ID == id {
			s.store.tables = append(s.store.tables[:i], s.store.tables[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "mesa eliminada"})
			return
		}
	}
	writeNotFound(w)
}

// --- Customers ---

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Customer(nil), s.store.customers...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var c api.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if c.Nombre == "" {
		writeValidation(w, map[string][]string{"nombre": {"El nombre es obligatorio."}})
		return
	}

	s.store.mu.Lock()
	c.ID = s.store.next("clientes")
	s.store.customers = append(s.store.customers, c)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	var c api.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.customers {
		if s.store.customers[i].ID == id {
			c.ID = id
			s.store.customers[i] = c
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.customers {
		if s.store.customers[i].ID == id {
			s.store.customers = append(s.store.customers[:i], s.store.customers[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "cliente eliminado"})
			return
		}
	}
	writeNotFound(w)
}

// --- Suppliers ---

func (s *Server) listSuppliers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Supplier(nil), s.store.suppliers...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSupplier(w http.ResponseWriter, r *http.Request) {
	var sp api.Supplier
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if sp.Nombre == "" {
		writeValidation(w, map[string][]string{"nombre": {"El nombre es obligatorio."}})
		return
	}

	s.store.mu.Lock()
	sp.ID = s.store.next("proveedores")
	s.store.suppliers = append(s.store.suppliers, sp)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	var sp api.Supplier
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.suppliers {
		if s.store.suppliers[i].ID == id {
			sp.ID = id
			s.store.suppliers[i] = sp
			writeJSON(w, http.StatusOK, sp)
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.suppliers {
		if s.store.suppliers[i].ID == id {
			s.store.suppliers = append(s.store.suppliers[:i], s.store.suppliers[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "proveedor eliminado"})
			return
		}
	}
	writeNotFound(w)
}

// --- Inventory ---

func (s *Server) listIngredients(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Ingredient(nil), s.store.ingredients...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createIngredient(w http.ResponseWriter, r *http.Request) {
	var in api.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	errs := map[string][]string{}
	if in.Nombre == "" {
		errs["nombre"] = []string{"El nombre es obligatorio."}
	}
	if in.CategoriaID <= 0 {
		errs["categoria_id"] = []string{"La categoría es obligatoria."}
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	in.ID = s.store.next("ingredientes")
	s.store.ingredients = append(s.store.ingredients, in)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	var in api.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.ingredients {
		if s.store.ingredients[i].ID == id {
			in.ID = id
			s.store.ingredients[i] = in
			writeJSON(w, http.StatusOK, in)
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.ingredients {
		if s.store.ingredients[i].ID == id {
			s.store.ingredients = append(s.store.ingredients[:i], s.store.ingredients[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "ingrediente eliminado"})
			return
		}
	}
	writeNotFound(w)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.IngredientCategory(nil), s.store.categories...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var c api.IngredientCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if c.Nombre == "" {
		writeValidation(w, map[string][]string{"nombre": {"El nombre es obligatorio."}})
		return
	}

	s.store.mu.Lock()
	c.ID = s.store.next("categorias")
	s.store.categories = append(s.store.categories, c)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listMovementTypes(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.MovementType(nil), s.store.movementTypes...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listMovements(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := append([]api.Movement(nil), s.store.movements...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createMovement(w http.ResponseWriter, r *http.Request) {
	var m api.Movement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	errs := map[string][]string{}
	if m.IngredienteID <= 0 {
		errs["ingrediente_id"] = []string{"El ingrediente es obligatorio."}
	}
	if m.Cantidad == "" {
		errs["cantidad"] = []string{"La cantidad es obligatoria."}
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	m.ID = s.store.next("movimientos")
	s.store.movements = append(s.store.movements, m)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusCreated, m)
}

// formData bundles the lookups the inventory forms load in one request.
func (s *Server) formData(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := api.FormData{
		Ingredientes:    append([]api.Ingredient(nil), s.store.ingredients...),
		Categorias:      append([]api.IngredientCategory(nil), s.store.categories...),
		TiposMovimiento: append([]api.MovementType(nil), s.store.movementTypes...),
		Proveedores:     append([]api.Supplier(nil), s.store.suppliers...),
	}
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}
