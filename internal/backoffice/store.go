// Package backoffice is the development stand-in for the remote
// back-office API: the same route surface and payload shapes, backed by
// in-memory collections, so the terminal runs without the real backend.
package backoffice

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/comanda-pos/terminal/internal/api"
)

type account struct {
	api.User
	PasswordHash []byte
}

// Store holds every stub collection behind one mutex. There is no
// durability on purpose: the real back office owns persistence.
type Store struct {
	mu sync.Mutex

	accounts []account
	nextUser int

	employees        []api.Employee
	tables           []api.Table
	products         []api.Product
	customers        []api.Customer
	suppliers        []api.Supplier
	ingredients      []api.Ingredient
	categories       []api.IngredientCategory
	movementTypes    []api.MovementType
	movements        []api.Movement
	nextID           map[string]int
	revokedTokens    map[string]bool
}

// NewStore returns a store seeded with sample data.
func NewStore() *Store {
	s := &Store{
		nextID:        make(map[string]int),
		revokedTokens: make(map[string]bool),
	}
	s.seed()
	return s
}

func (s *Store) next(collection string) int {
	s.nextID[collection]++
	return s.nextID[collection]
}

func (s *Store) seed() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	s.accounts = []account{
		{User: api.User{ID: 1, Nombre: "Admin", Email: "admin@comanda.mx"}, PasswordHash: hash},
	}
	s.nextUser = 1

	s.employees = []api.Employee{
		{ID: 1, Nombre: "Laura Mendoza", Email: "laura@comanda.mx", Telefono: "5551230001", Puesto: "mesero"},
		{ID: 2, Nombre: "Diego Ortiz", Email: "diego@comanda.mx", Telefono: "5551230002", Puesto: "cocinero"},
		{ID: 3, Nombre: "Sofía Rivas", Email: "sofia@comanda.mx", Telefono: "5551230003", Puesto: "cajero"},
	}
	s.nextID["empleados"] = 3

	s.tables = []api.Table{
		{ID: 1, Numero: 1, Capacidad: 4, Ubicacion: "terraza"},
		{ID: 2, Numero: 2, Capacidad: 2, Ubicacion: "interior"},
		{ID: 3, Numero: 3, Capacidad: 6, Ubicacion: "interior", Ocupada: true},
	}
	s.nextID["mesas"] = 3

	s.products = []api.Product{
		{ID: 1, Nombre: "Tacos al pastor", Descripcion: "Orden de 5 con piña", Precio: "85.00", CategoriaID: 1, Disponible: true},
		{ID: 2, Nombre: "Pozole rojo", Descripcion: "Plato grande", Precio: "120.00", CategoriaID: 1, Disponible: true},
		{ID: 3, Nombre: "Agua de horchata", Descripcion: "Vaso 500ml", Precio: "35.00", CategoriaID: 2, Disponible: true},
	}
	s.nextID["platillos"] = 3

	s.customers = []api.Customer{
		{ID: 1, Nombre: "Carlos Peña", Email: "carlos@example.com", Telefono: "5559870001", Direccion: "Av. Reforma 12"},
	}
	s.nextID["clientes"] = 1

	s.suppliers = []api.Supplier{
		{ID: 1, Nombre: "Carnes del Norte", Contacto: "Raúl Vega", Telefono: "5553210001", Email: "ventas@carnesnorte.mx", Direccion: "Mercado 4, local 8"},
		{ID: 2, Nombre: "Verduras La Huerta", Contacto: "Ana Soto", Telefono: "5553210002", Email: "pedidos@lahuerta.mx", Direccion: "Central de abastos"},
	}
	s.nextID["proveedores"] = 2

	s.categories = []api.IngredientCategory{
		{ID: 1, Nombre: "Carnes"},
		{ID: 2, Nombre: "Verduras"},
		{ID: 3, Nombre: "Abarrotes"},
	}
	s.nextID["categorias"] = 3

	s.ingredients = []api.Ingredient{
		{ID: 1, Nombre: "Carne de cerdo", CategoriaID: 1, Stock: "24.500", Unidad: "kg"},
		{ID: 2, Nombre: "Cebolla", CategoriaID: 2, Stock: "10.000", Unidad: "kg"},
		{ID: 3, Nombre: "Maíz pozolero", CategoriaID: 3, Stock: "18.000", Unidad: "kg"},
	}
	s.nextID["ingredientes"] = 3

	s.movementTypes = []api.MovementType{
		{ID: 1, Nombre: "entrada"},
		{ID: 2, Nombre: "salida"},
		{ID: 3, Nombre: "merma"},
	}
	s.nextID["tipos-movimiento"] = 3

	s.movements = []api.Movement{
		{ID: 1, IngredienteID: 1, TipoMovimientoID: 1, Cantidad: "25.000", Descripcion: "Compra semanal", Fecha: "2026-08-24"},
		{ID: 2, IngredienteID: 1, TipoMovimientoID: 2, Cantidad: "0.500", Descripcion: "Servicio", Fecha: "2026-08-25"},
	}
	s.nextID["movimientos"] = 2
}
