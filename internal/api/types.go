package api

// Entity types mirror the back-office JSON, which speaks Spanish. Field
// names stay close to the wire so payloads round-trip without mapping
// layers.

type User struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

type Employee struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Puesto   string `json:"puesto"`
}

type Table struct {
	ID        int    `json:"id"`
	Numero    int    `json:"numero"`
	Capacidad int    `json:"capacidad"`
	Ubicacion string `json:"ubicacion"`
	Ocupada   bool   `json:"ocupada"`
}

type Product struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      string `json:"precio"`
	CategoriaID int    `json:"categoria_id"`
	Imagen      string `json:"imagen"`
	Disponible  bool   `json:"disponible"`
}

type Customer struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

type Supplier struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Contacto  string `json:"contacto"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

type Ingredient struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	CategoriaID int    `json:"categoria_id"`
	Stock       string `json:"stock"`
	Unidad      string `json:"unidad"`
}

type IngredientCategory struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type MovementType struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Movement struct {
	ID               int    `json:"id"`
	IngredienteID    int    `json:"ingrediente_id"`
	TipoMovimientoID int    `json:"tipo_movimiento_id"`
	Cantidad         string `json:"cantidad"`
	Descripcion      string `json:"descripcion"`
	Fecha            string `json:"fecha"`
}

// FormData bundles the lookup lists the inventory forms need in one call.
type FormData struct {
	Ingredientes    []Ingredient         `json:"ingredientes"`
	Categorias      []IngredientCategory `json:"categorias"`
	TiposMovimiento []MovementType       `json:"tipos_movimiento"`
	Proveedores     []Supplier           `json:"proveedores"`
}
