package api

import (
	"context"
	"fmt"
	"net/http"
)

// Thin typed wrappers, one family per back-office collection. Every list
// is a full reload; there is no pagination or caching on this side.

// --- Employees (/empleados) ---

func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := c.do(ctx, http.MethodGet, "/empleados", nil, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	var out Employee
	err := c.do(ctx, http.MethodPost, "/empleados", e, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, e Employee) (Employee, error) {
	var out Employee
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/empleados/%d", e.ID), e, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/empleados/%d", id), nil, nil)
}

// --- Tables (/mesas) ---

func (c *Client) ListTables(ctx context.Context) ([]Table, error) {
	var out []Table
	err := c.do(ctx, http.MethodGet, "/mesas", nil, &out)
	return out, err
}

func (c *Client) CreateTable(ctx context.Context, t Table) (Table, error) {
	var out Table
	err := c.do(ctx, http.MethodPost, "/mesas", t, &out)
	return out, err
}

func (c *Client) UpdateTable(ctx context.Context, t Table) (Table, error) {
	var out Table
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/mesas/%d", t.ID), t, &out)
	return out, err
}

func (c *Client) DeleteTable(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/mesas/%d", id), nil, nil)
}

// --- Clients (/clientes) ---

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := c.do(ctx, http.MethodGet, "/clientes", nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, cu Customer) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPost, "/clientes", cu, &out)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, cu Customer) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/clientes/%d", cu.ID), cu, &out)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/clientes/%d", id), nil, nil)
}

// --- Suppliers (/proveedores) ---

func (c *Client) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	err := c.do(ctx, http.MethodGet, "/proveedores", nil, &out)
	return out, err
}

func (c *Client) CreateSupplier(ctx context.Context, s Supplier) (Supplier, error) {
	var out Supplier
	err := c.do(ctx, http.MethodPost, "/proveedores", s, &out)
	return out, err
}

func (c *Client) UpdateSupplier(ctx context.Context, s Supplier) (Supplier, error) {
	var out Supplier
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/proveedores/%d", s.ID), s, &out)
	return out, err
}

func (c *Client) DeleteSupplier(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/proveedores/%d", id), nil, nil)
}

// --- Inventory (/ingredientes, /categorias-ingredientes, /movimientos, /tipos-movimiento) ---

func (c *Client) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	var out []Ingredient
	err := c.do(ctx, http.MethodGet, "/ingredientes", nil, &out)
	return out, err
}

func (c *Client) CreateIngredient(ctx context.Context, in Ingredient) (Ingredient, error) {
	var out Ingredient
	err := c.do(ctx, http.MethodPost, "/ingredientes", in, &out)
	return out, err
}

func (c *Client) UpdateIngredient(ctx context.Context, in Ingredient) (Ingredient, error) {
	var out Ingredient
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/ingredientes/%d", in.ID), in, &out)
	return out, err
}

func (c *Client) DeleteIngredient(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ingredientes/%d", id), nil, nil)
}

func (c *Client) ListIngredientCategories(ctx context.Context) ([]IngredientCategory, error) {
	var out []IngredientCategory
	err := c.do(ctx, http.MethodGet, "/categorias-ingredientes", nil, &out)
	return out, err
}

func (c *Client) CreateIngredientCategory(ctx context.Context, cat IngredientCategory) (IngredientCategory, error) {
	var out IngredientCategory
	err := c.do(ctx, http.MethodPost, "/categorias-ingredientes", cat, &out)
	return out, err
}

func (c *Client) ListMovementTypes(ctx context.Context) ([]MovementType, error) {
	var out []MovementType
	err := c.do(ctx, http.MethodGet, "/tipos-movimiento", nil, &out)
	return out, err
}

func (c *Client) ListMovements(ctx context.Context) ([]Movement, error) {
	var out []Movement
	err := c.do(ctx, http.MethodGet, "/movimientos", nil, &out)
	return out, err
}

func (c *Client) CreateMovement(ctx context.Context, m Movement) (Movement, error) {
	var out Movement
	err := c.do(ctx, http.MethodPost, "/movimientos", m, &out)
	return out, err
}

// GetFormData fetches the bundled lookup lists for the inventory forms.
func (c *Client) GetFormData(ctx context.Context) (FormData, error) {
	var out FormData
	err := c.do(ctx, http.MethodGet, "/form-data", nil, &out)
	return out, err
}
