package backoffice

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/comanda-pos/terminal/internal/api"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(testSecret).Router())
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	res, err := http.Post(srv.URL+"/login", "application/json",
		strings.NewReader(`{"email":"admin@comanda.mx","password":"password"}`))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		t.Fatalf("login status = %d, body = %s", res.StatusCode, body)
	}
	var auth api.AuthResponse
	if err := json.NewDecoder(res.Body).Decode(&auth); err != nil {
		t.Fatal(err)
	}
	return auth.Token
}

func authedRequest(t *testing.T, srv *httptest.Server, token, method, path, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Post(srv.URL+"/login", "application/json",
		strings.NewReader(`{"email":"admin@comanda.mx","password":"wrong"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", res.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "short password",
			body:      `{"nombre":"Nuevo","email":"n@x.mx","password":"corta","password_confirmation":"corta"}`,
			wantField: "password",
		},
		{
			name:      "mismatched confirmation",
			body:      `{"nombre":"Nuevo","email":"n@x.mx","password":"secreta123","password_confirmation":"otra1234"}`,
			wantField: "password",
		},
		{
			name:      "duplicate email",
			body:      `{"nombre":"Otro","email":"admin@comanda.mx","password":"secreta123","password_confirmation":"secreta123"}`,
			wantField: "email",
		},
		{
			name:      "missing name",
			body:      `{"email":"n@x.mx","password":"secreta123","password_confirmation":"secreta123"}`,
			wantField: "nombre",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := http.Post(srv.URL+"/register", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatal(err)
			}
			defer res.Body.Close()
			if res.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", res.StatusCode)
			}

			var payload struct {
				Message string              `json:"message"`
				Errors  map[string][]string `json:"errors"`
			}
			if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
				t.Fatal(err)
			}
			if payload.Message == "" {
				t.Error("422 payload missing top-level message")
			}
			if len(payload.Errors[tc.wantField]) == 0 {
				t.Errorf("expected errors[%q], got %+v", tc.wantField, payload.Errors)
			}
		})
	}
}

func TestRegisterThenAuthenticated(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Post(srv.URL+"/register", "application/json",
		strings.NewReader(`{"nombre":"Nuevo","email":"nuevo@comanda.mx","password":"secreta123","password_confirmation":"secreta123"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", res.StatusCode)
	}
	var auth api.AuthResponse
	json.NewDecoder(res.Body).Decode(&auth)
	if auth.Token == "" || auth.User.ID == 0 {
		t.Fatalf("auth = %+v", auth)
	}

	listRes := authedRequest(t, srv, auth.Token, http.MethodGet, "/empleados", "")
	defer listRes.Body.Close()
	if listRes.StatusCode != http.StatusOK {
		t.Errorf("list with fresh token = %d, want 200", listRes.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/empleados")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", res.StatusCode)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	res := authedRequest(t, srv, token, http.MethodPost, "/logout", "")
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", res.StatusCode)
	}

	res = authedRequest(t, srv, token, http.MethodGet, "/empleados", "")
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want 401", res.StatusCode)
	}
}

func TestEmployeeCRUD(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	res := authedRequest(t, srv, token, http.MethodPost, "/empleados",
		`{"nombre":"Pedro Lima","email":"pedro@comanda.mx","telefono":"5551239999","puesto":"mesero"}`)
	if res.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		t.Fatalf("create status = %d, body = %s", res.StatusCode, body)
	}
	var created api.Employee
	json.NewDecoder(res.Body).Decode(&created)
	res.Body.Close()
	if created.ID == 0 || created.Nombre != "Pedro Lima" {
		t.Fatalf("created = %+v", created)
	}

	created.Puesto = "cocinero"
	payload, _ := json.Marshal(created)
	res = authedRequest(t, srv, token, http.MethodPut, "/empleados/4", string(payload))
	var updated api.Employee
	json.NewDecoder(res.Body).Decode(&updated)
	res.Body.Close()
	if updated.Puesto != "cocinero" {
		t.Errorf("updated = %+v", updated)
	}

	res = authedRequest(t, srv, token, http.MethodDelete, "/empleados/4", "")
	res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", res.StatusCode)
	}

	res = authedRequest(t, srv, token, http.MethodGet, "/empleados", "")
	var list []api.Employee
	json.NewDecoder(res.Body).Decode(&list)
	res.Body.Close()
	for _, e := range list {
		if e.ID == created.ID {
			t.Error("deleted employee still listed")
		}
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	res := authedRequest(t, srv, token, http.MethodPost, "/empleados", `{"email":"x@x.mx"}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", res.StatusCode)
	}
}

func productForm(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestProductUpdateNeedsMethodOverride(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Without _method=PUT the route refuses the POST.
	body, ct := productForm(t, map[string]string{
		"nombre": "Tacos", "precio": "90.00", "categoria_id": "1",
	})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/platillos/1", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status without override = %d, want 405", res.StatusCode)
	}

	// With the override the product updates.
	body, ct = productForm(t, map[string]string{
		"_method": "PUT", "nombre": "Tacos de suadero", "precio": "90.00",
		"categoria_id": "1", "disponible": "true",
	})
	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/platillos/1", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("status with override = %d, body = %s", res.StatusCode, raw)
	}
	var p api.Product
	json.NewDecoder(res.Body).Decode(&p)
	if p.Nombre != "Tacos de suadero" || p.Precio != "90.00" {
		t.Errorf("product = %+v", p)
	}
}

func TestProductValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	body, ct := productForm(t, map[string]string{
		"nombre": "Sopa", "precio": "no-es-numero", "categoria_id": "1",
	})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/platillos", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", res.StatusCode)
	}
	var payload struct {
		Errors map[string][]string `json:"errors"`
	}
	json.NewDecoder(res.Body).Decode(&payload)
	if len(payload.Errors["precio"]) == 0 {
		t.Errorf("expected precio error, got %+v", payload.Errors)
	}
}

func TestFormDataBundle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	res := authedRequest(t, srv, token, http.MethodGet, "/form-data", "")
	defer res.Body.Close()
	var fd api.FormData
	if err := json.NewDecoder(res.Body).Decode(&fd); err != nil {
		t.Fatal(err)
	}
	if len(fd.Ingredientes) == 0 || len(fd.Categorias) == 0 ||
		len(fd.TiposMovimiento) == 0 || len(fd.Proveedores) == 0 {
		t.Errorf("form data incomplete: %+v", fd)
	}
}

func TestTypedClientAgainstStub(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	c := api.New(srv.URL, api.TokenFunc(func() string { return token }))

	products, err := c.ListProducts(t.Context())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 3 {
		t.Errorf("expected 3 seeded products, got %d", len(products))
	}

	created, err := c.CreateCustomer(t.Context(), api.Customer{
		Nombre: "Lucía Ríos", Email: "lucia@example.com", Telefono: "5550001111",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if created.ID == 0 {
		t.Errorf("created customer without id: %+v", created)
	}

	_, err = c.CreateCustomer(t.Context(), api.Customer{})
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 APIError, got %v", err)
	}
}
