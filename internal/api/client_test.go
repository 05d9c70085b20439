package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, TokenFunc(func() string { return "tok-123" }))
	if _, err := c.ListEmployees(context.Background()); err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestNoTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, TokenFunc(func() string { return "" }))
	c.ListTables(context.Background())

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "422 picks priority field",
			status:  http.StatusUnprocessableEntity,
			body:    `{"message":"Los datos proporcionados no son válidos.","errors":{"descripcion":["Muy larga."],"nombre":["El nombre es obligatorio."]}}`,
			wantMsg: "El nombre es obligatorio.",
		},
		{
			name:    "422 falls back to any field",
			status:  http.StatusUnprocessableEntity,
			body:    `{"message":"Los datos proporcionados no son válidos.","errors":{"otra_cosa":["Campo inválido."]}}`,
			wantMsg: "Campo inválido.",
		},
		{
			name:    "plain message",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Credenciales incorrectas."}`,
			wantMsg: "Credenciales incorrectas.",
		},
		{
			name:    "empty body gets generic message",
			status:  http.StatusInternalServerError,
			body:    ``,
			wantMsg: "error HTTP 500",
		},
		{
			name:    "non-JSON body gets generic message",
			status:  http.StatusBadGateway,
			body:    `<html>oops</html>`,
			wantMsg: "error HTTP 502",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := decodeError(tc.status, []byte(tc.body))
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Status != tc.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tc.status)
			}
			if apiErr.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.wantMsg)
			}
		})
	}
}

func TestLoginDecodesAuthResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Write([]byte(`{"user":{"id":1,"nombre":"Admin","email":"admin@comanda.mx"},"token":"jwt-abc"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	res, err := c.Login(context.Background(), LoginRequest{Email: "admin@comanda.mx", Password: "password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "jwt-abc" || res.User.Nombre != "Admin" {
		t.Errorf("unexpected auth response: %+v", res)
	}
}

func TestUpdateProductSendsMethodOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/platillos/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("_method"); got != "PUT" {
			t.Errorf("_method = %q, want PUT", got)
		}
		if got := r.FormValue("nombre"); got != "Tacos al pastor" {
			t.Errorf("nombre = %q", got)
		}
		if got := r.FormValue("precio"); got != "85.00" {
			t.Errorf("precio = %q", got)
		}

		file, header, err := r.FormFile("imagen")
		if err != nil {
			t.Fatalf("missing image part: %v", err)
		}
		defer file.Close()
		if header.Filename != "pastor.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}

		w.Write([]byte(`{"id":7,"nombre":"Tacos al pastor"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	p, err := c.UpdateProduct(context.Background(), 7, ProductForm{
		Nombre:      "Tacos al pastor",
		Precio:      "85.00",
		CategoriaID: 1,
		Disponible:  true,
		Image:       strings.NewReader("not-really-a-jpeg"),
		ImageName:   "pastor.jpg",
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("id = %d, want 7", p.ID)
	}
}

func TestCreateProductOmitsMethodOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("_method"); got != "" {
			t.Errorf("_method = %q, want absent", got)
		}
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, err := c.CreateProduct(context.Background(), ProductForm{Nombre: "Pozole", Precio: "120.00", CategoriaID: 2}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil)
	c.ListCustomers(context.Background())

	if gotPath != "/clientes" {
		t.Errorf("path = %q, want /clientes", gotPath)
	}
}
