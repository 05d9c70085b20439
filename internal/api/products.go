package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ProductForm is the create/update payload for /platillos. Products go
// over multipart form data instead of JSON because of the image upload;
// updates tunnel through POST with a _method=PUT override field, the way
// the back office expects browser form submissions.
type ProductForm struct {
	Nombre      string
	Descripcion string
	Precio      string
	CategoriaID int
	Disponible  bool

	// Optional image part. ImageName is the filename sent with the part.
	Image     io.Reader
	ImageName string
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	err := c.do(ctx, http.MethodGet, "/platillos", nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (Product, error) {
	return c.submitProduct(ctx, "/platillos", form, false)
}

func (c *Client) UpdateProduct(ctx context.Context, id int, form ProductForm) (Product, error) {
	return c.submitProduct(ctx, fmt.Sprintf("/platillos/%d", id), form, true)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/platillos/%d", id), nil, nil)
}

func (c *Client) submitProduct(ctx context.Context, path string, form ProductForm, update bool) (Product, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"nombre":       form.Nombre,
		"descripcion":  form.Descripcion,
		"precio":       form.Precio,
		"categoria_id": fmt.Sprintf("%d", form.CategoriaID),
		"disponible":   fmt.Sprintf("%t", form.Disponible),
	}
	if update {
		fields["_method"] = "PUT"
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return Product{}, fmt.Errorf("write form field %q: %w", name, err)
		}
	}

	if form.Image != nil {
		name := form.ImageName
		if name == "" {
			name = "imagen"
		}
		part, err := w.CreateFormFile("imagen", name)
		if err != nil {
			return Product{}, fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return Product{}, fmt.Errorf("copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return Product{}, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return Product{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out Product
	if err := c.send(req, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}
