package api

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Nombre               string `json:"nombre"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var res AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", req, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var res AuthResponse
	err := c.do(ctx, http.MethodPost, "/register", req, &res)
	return res, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}
