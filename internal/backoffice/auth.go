package backoffice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/comanda-pos/terminal/internal/api"
)

type claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func generateToken(secret string, u api.User) (string, error) {
	c := claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}

func validateToken(secret, tokenStr string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return c, nil
}

// Login handles POST /login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeValidation(w, map[string][]string{
			"email": {"El correo y la contraseña son obligatorios."},
		})
		return
	}

	s.store.mu.Lock()
	var found *account
	for i := range s.store.accounts {
		if s.store.accounts[i].Email == req.Email {
			found = &s.store.accounts[i]
			break
		}
	}
	s.store.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.PasswordHash, []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "credenciales inválidas"})
		return
	}

	token, err := generateToken(s.jwtSecret, found.User)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "error interno"})
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResponse{User: found.User, Token: token})
}

// Register handles POST /register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}

	errs := map[string][]string{}
	if req.Nombre == "" {
		errs["nombre"] = []string{"El nombre es obligatorio."}
	}
	if req.Email == "" {
		errs["email"] = []string{"El correo es obligatorio."}
	}
	if len(req.Password) < 8 {
		errs["password"] = []string{"La contraseña debe tener al menos 8 caracteres."}
	} else if req.Password != req.PasswordConfirmation {
		errs["password"] = []string{"Las contraseñas no coinciden."}
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	s.store.mu.Lock()
	for _, a := range s.store.accounts {
		if a.Email == req.Email {
			s.store.mu.Unlock()
			writeValidation(w, map[string][]string{
				"email": {"El correo ya está registrado."},
			})
			return
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.store.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "error interno"})
		return
	}
	s.store.nextUser++
	u := api.User{ID: s.store.nextUser, Nombre: req.Nombre, Email: req.Email}
	s.store.accounts = append(s.store.accounts, account{User: u, PasswordHash: hash})
	s.store.mu.Unlock()

	token, err := generateToken(s.jwtSecret, u)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "error interno"})
		return
	}
	writeJSON(w, http.StatusCreated, api.AuthResponse{User: u, Token: token})
}

// Logout handles POST /logout: the presented token is revoked.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if tok := bearerToken(r); tok != "" {
		s.store.mu.Lock()
		s.store.revokedTokens[tok] = true
		s.store.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "sesión cerrada"})
}

// authenticate guards the entity routes with the bearer token.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "no autenticado"})
			return
		}

		s.store.mu.Lock()
		revoked := s.store.revokedTokens[tok]
		s.store.mu.Unlock()
		if revoked {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "sesión expirada"})
			return
		}

		c, err := validateToken(s.jwtSecret, tok)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token inválido"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey string

const claimsKey contextKey = "claims"

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
