package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comanda-pos/terminal/internal/api"
	"github.com/comanda-pos/terminal/internal/localstore"
)

func openTestDB(t *testing.T) *localstore.Store {
	t.Helper()
	db, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fakeBackOffice serves just enough of the auth endpoints for the store.
func fakeBackOffice(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":1,"nombre":"Admin","email":"admin@comanda.mx"},"token":"tok-1"}`))
	})
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":2,"nombre":"Nuevo","email":"nuevo@comanda.mx"},"token":"tok-2"}`))
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Sesión cerrada."}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginPersistsSession(t *testing.T) {
	db := openTestDB(t)
	srv := fakeBackOffice(t)
	s := New(db, srv.URL)

	u, err := s.Login(context.Background(), "admin@comanda.mx", "password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Nombre != "Admin" {
		t.Errorf("user = %+v", u)
	}
	if !s.LoggedIn() || s.Token() != "tok-1" {
		t.Errorf("session not active after login: token=%q", s.Token())
	}

	// Both keys must be on disk so a restart can restore them.
	var tok string
	if err := db.Get(localstore.KeyToken, &tok); err != nil || tok != "tok-1" {
		t.Errorf("persisted token = %q, err = %v", tok, err)
	}
	var stored api.User
	if err := db.Get(localstore.KeyUser, &stored); err != nil || stored.Email != "admin@comanda.mx" {
		t.Errorf("persisted user = %+v, err = %v", stored, err)
	}
}

func TestRestore(t *testing.T) {
	db := openTestDB(t)
	srv := fakeBackOffice(t)

	first := New(db, srv.URL)
	if _, err := first.Login(context.Background(), "admin@comanda.mx", "password"); err != nil {
		t.Fatal(err)
	}

	second := New(db, srv.URL)
	var got []Event
	second.Subscribe(func(e Event) { got = append(got, e) })

	if err := second.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !second.LoggedIn() || second.Token() != "tok-1" {
		t.Error("session not restored")
	}
	if second.User() == nil || second.User().Nombre != "Admin" {
		t.Errorf("restored user = %+v", second.User())
	}
	if len(got) != 1 || got[0].Type != "restore" {
		t.Errorf("events = %+v, want one restore", got)
	}
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	s := New(openTestDB(t), "http://localhost:1")
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore on empty store: %v", err)
	}
	if s.LoggedIn() {
		t.Error("expected logged-out session")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := openTestDB(t)
	srv := fakeBackOffice(t)
	s := New(db, srv.URL)

	if _, err := s.Login(context.Background(), "admin@comanda.mx", "password"); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if s.LoggedIn() || s.User() != nil {
		t.Error("session still active after logout")
	}
	var tok string
	if err := db.Get(localstore.KeyToken, &tok); !errors.Is(err, localstore.ErrNotFound) {
		t.Errorf("token still persisted: %q, err = %v", tok, err)
	}
}

func TestLogoutClearsLocalEvenWhenUpstreamFails(t *testing.T) {
	db := openTestDB(t)
	srv := fakeBackOffice(t)
	s := New(db, srv.URL)

	if _, err := s.Login(context.Background(), "admin@comanda.mx", "password"); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	if err := s.Logout(context.Background()); err == nil {
		t.Error("expected upstream error from Logout")
	}
	if s.LoggedIn() {
		t.Error("local session must clear even when revocation fails")
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	s := New(openTestDB(t), "http://localhost:1")
	if err := s.Logout(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSubscribeEvents(t *testing.T) {
	db := openTestDB(t)
	srv := fakeBackOffice(t)
	s := New(db, srv.URL)

	var got []string
	s.Subscribe(func(e Event) { got = append(got, e.Type) })

	s.Login(context.Background(), "admin@comanda.mx", "password")
	s.Logout(context.Background())

	want := []string{"login", "logout"}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestExpired(t *testing.T) {
	db := openTestDB(t)
	s := New(db, "http://localhost:1")

	if !s.Expired() {
		t.Error("empty session should report expired")
	}

	s.begin(api.AuthResponse{Token: signedToken(t, time.Now().Add(time.Hour))})
	if s.Expired() {
		t.Error("future token reported expired")
	}

	s.begin(api.AuthResponse{Token: signedToken(t, time.Now().Add(-time.Hour))})
	if !s.Expired() {
		t.Error("past token not reported expired")
	}

	// Opaque tokens defer to the server.
	s.begin(api.AuthResponse{Token: "not-a-jwt"})
	if s.Expired() {
		t.Error("opaque token reported expired")
	}
}
