// Package session holds the terminal's authenticated session: the current
// user and bearer token, mirrored to the snapshot store under the same
// keys the old front-end used in localStorage.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comanda-pos/terminal/internal/api"
	"github.com/comanda-pos/terminal/internal/localstore"
)

// ErrNoSession is returned by Logout when nobody is logged in.
var ErrNoSession = errors.New("session: not logged in")

// Event describes a session change delivered to subscribers.
type Event struct {
	Type string // "login", "logout", "restore"
	User *api.User
}

// Store owns the session state and the API client bound to it.
type Store struct {
	mu    sync.RWMutex
	db    *localstore.Store
	api   *api.Client
	user  *api.User
	token string
	subs  []func(Event)
}

// New creates a session store backed by db, with an API client pointed at
// baseURL that reads its bearer token from this store.
func New(db *localstore.Store, baseURL string) *Store {
	s := &Store{db: db}
	s.api = api.New(baseURL, api.TokenFunc(s.Token))
	return s
}

// API returns the client bound to this session.
func (s *Store) API() *api.Client { return s.api }

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user, or nil.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a session is active.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Subscribe registers fn to run on every session change. The storage-event
// analog: anything watching the session re-syncs through here.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Restore rehydrates the session from the snapshot store. A missing
// snapshot is not an error; the terminal just starts logged out.
func (s *Store) Restore() error {
	var user api.User
	var token string

	if err := s.db.Get(localstore.KeyToken, &token); err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.db.Get(localstore.KeyUser, &user); err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.publish(Event{Type: "restore", User: &user})
	return nil
}

// Login authenticates against the back office and persists the session.
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	res, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.begin(res)
}

// Register creates an account and persists the resulting session.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	res, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.begin(res)
}

func (s *Store) begin(res api.AuthResponse) (*api.User, error) {
	if err := s.db.Put(localstore.KeyUser, res.User); err != nil {
		return nil, err
	}
	if err := s.db.Put(localstore.KeyToken, res.Token); err != nil {
		return nil, err
	}

	s.mu.Lock()
	u := res.User
	s.user = &u
	s.token = res.Token
	s.mu.Unlock()

	s.publish(Event{Type: "login", User: &u})
	return &u, nil
}

// Logout revokes the token server-side (best effort) and always clears
// the local session.
func (s *Store) Logout(ctx context.Context) error {
	if !s.LoggedIn() {
		return ErrNoSession
	}

	// The local session is cleared regardless: a dead token on the server
	// must not keep the terminal logged in.
	apiErr := s.api.Logout(ctx)

	if err := s.db.Delete(localstore.KeyUser); err != nil {
		return err
	}
	if err := s.db.Delete(localstore.KeyToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.publish(Event{Type: "logout"})
	return apiErr
}

// Expired reports whether the stored token is a JWT past its expiry. The
// claims are read without signature verification; only the server can
// truly validate the token, this just lets the UI prompt for re-login.
func (s *Store) Expired() bool {
	tok := s.Token()
	if tok == "" {
		return true
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return false // opaque token, let the server decide
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

func (s *Store) publish(e Event) {
	s.mu.RLock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(e)
	}
}
