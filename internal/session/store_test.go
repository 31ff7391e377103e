package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
)

type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memTokens) current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

type stubAPI struct {
	mu          sync.Mutex
	tokens      []string
	tokenErr    error
	registerErr error
	registered  []string
	meFn        func(ctx context.Context) (*domain.User, error)
}

func (a *stubAPI) Register(_ context.Context, username, _, _ string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.registerErr != nil {
		return nil, a.registerErr
	}
	a.registered = append(a.registered, username)
	return &domain.User{UserID: 1, Username: username, Role: domain.RoleUser}, nil
}

func (a *stubAPI) Token(_ context.Context, _, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tokenErr != nil {
		return "", a.tokenErr
	}
	if len(a.tokens) == 0 {
		return "tok", nil
	}
	token := a.tokens[0]
	if len(a.tokens) > 1 {
		a.tokens = a.tokens[1:]
	}
	return token, nil
}

func (a *stubAPI) Me(ctx context.Context) (*domain.User, error) {
	a.mu.Lock()
	fn := a.meFn
	a.mu.Unlock()
	if fn == nil {
		return &domain.User{UserID: 1, Username: "alice", Nickname: "A", Role: domain.RoleUser}, nil
	}
	return fn(ctx)
}

func newTestStore(t *testing.T, api *stubAPI, tokens *memTokens) *Store {
	t.Helper()
	s := NewStore(api, tokens, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	return s
}

func TestStore_StartWithoutPersistedToken(t *testing.T) {
	s := newTestStore(t, &stubAPI{}, &memTokens{})
	s.Wait()

	if s.State() != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", s.State())
	}
	if s.IsAuthenticated() || s.IsAdmin() || s.User() != nil {
		t.Fatal("fresh store must carry no session")
	}
}

func TestStore_LoginSuccess(t *testing.T) {
	tokens := &memTokens{}
	s := newTestStore(t, &stubAPI{}, tokens)

	if err := s.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	s.Wait()

	if s.State() != StateAuthenticated {
		t.Fatalf("expected authenticated state, got %s", s.State())
	}
	user := s.User()
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected cached profile: %+v", user)
	}
	if tokens.current() == "" {
		t.Fatal("expected token persisted to durable storage")
	}
}

func TestStore_ProfileFetchFailure_PurgesToken(t *testing.T) {
	tokens := &memTokens{}
	api := &stubAPI{meFn: func(context.Context) (*domain.User, error) {
		return nil, errors.New("401: could not validate credentials")
	}}
	s := newTestStore(t, api, tokens)

	if err := s.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	s.Wait()

	if s.IsAuthenticated() {
		t.Fatal("expected token reverted after failed profile fetch")
	}
	if tokens.current() != "" {
		t.Fatal("expected token cleared from durable storage")
	}
	if s.State() != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", s.State())
	}
}

func TestStore_RegisterThenLoginFailure_PersistsNothing(t *testing.T) {
	tokens := &memTokens{}
	api := &stubAPI{tokenErr: errors.New("Incorrect username or password")}
	s := newTestStore(t, api, tokens)

	err := s.Register(context.Background(), "bob", "Bob", "secret1")
	if err == nil {
		t.Fatal("expected login failure to propagate")
	}
	if len(api.registered) != 1 {
		t.Fatalf("expected registration to have happened, got %v", api.registered)
	}
	if tokens.current() != "" {
		t.Fatal("expected no token persisted")
	}
	if s.IsAuthenticated() {
		t.Fatal("expected unauthenticated session")
	}
}

func TestStore_RegisterSuccess_EstablishesSession(t *testing.T) {
	s := newTestStore(t, &stubAPI{}, &memTokens{})

	if err := s.Register(context.Background(), "carol", "C", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	s.Wait()
	if s.State() != StateAuthenticated {
		t.Fatalf("expected authenticated after register, got %s", s.State())
	}
}

func TestStore_Logout_ClearsStorageAndMemory(t *testing.T) {
	tokens := &memTokens{}
	s := newTestStore(t, &stubAPI{}, tokens)

	if err := s.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	s.Wait()

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if s.IsAuthenticated() || s.User() != nil {
		t.Fatal("expected session cleared")
	}
	if tokens.current() != "" {
		t.Fatal("expected durable storage cleared")
	}

	// Logout with no prior session is still a no-op success.
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("repeated Logout returned error: %v", err)
	}
}

func TestStore_StartupWithPersistedToken_AdminProfile(t *testing.T) {
	tokens := &memTokens{token: "persisted"}
	api := &stubAPI{meFn: func(context.Context) (*domain.User, error) {
		return &domain.User{UserID: 1, Nickname: "A", Role: domain.RoleAdmin}, nil
	}}
	s := newTestStore(t, api, tokens)
	s.Wait()

	if !s.IsAdmin() {
		t.Fatal("expected admin flag true")
	}
	if s.Loading() {
		t.Fatal("expected loading finished")
	}
	if s.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", s.State())
	}
}

func TestStore_StartupWithPersistedToken_FetchRejected(t *testing.T) {
	tokens := &memTokens{token: "expired"}
	api := &stubAPI{meFn: func(context.Context) (*domain.User, error) {
		return nil, errors.New("401 Unauthorized")
	}}
	s := newTestStore(t, api, tokens)
	s.Wait()

	if s.IsAuthenticated() {
		t.Fatal("expected authenticated flag false")
	}
	if tokens.current() != "" {
		t.Fatal("expected persisted token cleared")
	}
}

func TestStore_LastTokenSetWins(t *testing.T) {
	tokens := &memTokens{}
	release := make(chan struct{})
	api := &stubAPI{tokens: []string{"t1", "t2"}}
	api.meFn = func(ctx context.Context) (*domain.User, error) {
		<-release
		if tokens.current() == "t1" {
			return &domain.User{UserID: 1, Role: domain.RoleUser}, nil
		}
		return &domain.User{UserID: 2, Role: domain.RoleAdmin}, nil
	}
	s := newTestStore(t, api, tokens)

	if err := s.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if err := s.Login(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	close(release)
	s.Wait()

	user := s.User()
	if user == nil || user.UserID != 2 {
		t.Fatalf("expected the later session's profile, got %+v", user)
	}
	if s.Token() != "t2" {
		t.Fatalf("expected token t2, got %q", s.Token())
	}
}

func TestParseClaims_ExpiryAndSubject(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}

	claims, err := ParseClaims(signed)
	if err != nil {
		t.Fatalf("ParseClaims returned error: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected expiry %v, want %v", claims.ExpiresAt, exp)
	}
}

func TestTokenExpiry_NoToken(t *testing.T) {
	s := newTestStore(t, &stubAPI{}, &memTokens{})
	s.Wait()
	if _, ok := s.TokenExpiry(); ok {
		t.Fatal("expected no expiry without a token")
	}
}
