// Package session holds the single source of truth for "who is logged in".
// The Store is explicitly constructed and dependency-injected; there is no
// package-level singleton.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
	"github.com/scoretalk/scoretalk-client/internal/core/ports"
	"github.com/scoretalk/scoretalk-client/internal/metrics"
)

// State is the session lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateLoadingProfile  State = "loading_profile"
	StateAuthenticated   State = "authenticated"
)

const eventBuffer = 8

// tokenEvent asks the worker to fetch the profile for a newly set token.
// gen lets the worker discard results that a later token change superseded.
type tokenEvent struct {
	token string
	gen   uint64
}

// Store owns the bearer token and the cached user profile. Every token change
// enqueues exactly one asynchronous profile fetch; a fetch failure is the sole
// token-invalidation path and purges the token from memory and durable storage.
type Store struct {
	api    ports.AuthAPI
	tokens ports.TokenStore
	log    zerolog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	token   string
	user    *domain.User
	loading bool
	gen     uint64

	events chan tokenEvent
}

// NewStore wires a Store; call Start before use.
func NewStore(api ports.AuthAPI, tokens ports.TokenStore, log zerolog.Logger) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		log:    log,
		events: make(chan tokenEvent, eventBuffer),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Start launches the profile worker and restores any persisted token, so a
// restart preserves login state. The worker stops when ctx is cancelled.
func (s *Store) Start(ctx context.Context) error {
	go s.runWorker(ctx)

	token, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}
	s.apply(token)
	return nil
}

// Login exchanges credentials for a token, persists it, and updates in-memory
// state, which triggers the asynchronous profile fetch. Exchange failures
// propagate unchanged and leave the session untouched.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Token(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return err
	}
	s.apply(token)
	return nil
}

// Register creates an account and immediately logs in with the same
// credentials — registration alone does not establish a session.
func (s *Store) Register(ctx context.Context, username, nickname, password string) error {
	if _, err := s.api.Register(ctx, username, nickname, password); err != nil {
		return err
	}
	return s.Login(ctx, username, password)
}

// Logout clears the token from durable storage and memory and drops the
// cached profile, regardless of prior state.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return err
	}
	s.apply("")
	return nil
}

// apply installs a new token value and schedules the matching profile fetch.
// An empty token clears the profile and ends any loading state immediately.
func (s *Store) apply(token string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.token = token
	s.user = nil
	s.loading = token != ""
	s.cond.Broadcast()
	s.mu.Unlock()

	if token != "" {
		s.events <- tokenEvent{token: token, gen: gen}
	}
}

func (s *Store) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.fetchProfile(ctx, ev)
		}
	}
}

// fetchProfile resolves a single token-change event. Results belonging to a
// superseded token are discarded so the last token set always wins.
func (s *Store) fetchProfile(ctx context.Context, ev tokenEvent) {
	s.mu.Lock()
	stale := ev.gen != s.gen
	s.mu.Unlock()
	if stale {
		metrics.ProfileFetchesTotal.WithLabelValues("stale").Inc()
		return
	}

	user, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.gen != s.gen {
		metrics.ProfileFetchesTotal.WithLabelValues("stale").Inc()
		return
	}
	if err != nil {
		metrics.ProfileFetchesTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("profile fetch failed, clearing session token")
		s.token = ""
		s.user = nil
		if cerr := s.tokens.Clear(ctx); cerr != nil {
			s.log.Error().Err(cerr).Msg("token store clear failed")
		}
	} else {
		metrics.ProfileFetchesTotal.WithLabelValues("ok").Inc()
		s.user = user
	}
	s.loading = false
	s.cond.Broadcast()
}

// Wait blocks until no profile fetch is in flight.
func (s *Store) Wait() {
	s.mu.Lock()
	for s.loading {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the cached profile, or nil while unauthenticated or
// still loading.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

// IsAuthenticated reports whether a token is present. A token alone does not
// guarantee a valid session until the profile fetch succeeds.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// IsAdmin reports whether the cached profile carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.IsAdmin()
}

// Loading reports whether a profile fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// State derives the lifecycle state from current fields; nothing is stored
// independently.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.token == "":
		return StateUnauthenticated
	case s.loading:
		return StateLoadingProfile
	default:
		return StateAuthenticated
	}
}
