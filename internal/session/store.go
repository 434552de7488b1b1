package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/examsaathi/examsaathi-web/pkg/identity"
	"github.com/examsaathi/examsaathi-web/pkg/keyvalue"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

// pendingEmailKey names the durable slot holding the address a magic link was
// sent to, so completion can recover it without asking again.
const pendingEmailKey = "pendingEmail"

const watcherBuffer = 4

// Snapshot is the session state observers act on. Loading stays true until
// the first provider notification arrives; EmailVerified can run ahead of the
// provider's own claim after a completed passwordless sign-in.
type Snapshot struct {
	Identity      *identity.Identity
	Loading       bool
	EmailVerified bool
}

// Prompter resolves the sign-in email interactively when neither durable
// storage nor the link itself carries it.
type Prompter interface {
	PromptEmail(ctx context.Context) (string, error)
}

// Verifier notifies the backend that a passwordless sign-in completed.
type Verifier interface {
	Verify(ctx context.Context, idToken string) error
}

// StoreParams collects the session store dependencies.
type StoreParams struct {
	Provider identity.Provider
	State    keyvalue.Store
	Students Verifier
	Prompt   Prompter
	Logger   *logger.Logger

	// PublicOrigin is the externally reachable origin used to build the
	// continue URL on magic-link emails.
	PublicOrigin string
}

// Store owns the process-wide session state. It observes the identity
// provider, exposes a consistent snapshot to route guards and controllers,
// and drives the passwordless sign-in handshake.
type Store struct {
	provider identity.Provider
	state    keyvalue.Store
	students Verifier
	prompt   Prompter
	logger   *logger.Logger
	origin   string

	mu       sync.RWMutex
	snap     Snapshot
	watchers map[int]chan Snapshot
	nextID   int
}

// NewStore validates the dependency set and returns a store that reports
// loading until its Run loop receives the first provider notification.
func NewStore(params StoreParams) (*Store, error) {
	if params.Provider == nil {
		return nil, fmt.Errorf("identity provider required")
	}
	if params.State == nil {
		return nil, fmt.Errorf("state store required")
	}
	if params.Students == nil {
		return nil, fmt.Errorf("student verifier required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.PublicOrigin == "" {
		return nil, fmt.Errorf("public origin required")
	}
	return &Store{
		provider: params.Provider,
		state:    params.State,
		students: params.Students,
		prompt:   params.Prompt,
		logger:   params.Logger,
		origin:   params.PublicOrigin,
		snap:     Snapshot{Loading: true},
		watchers: make(map[int]chan Snapshot),
	}, nil
}

// Run consumes provider notifications until the context is cancelled.
func (s *Store) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change := <-s.provider.Changes():
			s.apply(change)
		}
	}
}

func (s *Store) apply(change identity.Snapshot) {
	s.mu.Lock()
	s.snap = Snapshot{
		Identity:      change.Identity,
		EmailVerified: change.Identity != nil && change.Identity.EmailVerified,
	}
	snap := s.snap
	s.mu.Unlock()
	s.notify(snap)
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers a watcher for session changes. Watchers that fall
// behind miss intermediate states, never the stream itself. The returned
// cancel func releases the watcher.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, watcherBuffer)
	s.watchers[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// WaitReady blocks until the first provider notification resolves the loading
// state.
func (s *Store) WaitReady(ctx context.Context) error {
	if !s.Snapshot().Loading {
		return nil
	}
	ch, cancel := s.Subscribe()
	defer cancel()

	// Re-check after subscribing so a notification delivered in between is
	// not missed.
	if !s.Snapshot().Loading {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap := <-ch:
			if !snap.Loading {
				return nil
			}
		}
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// SendMagicLink requests a passwordless sign-in email. The address rides on
// the continue URL so another device can recover it, and is also persisted
// locally for completion on this one.
func (s *Store) SendMagicLink(ctx context.Context, email string) error {
	cont, err := url.Parse(s.origin + "/student-signup")
	if err != nil {
		return fmt.Errorf("build continue url: %w", err)
	}
	query := cont.Query()
	query.Set("loginEmail", email)
	cont.RawQuery = query.Encode()

	if err := s.provider.SendMagicLink(ctx, email, cont.String()); err != nil {
		return err
	}
	if err := s.state.Set(ctx, pendingEmailKey, email); err != nil {
		s.logger.Warn(ctx, "could not persist pending sign-in email")
	}
	return nil
}

// CompletePendingSignIn inspects a landing URL for a passwordless handshake
// and finishes the sign-in when one is present. It reports whether a sign-in
// completed; a handshake whose email cannot be recovered is abandoned without
// error.
func (s *Store) CompletePendingSignIn(ctx context.Context, rawURL string) (bool, error) {
	link := rawURL
	if !s.provider.IsMagicLink(link) {
		link = reconstructLink(rawURL, s.origin)
		if link == "" || !s.provider.IsMagicLink(link) {
			return false, nil
		}
	}

	email := s.pendingEmail(ctx)
	if email == "" {
		email = QueryParam(rawURL, "loginEmail")
	}
	if email == "" && s.prompt != nil {
		prompted, err := s.prompt.PromptEmail(ctx)
		if err != nil {
			s.logger.Warn(ctx, "sign-in email prompt dismissed")
			return false, nil
		}
		email = prompted
	}
	if email == "" {
		return false, nil
	}

	if err := s.provider.SignInWithMagicLink(ctx, email, link); err != nil {
		return false, err
	}

	if err := s.state.Clear(ctx, pendingEmailKey); err != nil {
		s.logger.Warn(ctx, "could not clear pending sign-in email")
	}

	// Verification is best effort. A signed-in session must not fail because
	// the backend could not be notified.
	if token, err := s.provider.Token(ctx); err == nil {
		if err := s.students.Verify(ctx, token); err != nil {
			s.logger.Warn(ctx, "backend verify notification failed")
		}
	}

	s.markEmailVerified()
	return true, nil
}

func (s *Store) pendingEmail(ctx context.Context) string {
	email, err := s.state.Get(ctx, pendingEmailKey)
	if err != nil {
		if !errors.Is(err, keyvalue.ErrNotFound) {
			s.logger.Warn(ctx, "pending sign-in email lookup failed")
		}
		return ""
	}
	return email
}

// markEmailVerified flips the session flag ahead of the provider's own
// notification, which may still carry stale claims.
func (s *Store) markEmailVerified() {
	s.mu.Lock()
	s.snap.EmailVerified = true
	snap := s.snap
	s.mu.Unlock()
	s.notify(snap)
}

// Token mints a bearer token for the current identity.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.provider.Token(ctx)
}

func (s *Store) SignInWithPassword(ctx context.Context, email, password string) error {
	return s.provider.SignInWithPassword(ctx, email, password)
}

func (s *Store) SignInWithGoogle(ctx context.Context, googleIDToken string) error {
	return s.provider.SignInWithGoogle(ctx, googleIDToken)
}

func (s *Store) SendVerificationEmail(ctx context.Context) error {
	return s.provider.SendVerificationEmail(ctx)
}

func (s *Store) SendPasswordReset(ctx context.Context, email string) error {
	return s.provider.SendPasswordReset(ctx, email)
}

// LinkPasswordCredential attaches a password to a passwordless account. The
// address was already proven by the magic link, so the session treats it as
// verified immediately.
func (s *Store) LinkPasswordCredential(ctx context.Context, email, password string) error {
	if err := s.provider.LinkPasswordCredential(ctx, email, password); err != nil {
		return err
	}
	s.markEmailVerified()
	return nil
}

func (s *Store) SetPassword(ctx context.Context, newPassword string) error {
	return s.provider.SetPassword(ctx, newPassword)
}

func (s *Store) SignOut(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}
