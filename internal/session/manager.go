// Package session owns the authenticated/unauthenticated lifecycle of the
// CLI: token acquisition, secure persistence, and propagation to outgoing
// requests. All credential mutation is funneled through one Manager so that
// a slow login can never race a logout into an inconsistent state.
package session

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
	"github.com/classconnect-grupo3/classconnect-cli/internal/keystore"
	"github.com/classconnect-grupo3/classconnect-cli/internal/log"
)

// State is the position in the session lifecycle
type State int

const (
	// StateUnauthenticated is the initial state, and the state after logout
	// or token invalidation
	StateUnauthenticated State = iota
	// StateAuthenticating is the transient state during a login or register
	// network call
	StateAuthenticating
	// StateAuthenticated means a bearer token is held and attached to
	// outgoing requests
	StateAuthenticated
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is an immutable snapshot of the current session. Consumers receive
// copies; only the Manager mutates the underlying state.
//
// Invariant: Authenticated == (Token != "") for every snapshot handed out.
type Session struct {
	State         State
	Token         string
	Authenticated bool
	User          *api.UserProfile
}

// tokenKey is the keystore key holding the bearer token
const tokenKey = "session_token"

// Manager owns the session state machine.
//
// Operations that mutate credentials (Login, Register, Logout, Recover,
// Invalidate) are serialized through opMu, so their network calls and
// keystore writes cannot interleave. Snapshot reads take only the state
// mutex and are never blocked by an in-flight operation.
type Manager struct {
	client *api.Client
	store  *keystore.Store
	logger *log.Logger

	opMu sync.Mutex

	mu          sync.RWMutex
	current     Session
	subscribers map[int]chan Session
	nextSubID   int
}

// NewManager creates a session manager and installs itself as the client's
// token source, so every request reads the current token at issue time.
func NewManager(client *api.Client, store *keystore.Store, logger *log.Logger) *Manager {
	m := &Manager{
		client:      client,
		store:       store,
		logger:      logger,
		current:     Session{State: StateUnauthenticated},
		subscribers: make(map[int]chan Session),
	}
	client.WithTokenSource(m.Token)
	return m
}

// Snapshot returns the current session
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token returns the current bearer token, or the empty string when the
// session is not authenticated. Used as the api.Client token source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}

// Subscribe registers for session change broadcasts. Every state transition
// is delivered as a snapshot on the returned channel; slow consumers miss
// intermediate transitions rather than blocking the manager. The returned
// cancel function must be called when the consumer goes away.
func (m *Manager) Subscribe() (<-chan Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++

	ch := make(chan Session, 1)
	m.subscribers[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(sub)
		}
	}

	return ch, cancel
}

// setSession replaces the current snapshot and broadcasts it.
func (m *Manager) setSession(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = s
	for _, ch := range m.subscribers {
		select {
		case ch <- s:
		default:
			// Replace the stale pending snapshot with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

// Login authenticates with email and password.
//
// On success the token is persisted to the keystore and the session becomes
// Authenticated; the user profile is then fetched best-effort. A keystore
// write failure aborts the operation and leaves the session unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := requireFields(map[string]string{
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	return m.login(ctx, email, password)
}

// login performs the authentication exchange. Callers hold opMu.
func (m *Manager) login(ctx context.Context, email, password string) error {
	m.setSession(Session{State: StateAuthenticating})

	token, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.setSession(Session{State: StateUnauthenticated})

		var serverErr *api.ServerError
		if stderrors.As(err, &serverErr) && serverErr.IsUnauthorized() {
			return errors.NewCredentialError(err)
		}
		return err
	}

	if err := m.store.Set(tokenKey, token); err != nil {
		m.setSession(Session{State: StateUnauthenticated})
		return err
	}

	m.setSession(Session{
		State:         StateAuthenticated,
		Token:         token,
		Authenticated: true,
	})

	m.logger.Debug("session authenticated", "email", email)

	// Profile fetch is best-effort; the session is already usable.
	if user, err := m.client.CurrentUser(ctx); err == nil {
		m.setSession(Session{
			State:         StateAuthenticated,
			Token:         token,
			Authenticated: true,
			User:          user,
		})
	} else {
		m.logger.WithError(err).Debug("could not fetch user profile")
	}

	return nil
}

// Register creates a new account, then logs in with the same credentials.
// The register response carries no usable token, so the explicit login is
// always performed.
func (m *Manager) Register(ctx context.Context, name, surname, email, password string) error {
	if err := requireFields(map[string]string{
		"name":     name,
		"surname":  surname,
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.client.Register(ctx, api.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Surname:  surname,
	}); err != nil {
		return err
	}

	if err := m.login(ctx, email, password); err != nil {
		return errors.Wrap(errors.ErrCodeAuthRegisterFailed,
			"registration succeeded but login failed", err).
			WithSuggestion("Run 'classconnect auth login' to authenticate")
	}

	return nil
}

// Logout clears the session. It is local-only: no server call is made, and
// it succeeds even when the remote session is already invalid. The in-memory
// state is always cleared; a keystore failure is still reported so the user
// knows a token file may remain.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	err := m.store.Delete(tokenKey)

	m.setSession(Session{State: StateUnauthenticated})
	m.logger.Debug("session cleared")

	return err
}

// Invalidate clears the session after a rejected token, exactly like Logout.
func (m *Manager) Invalidate() error {
	return m.Logout(context.Background())
}

// Recover attempts to restore a persisted session at startup.
//
// An absent token means "no session" and leaves the manager unauthenticated
// without error. A present token is trusted optimistically: the session
// becomes Authenticated without server-side validation. A true storage
// failure propagates.
func (m *Manager) Recover(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	token, err := m.store.Get(tokenKey)
	if err != nil {
		if stderrors.Is(err, keystore.ErrNotFound) {
			return nil
		}
		return err
	}

	m.setSession(Session{
		State:         StateAuthenticated,
		Token:         token,
		Authenticated: true,
	})

	m.logger.Debug("session recovered from token store")

	return nil
}

// ForgotPassword requests a password-reset email
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if err := requireFields(map[string]string{"email": email}); err != nil {
		return err
	}
	return m.client.ForgotPassword(ctx, email)
}

// requireFields rejects empty or blank required fields before any network
// call is issued.
func requireFields(fields map[string]string) error {
	for _, name := range []string{"name", "surname", "email", "password"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			return errors.NewFieldRequiredError(name)
		}
	}
	return nil
}
