// Package session holds process-wide authentication state.
//
// A single [Manager] owns the whole auth record: every mutation replaces the
// record atomically and is fanned out to subscribers, so UI code never reads
// partially-updated state. The manager also implements api.Authority, giving
// the transport chain its bearer token and its 401 recovery path.
//
// Token validation is single-flight: while one validation is in flight every
// concurrent caller waits on that outcome instead of issuing its own request.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// State is the full authentication record.
//
// Invariant: Authenticated implies User != nil and Token != "".
type State struct {
	Authenticated bool
	User          *models.User
	Token         string
	Loading       bool
	Err           string
}

// apiDoer is the slice of the API client the manager needs.
type apiDoer interface {
	PostJSON(ctx context.Context, path string, in, out any) error
}

// Manager is the process-wide session state holder.
type Manager struct {
	client apiDoer
	creds  *store.CredStore
	logger *log.Logger

	mu      sync.RWMutex
	state   State
	subs    map[int]chan State
	nextSub int

	validate singleflight.Group
}

// NewManager creates a Manager and hydrates it from persisted credentials.
//
// An expired or partial persisted record is discarded so the authenticated
// invariant holds from the first read.
func NewManager(client apiDoer, creds *store.CredStore, logger *log.Logger) *Manager {
	m := &Manager{
		client: client,
		creds:  creds,
		logger: logger,
		subs:   make(map[int]chan State),
	}

	token, tokenErr := creds.LoadToken()
	user, userErr := creds.LoadUser()
	if tokenErr == nil && userErr == nil {
		m.state = State{Authenticated: true, User: user, Token: token.AccessToken}
	} else if tokenErr == nil || userErr == nil {
		// Half a credential is as good as none.
		creds.Clear()
	}

	return m
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyState(m.state)
}

// IsAuthenticated reports the cached authentication flag without any network round-trip.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Authenticated
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.User == nil {
		return nil
	}
	u := *m.state.User
	return &u
}

// Subscribe registers a listener for state changes.
//
// Publishes never block: a listener that falls behind misses intermediate
// states, not the final one it will read on the next receive. The returned
// function cancels the subscription.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 8)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// publish replaces the whole state record and fans it out to subscribers.
func (m *Manager) publish(state State) {
	m.mu.Lock()
	m.state = state
	subs := make([]chan State, 0, len(m.subs))
	for _, ch := range m.subs {
		subs = append(subs, ch)
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- copyState(state):
		default:
		}
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login authenticates against the backend.
//
// On success the credentials are persisted with the fixed 1-day expiry and the
// authenticated state is published. On failure the error state is published
// and the error returned; the session stays unauthenticated either way until
// success.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.publish(State{Loading: true})

	var resp loginResponse
	err := m.client.PostJSON(ctx, api.AuthLogin(), loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		m.publish(State{Err: api.ExtractErr(err)})
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if resp.Token == "" || resp.User == nil {
		m.publish(State{Err: "login response missing credentials"})
		return fmt.Errorf("%w: login response missing credentials", shared.ErrAuthFailed)
	}
	if err := resp.User.Validate(); err != nil {
		m.publish(State{Err: err.Error()})
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	m.persist(resp.Token, resp.User)
	m.publish(State{Authenticated: true, User: resp.User, Token: resp.Token})
	return nil
}

// Logout terminates the server-side session and clears local credentials.
//
// The local clear happens regardless of the server outcome, so logout is
// idempotent and fail-safe.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.PostJSON(ctx, api.AuthLogout(), nil, nil); err != nil {
		m.logger.Warnf("server-side logout failed: %v", err)
	}

	m.ForceLogout()
	return nil
}

// ForceLogout synchronously clears local credentials and publishes the
// unauthenticated state. Safe to call repeatedly and when already logged out.
func (m *Manager) ForceLogout() {
	if err := m.creds.Clear(); err != nil {
		m.logger.Warnf("failed to clear persisted credentials: %v", err)
	}
	m.publish(State{})
}

// Adopt installs an externally obtained bearer token and validates it against
// the backend. The user record comes back from the validation round-trip; the
// token is only persisted once validation succeeds.
func (m *Manager) Adopt(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidCredentials)
	}

	m.mu.Lock()
	m.state = State{Token: token}
	m.mu.Unlock()

	return m.ValidateToken(ctx)
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid bool         `json:"valid"`
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// ValidateToken re-checks the cached token against the backend.
//
// Invalid or absent tokens clear the session. Concurrent callers share a
// single in-flight validation; each gets the same outcome.
func (m *Manager) ValidateToken(ctx context.Context) error {
	_, err := m.Revalidate(ctx)
	return err
}

// Revalidate implements api.Authority. It returns the (possibly rotated)
// token after a successful validation.
func (m *Manager) Revalidate(ctx context.Context) (string, error) {
	v, err, _ := m.validate.Do("validate", func() (any, error) {
		return m.revalidateOnce(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) revalidateOnce(ctx context.Context) (string, error) {
	m.mu.RLock()
	token := m.state.Token
	user := m.state.User
	m.mu.RUnlock()

	if token == "" {
		m.publish(State{})
		return "", shared.ErrNotAuthenticated
	}

	var resp validateResponse
	err := m.client.PostJSON(ctx, api.AuthValidate(), validateRequest{Token: token}, &resp)
	if err != nil || !resp.Valid {
		m.creds.Clear()
		m.publish(State{})
		if err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrValidateFailed, err)
		}
		return "", shared.ErrValidateFailed
	}

	if resp.Token != "" {
		token = resp.Token
	}
	if resp.User != nil && resp.User.Validate() == nil {
		user = resp.User
	}

	m.persist(token, user)
	m.publish(State{Authenticated: true, User: user, Token: token})
	return token, nil
}

// AccessToken implements api.Authority.
func (m *Manager) AccessToken() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token, m.state.Token != ""
}

// persist writes credentials with the fixed lifetime; persistence failures are
// logged, not fatal, since the in-memory session is still usable.
func (m *Manager) persist(token string, user *models.User) {
	if err := m.creds.SaveToken(&oauth2.Token{AccessToken: token}); err != nil {
		m.logger.Warnf("failed to persist token: %v", err)
	}
	if user != nil {
		if err := m.creds.SaveUser(user); err != nil {
			m.logger.Warnf("failed to persist user: %v", err)
		}
	}
}

func copyState(s State) State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
