// Package session orchestrates the authentication lifecycle: register, login,
// logout and profile operations, all issued through the gated transport. The
// manager publishes the current identity from the credential store; when the
// transport evicts the store on 401/403, the manager observes an
// unauthenticated session without performing a second eviction.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/shopsync/internal/client/credentials"
	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/transport"
	"github.com/dmitrijs2005/shopsync/internal/logging"
)

var (
	// ErrDuplicateAccount: registration hit an email that already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials: login rejected the email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterForm is the registration payload. FirstName and LastName are
// optional.
type RegisterForm struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// LoginForm carries login credentials.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the server's answer to register and login.
type authResponse struct {
	Token string               `json:"token"`
	User  *models.UserIdentity `json:"user"`
}

type userResponse struct {
	User *models.UserIdentity `json:"user"`
}

// Manager drives the session operations and tracks a state machine per
// operation.
type Manager struct {
	api    transport.Requester
	creds  *credentials.Store
	logger logging.Logger

	mu     sync.Mutex
	states map[Operation]OpState
}

func NewManager(api transport.Requester, creds *credentials.Store, logger logging.Logger) *Manager {
	return &Manager{
		api:    api,
		creds:  creds,
		logger: logger.With("component", "session"),
		states: make(map[Operation]OpState),
	}
}

// State returns the current lifecycle state of the named operation.
func (m *Manager) State(op Operation) OpState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[op]
}

func (m *Manager) setState(op Operation, s OpState) {
	m.mu.Lock()
	m.states[op] = s
	m.mu.Unlock()
}

// Identity returns the currently authenticated identity, or nil.
func (m *Manager) Identity() *models.UserIdentity {
	return m.creds.Get().Identity
}

// Authenticated reports whether a session is currently established. The
// credential store may have been evicted by the transport at any time, so
// callers should treat this as a point-in-time observation.
func (m *Manager) Authenticated() bool {
	return m.creds.Get().Authenticated()
}

// Register creates a new account and establishes a session. A 409 from the
// server surfaces as ErrDuplicateAccount.
func (m *Manager) Register(ctx context.Context, form RegisterForm) (*models.UserIdentity, error) {
	m.setState(OpRegister, StatePending)

	var resp authResponse
	if err := m.api.Request(ctx, http.MethodPost, "/register", form, &resp); err != nil {
		m.setState(OpRegister, StateFailed)
		var remote *transport.RemoteError
		if errors.As(err, &remote) && remote.Status == http.StatusConflict {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, remote.Message())
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if resp.Token == "" || resp.User == nil {
		m.setState(OpRegister, StateFailed)
		return nil, errors.New("registration response missing token or user")
	}

	m.creds.Set(ctx, resp.Token, resp.User)
	m.setState(OpRegister, StateSucceeded)
	m.logger.Info(ctx, "registered", "user", resp.User.ID)
	return resp.User, nil
}

// Login authenticates and establishes a session. A 401 surfaces as
// ErrInvalidCredentials; the transport has already ensured no stale
// credential survives.
func (m *Manager) Login(ctx context.Context, form LoginForm) (*models.UserIdentity, error) {
	m.setState(OpLogin, StatePending)

	var resp authResponse
	if err := m.api.Request(ctx, http.MethodPost, "/login", form, &resp); err != nil {
		m.setState(OpLogin, StateFailed)
		if errors.Is(err, transport.ErrUnauthenticated) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if resp.Token == "" || resp.User == nil {
		m.setState(OpLogin, StateFailed)
		return nil, errors.New("login response missing token or user")
	}

	m.creds.Set(ctx, resp.Token, resp.User)
	m.setState(OpLogin, StateSucceeded)
	m.logger.Info(ctx, "logged in", "user", resp.User.ID)
	return resp.User, nil
}

// FetchProfile loads the profile for userID. The server only permits fetching
// the caller's own profile; a mismatch fails with transport.ErrForbidden and
// the session is already cleared by the time the error surfaces.
func (m *Manager) FetchProfile(ctx context.Context, userID string) (*models.UserIdentity, error) {
	m.setState(OpFetchProfile, StatePending)

	var resp userResponse
	if err := m.api.Request(ctx, http.MethodGet, "/users/"+userID, nil, &resp); err != nil {
		m.setState(OpFetchProfile, StateFailed)
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	if resp.User == nil {
		m.setState(OpFetchProfile, StateFailed)
		return nil, errors.New("profile response missing user")
	}

	m.refreshIdentity(ctx, resp.User)
	m.setState(OpFetchProfile, StateSucceeded)
	return resp.User, nil
}

// UpdateProfile sends the whitelisted mutable fields for userID and replaces
// the stored identity with the server's view. Email, role and createdAt are
// not part of the patch type and therefore cannot be overwritten.
func (m *Manager) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserIdentity, error) {
	m.setState(OpUpdateProfile, StatePending)

	var resp userResponse
	if err := m.api.Request(ctx, http.MethodPut, "/users/"+userID, patch, &resp); err != nil {
		m.setState(OpUpdateProfile, StateFailed)
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	if resp.User == nil {
		m.setState(OpUpdateProfile, StateFailed)
		return nil, errors.New("profile response missing user")
	}

	m.refreshIdentity(ctx, resp.User)
	m.setState(OpUpdateProfile, StateSucceeded)
	m.logger.Info(ctx, "profile updated", "user", resp.User.ID)
	return resp.User, nil
}

// refreshIdentity replaces the stored identity wholesale, keeping the current
// token. Skipped when the session was evicted while the request was in
// flight.
func (m *Manager) refreshIdentity(ctx context.Context, identity *models.UserIdentity) {
	sess := m.creds.Get()
	if sess.Token == "" {
		return
	}
	m.creds.Set(ctx, sess.Token, identity)
}

// Logout clears the session. Purely local: no network call is made and
// clearing an already-empty store is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.creds.Clear(ctx)
	m.mu.Lock()
	m.states = make(map[Operation]OpState)
	m.mu.Unlock()
	m.logger.Info(ctx, "logged out")
}
