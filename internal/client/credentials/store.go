// Package credentials implements the client's credential store: the single
// holder of the session token and the authenticated identity. The store is
// mirrored to persisted key-value storage so a restart resumes the session
// without a new login.
package credentials

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/shopsync/internal/logging"
)

// Persisted storage keys. The identity is stored as JSON.
const (
	keyToken    = "auth_token"
	keyIdentity = "current_user"
)

// Session is the current authentication state. Identity present implies
// Token present.
type Session struct {
	Token    string
	Identity *models.UserIdentity
}

// Authenticated reports whether the session carries a usable identity.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Identity != nil
}

// Store holds the in-memory session and mirrors every change to the metadata
// repository. In-memory state is the source of truth; persistence failures
// are logged and do not fail the caller.
type Store struct {
	mu     sync.Mutex
	sess   Session
	repo   metadata.Repository
	logger logging.Logger
}

func NewStore(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "credentials")}
}

// Load restores the session from persisted storage, typically once at
// startup. A token without a readable identity restores as unauthenticated
// and the stale keys are dropped.
func (s *Store) Load(ctx context.Context) error {
	token, err := s.repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	if len(token) == 0 {
		return nil
	}

	raw, err := s.repo.Get(ctx, keyIdentity)
	if err != nil {
		return err
	}

	var identity models.UserIdentity
	if len(raw) == 0 || json.Unmarshal(raw, &identity) != nil {
		s.logger.Warn(ctx, "persisted identity unreadable, dropping session")
		_ = s.repo.Delete(ctx, keyToken)
		_ = s.repo.Delete(ctx, keyIdentity)
		return nil
	}

	s.mu.Lock()
	s.sess = Session{Token: string(token), Identity: &identity}
	s.mu.Unlock()
	return nil
}

// Set installs a new session after a successful authentication operation.
func (s *Store) Set(ctx context.Context, token string, identity *models.UserIdentity) {
	s.mu.Lock()
	s.sess = Session{Token: token, Identity: identity}
	s.mu.Unlock()

	if err := s.repo.Set(ctx, keyToken, []byte(token)); err != nil {
		s.logger.Error(ctx, "failed to persist token", "error", err)
		return
	}
	raw, err := json.Marshal(identity)
	if err == nil {
		err = s.repo.Set(ctx, keyIdentity, raw)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to persist identity", "error", err)
	}
}

// Get returns the current session. The identity pointer is shared; callers
// must not mutate it.
func (s *Store) Get() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// Clear evicts the session. Idempotent: clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.sess = Session{}
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, keyToken); err != nil {
		s.logger.Error(ctx, "failed to delete persisted token", "error", err)
	}
	if err := s.repo.Delete(ctx, keyIdentity); err != nil {
		s.logger.Error(ctx, "failed to delete persisted identity", "error", err)
	}
}
