// Package services contains the application services behind the HTTP API:
// account management, orders and user collections.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shopsync/internal/common"
	"github.com/dmitrijs2005/shopsync/internal/server/auth"
	"github.com/dmitrijs2005/shopsync/internal/server/models"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult couples a freshly minted token with the authenticated user.
type AuthResult struct {
	Token string
	User  *models.User
}

// UsersService implements registration, login and profile management.
type UsersService struct {
	repo          users.Repository
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUsersService(repo users.Repository, jwtSecret []byte, tokenValidity time.Duration) *UsersService {
	return &UsersService{repo: repo, jwtSecret: jwtSecret, tokenValidity: tokenValidity}
}

// Register creates an account with a bcrypt-hashed password and returns a
// session token. A taken email fails with common.ErrDuplicateEmail.
func (s *UsersService) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, common.ErrInternal
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UsersService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	return s.issueToken(user)
}

func (s *UsersService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}

// GetProfile loads the account for id. The HTTP layer has already verified
// that id belongs to the caller.
func (s *UsersService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the whitelisted profile fields and returns the
// updated account. Email, role and creation time are not touched.
func (s *UsersService) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	return s.repo.UpdateProfile(ctx, id, update)
}
