package users

import (
	"context"

	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

// Repository is the account store.
//
// Create fails with common.ErrDuplicateEmail when the email is taken. Lookups
// fail with common.ErrNotFound. UpdateProfile keeps the current value for any
// empty field, mirroring the API's partial-update semantics.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
}
