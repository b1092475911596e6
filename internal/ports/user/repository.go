package user

import (
	"context"
	"errors"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository is the identity store used by the identity adapter.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, keyword string, req page.Request) (page.Page[*user.User], error)
	Deactivate(ctx context.Context, id uuid.UUID) (int64, error)
}

// IdentityLookup is the only view of identities the graph, content and messaging cores need.
type IdentityLookup interface {
	Resolve(ctx context.Context, id uuid.UUID) (*user.Ref, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ErrInvalidCredentials is returned by login for any unknown user, wrong
// password or deactivated account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DTOs returned by the user use cases.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// EnsureExists fails with NotFound for the first id the lookup does not know.
func EnsureExists(ctx context.Context, lookup IdentityLookup, ids ...uuid.UUID) error {
	for _, id := range ids {
		ok, err := lookup.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("User", id)
		}
	}
	return nil
}
