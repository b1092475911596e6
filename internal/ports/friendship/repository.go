package friendship

import (
	"context"
	"time"

	"socialgraph/internal/core/friendship"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// FriendshipRepository stores directed friend-request edges.
type FriendshipRepository interface {
	Create(ctx context.Context, f *friendship.Friendship) (*friendship.Friendship, error)
	FindByID(ctx context.Context, id uuid.UUID) (*friendship.Friendship, error)
	// FindByPair returns nil, nil when no row exists for the ordered pair.
	FindByPair(ctx context.Context, requesterID, addresseeID uuid.UUID) (*friendship.Friendship, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status friendship.Status, at time.Time) (int64, error)
	ListByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status friendship.Status) ([]*friendship.Friendship, error)
	ListByAddresseeAndStatus(ctx context.Context, addresseeID uuid.UUID, status friendship.Status) ([]*friendship.Friendship, error)
	PageByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status friendship.Status, req page.Request) (page.Page[*friendship.Friendship], error)
	PageByAddresseeAndStatus(ctx context.Context, addresseeID uuid.UUID, status friendship.Status, req page.Request) (page.Page[*friendship.Friendship], error)
	AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	PendingRequesters(ctx context.Context, addresseeID uuid.UUID) ([]user.Ref, error)
	Friends(ctx context.Context, userID uuid.UUID) ([]user.Ref, error)
	DeleteBetween(ctx context.Context, userA, userB uuid.UUID) (int64, error)
}
