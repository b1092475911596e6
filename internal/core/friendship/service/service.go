package friendshipapp

import (
	"context"
	"time"

	"socialgraph/internal/core/apperr"
	friendshipEntity "socialgraph/internal/core/friendship"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/user"
	friendshipPort "socialgraph/internal/ports/friendship"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FriendshipService struct {
	FriendshipRepository friendshipPort.FriendshipRepository
	Identity             userPort.IdentityLookup
	Logger               *zap.Logger
	Now                  func() time.Time
}

func NewFriendshipService(repo friendshipPort.FriendshipRepository, identity userPort.IdentityLookup, logger *zap.Logger) *FriendshipService {
	return &FriendshipService{
		FriendshipRepository: repo,
		Identity:             identity,
		Logger:               logger,
		Now:                  func() time.Time { return time.Now().UTC() },
	}
}

// Request creates a PENDING request. A second request for the same ordered pair
// loses on the unique index and fails with DuplicatePair.
func (s *FriendshipService) Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (*friendshipEntity.Friendship, error) {
	if requesterID == addresseeID {
		return nil, apperr.Validation("cannot send a friend request to yourself")
	}
	if err := userPort.EnsureExists(ctx, s.Identity, requesterID, addresseeID); err != nil {
		return nil, err
	}

	f, err := s.FriendshipRepository.Create(ctx, friendshipEntity.New(requesterID, addresseeID, s.Now()))
	if err != nil {
		s.Logger.Warn("friend request rejected",
			zap.String("requesterID", requesterID.String()),
			zap.String("addresseeID", addresseeID.String()),
			zap.Error(err))
		return nil, err
	}
	s.Logger.Info("friend request created", zap.String("friendshipID", f.ID.String()))
	return f, nil
}

// Respond moves a request to ACCEPTED or REJECTED.
func (s *FriendshipService) Respond(ctx context.Context, friendshipID uuid.UUID, decision friendshipEntity.Status) (*friendshipEntity.Friendship, error) {
	if decision != friendshipEntity.StatusAccepted && decision != friendshipEntity.StatusRejected {
		return nil, apperr.Validation("decision must be ACCEPTED or REJECTED")
	}

	f, err := s.FriendshipRepository.FindByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	at := s.Now()
	n, err := s.FriendshipRepository.UpdateStatus(ctx, friendshipID, decision, at)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// deleted between read and write
		return nil, apperr.NotFound("Friendship", friendshipID)
	}

	f.Status = decision
	f.UpdatedAt = at
	s.Logger.Info("friend request answered",
		zap.String("friendshipID", friendshipID.String()),
		zap.String("status", string(decision)))
	return f, nil
}

func (s *FriendshipService) Get(ctx context.Context, friendshipID uuid.UUID) (*friendshipEntity.Friendship, error) {
	return s.FriendshipRepository.FindByID(ctx, friendshipID)
}

// FindByPair is an exact ordered lookup; it returns nil when no row exists.
func (s *FriendshipService) FindByPair(ctx context.Context, requesterID, addresseeID uuid.UUID) (*friendshipEntity.Friendship, error) {
	return s.FriendshipRepository.FindByPair(ctx, requesterID, addresseeID)
}

func (s *FriendshipService) ListByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status friendshipEntity.Status) ([]*friendshipEntity.Friendship, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown friendship status " + string(status))
	}
	return s.FriendshipRepository.ListByRequesterAndStatus(ctx, requesterID, status)
}

func (s *FriendshipService) ListByAddresseeAndStatus(ctx context.Context, addresseeID uuid.UUID, status friendshipEntity.Status) ([]*friendshipEntity.Friendship, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown friendship status " + string(status))
	}
	return s.FriendshipRepository.ListByAddresseeAndStatus(ctx, addresseeID, status)
}

func (s *FriendshipService) ListSentByStatus(ctx context.Context, requesterID uuid.UUID, status friendshipEntity.Status, req page.Request) (page.Page[*friendshipEntity.Friendship], error) {
	if !status.Valid() {
		return page.Page[*friendshipEntity.Friendship]{}, apperr.Validation("unknown friendship status " + string(status))
	}
	return s.FriendshipRepository.PageByRequesterAndStatus(ctx, requesterID, status, req)
}

func (s *FriendshipService) ListReceivedByStatus(ctx context.Context, addresseeID uuid.UUID, status friendshipEntity.Status, req page.Request) (page.Page[*friendshipEntity.Friendship], error) {
	if !status.Valid() {
		return page.Page[*friendshipEntity.Friendship]{}, apperr.Validation("unknown friendship status " + string(status))
	}
	return s.FriendshipRepository.PageByAddresseeAndStatus(ctx, addresseeID, status, req)
}

// AreFriends is symmetric in its arguments.
func (s *FriendshipService) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	return s.FriendshipRepository.AreFriends(ctx, userA, userB)
}

func (s *FriendshipService) PendingRequesters(ctx context.Context, userID uuid.UUID) ([]user.Ref, error) {
	if err := userPort.EnsureExists(ctx, s.Identity, userID); err != nil {
		return nil, err
	}
	return s.FriendshipRepository.PendingRequesters(ctx, userID)
}

func (s *FriendshipService) ListFriends(ctx context.Context, userID uuid.UUID) ([]user.Ref, error) {
	if err := userPort.EnsureExists(ctx, s.Identity, userID); err != nil {
		return nil, err
	}
	return s.FriendshipRepository.Friends(ctx, userID)
}

// DeleteBetween removes the relationship in either direction. Nothing to
// delete is not an error.
func (s *FriendshipService) DeleteBetween(ctx context.Context, userA, userB uuid.UUID) error {
	n, err := s.FriendshipRepository.DeleteBetween(ctx, userA, userB)
	if err != nil {
		return err
	}
	s.Logger.Info("friendship removed",
		zap.String("userA", userA.String()),
		zap.String("userB", userB.String()),
		zap.Int64("rows", n))
	return nil
}
