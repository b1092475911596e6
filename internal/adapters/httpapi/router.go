package httpapi

import (
	"context"
	"time"

	"socialgraph/internal/adapters/httpapi/middleware"
	friendshipEntity "socialgraph/internal/core/friendship"
	messageEntity "socialgraph/internal/core/message"
	"socialgraph/internal/core/page"
	postEntity "socialgraph/internal/core/post"
	subscriptionEntity "socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"
	subscriptionPort "socialgraph/internal/ports/subscription"
	userPort "socialgraph/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Inbound ports. The core services satisfy them; handlers depend only on these.

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error)
	Search(ctx context.Context, keyword string, req page.Request) (page.Page[user.Ref], error)
	Resolve(ctx context.Context, id uuid.UUID) (*user.Ref, error)
}

type SubscriptionUseCase interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) (*subscriptionEntity.Subscription, error)
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	ListFollowing(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error)
	ListFollowers(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error)
	FollowStats(ctx context.Context, userID uuid.UUID) (*subscriptionPort.FollowStatsDTO, error)
}

type FriendshipUseCase interface {
	Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (*friendshipEntity.Friendship, error)
	Respond(ctx context.Context, friendshipID uuid.UUID, decision friendshipEntity.Status) (*friendshipEntity.Friendship, error)
	Get(ctx context.Context, friendshipID uuid.UUID) (*friendshipEntity.Friendship, error)
	DeleteBetween(ctx context.Context, userA, userB uuid.UUID) error
	PendingRequesters(ctx context.Context, userID uuid.UUID) ([]user.Ref, error)
	ListSentByStatus(ctx context.Context, requesterID uuid.UUID, status friendshipEntity.Status, req page.Request) (page.Page[*friendshipEntity.Friendship], error)
	ListReceivedByStatus(ctx context.Context, addresseeID uuid.UUID, status friendshipEntity.Status, req page.Request) (page.Page[*friendshipEntity.Friendship], error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]user.Ref, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, title, content string) (*postEntity.Post, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*postEntity.Post, error)
	SoftDelete(ctx context.Context, postID uuid.UUID) error
	ListByAuthor(ctx context.Context, authorID uuid.UUID, req page.Request) (page.Page[*postEntity.Post], error)
	ListAll(ctx context.Context, req page.Request) (page.Page[*postEntity.Post], error)
	FindInDateRange(ctx context.Context, start, end time.Time, req page.Request) (page.Page[*postEntity.Post], error)
	AddImage(ctx context.Context, postID uuid.UUID, url, fileName string, fileSize *int64) (*postEntity.Image, error)
	GetImage(ctx context.Context, imageID uuid.UUID) (*postEntity.Image, error)
	ListImages(ctx context.Context, postID uuid.UUID) ([]*postEntity.Image, error)
	RemoveImage(ctx context.Context, imageID uuid.UUID) error
}

type FeedUseCase interface {
	GetFeed(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[*postEntity.Post], error)
}

type MessageUseCase interface {
	Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*messageEntity.Message, error)
	Get(ctx context.Context, messageID uuid.UUID) (*messageEntity.Message, error)
	GetConversation(ctx context.Context, userA, userB uuid.UUID, req page.Request) (page.Page[*messageEntity.Message], error)
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error)
	ListAllUnread(ctx context.Context, receiverID uuid.UUID) ([]*messageEntity.Message, error)
	MarkReadBySenderReceiver(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error)
	MarkReadByIDs(ctx context.Context, messageIDs []uuid.UUID) (int64, error)
}

// UseCases bundles everything the router wires.
type UseCases struct {
	User         UserUseCase
	Subscription SubscriptionUseCase
	Friendship   FriendshipUseCase
	Post         PostUseCase
	Feed         FeedUseCase
	Message      MessageUseCase
}

// SetupRoutes only routes; use cases are injected from outside.
func SetupRoutes(uc UseCases, jwtSecret []byte, logger *zap.Logger) *gin.Engine {
	r := gin.Default()
	r.Use(ErrorLogger(logger))

	users := NewUserController(uc.User)
	subs := NewSubscriptionController(uc.Subscription)
	friends := NewFriendshipController(uc.Friendship)
	posts := NewPostController(uc.Post)
	feed := NewFeedController(uc.Feed)
	messages := NewMessageController(uc.Message)

	r.POST("/register", users.RegisterUser)
	r.POST("/login", users.LoginUser)

	auth := r.Group("/", middleware.JWTAuthMiddleware(jwtSecret, uc.User))

	auth.GET("/users/search", users.Search)

	auth.POST("/follow", subs.Follow)
	auth.POST("/unfollow", subs.Unfollow)
	auth.GET("/following", subs.ListFollowing)
	auth.GET("/followers", subs.ListFollowers)
	auth.GET("/users/:id/follow-stats", subs.FollowStats)

	auth.POST("/friendships", friends.Request)
	auth.POST("/friendships/:id/respond", friends.Respond)
	auth.DELETE("/friendships/:userId", friends.Delete)
	auth.GET("/friendships/pending", friends.Pending)
	auth.GET("/friendships/sent", friends.Sent)
	auth.GET("/friendships/received", friends.Received)
	auth.GET("/friends/:userId", friends.ListFriends)

	auth.POST("/post", posts.CreatePost)
	auth.GET("/post/:id", posts.GetPost)
	auth.DELETE("/post/:id", posts.DeletePost)
	auth.GET("/posts", posts.ListAll)
	auth.GET("/users/:id/posts", posts.ListByAuthor)
	auth.POST("/post/:id/images", posts.AddImage)
	auth.GET("/post/:id/images", posts.ListImages)
	auth.DELETE("/images/:id", posts.RemoveImage)

	auth.GET("/timeline", feed.GetFeed)

	auth.POST("/messages", messages.Send)
	auth.GET("/messages/conversation/:userId", messages.Conversation)
	auth.GET("/messages/unread", messages.ListUnread)
	auth.GET("/messages/unread/count", messages.CountUnread)
	auth.POST("/messages/read", messages.MarkRead)

	return r
}
