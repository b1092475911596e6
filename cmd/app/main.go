package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	dbadapter "socialgraph/internal/adapters/database"
	"socialgraph/internal/adapters/httpapi"
	redisadapter "socialgraph/internal/adapters/redis"
	"socialgraph/internal/config"
	feedapp "socialgraph/internal/core/feed/service"
	friendshipapp "socialgraph/internal/core/friendship/service"
	messageapp "socialgraph/internal/core/message/service"
	postapp "socialgraph/internal/core/post/service"
	subscriptionapp "socialgraph/internal/core/subscription/service"
	userapp "socialgraph/internal/core/user/service"
	"socialgraph/internal/ports/cache"
	"socialgraph/internal/workers"

	"go.uber.org/zap"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.InitLogger(settings.Env)
	defer func() { _ = logger.Sync() }()

	db, err := config.InitDB(settings.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := dbadapter.Migrate(db); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	var counters cache.Counter = cache.Noop{}
	if client := config.InitRedis(settings, logger); client != nil {
		counters = redisadapter.NewCounterRepositoryRedis(client, settings.CounterTTL, logger)
	}

	defer closeResources(logger)

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	subscriptionRepo := dbadapter.NewSubscriptionRepositoryDatabase(db)
	friendshipRepo := dbadapter.NewFriendshipRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	imageRepo := dbadapter.NewImageRepositoryDatabase(db)
	feedRepo := dbadapter.NewFeedRepositoryDatabase(db)
	messageRepo := dbadapter.NewMessageRepositoryDatabase(db)

	userSvc := userapp.NewUserService(userRepo, []byte(settings.JWTSecret), logger)
	postSvc := postapp.NewPostService(postRepo, imageRepo, userSvc, logger)

	r := httpapi.SetupRoutes(httpapi.UseCases{
		User:         userSvc,
		Subscription: subscriptionapp.NewSubscriptionService(subscriptionRepo, userSvc, counters, logger),
		Friendship:   friendshipapp.NewFriendshipService(friendshipRepo, userSvc, logger),
		Post:         postSvc,
		Feed:         feedapp.NewFeedService(feedRepo, userSvc),
		Message:      messageapp.NewMessageService(messageRepo, userSvc, counters, logger),
	}, []byte(settings.JWTSecret), logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if settings.PurgeAfter > 0 {
		purger := workers.NewPurgeWorker(postSvc, settings.PurgeAfter, settings.PurgeInterval, settings.BatchSize, logger)
		go purger.Run(ctx)
	}

	logger.Info("App is running...", zap.String("port", settings.Port))
	if err := r.Run(":" + settings.Port); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
