package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/vidora/vidora-api/comments"
	commentHandlers "github.com/vidora/vidora-api/comments/handlers"
	commentRepository "github.com/vidora/vidora-api/comments/repository"
	commentServices "github.com/vidora/vidora-api/comments/services"
	"github.com/vidora/vidora-api/internal/cache"
	dbi "github.com/vidora/vidora-api/internal/database/interfaces"
	"github.com/vidora/vidora-api/internal/database/mongodb"
	platformconfig "github.com/vidora/vidora-api/internal/platform/config"
	"github.com/vidora/vidora-api/subscriptions"
	subscriptionHandlers "github.com/vidora/vidora-api/subscriptions/handlers"
	subscriptionRepository "github.com/vidora/vidora-api/subscriptions/repository"
	subscriptionServices "github.com/vidora/vidora-api/subscriptions/services"
	usersRepository "github.com/vidora/vidora-api/users/repository"
	"github.com/vidora/vidora-api/videos"
	videoHandlers "github.com/vidora/vidora-api/videos/handlers"
	videoRepository "github.com/vidora/vidora-api/videos/repository"
	videoServices "github.com/vidora/vidora-api/videos/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	ctx := context.Background()
	mongoConfig := &dbi.MongoDBConfig{
		Host:                   cfg.Database.Mongo.Host,
		Port:                   cfg.Database.Mongo.Port,
		Username:               cfg.Database.Mongo.Username,
		Password:               cfg.Database.Mongo.Password,
		Database:               cfg.Database.Mongo.Database,
		AuthDatabase:           cfg.Database.Mongo.AuthDatabase,
		ReplicaSet:             cfg.Database.Mongo.ReplicaSet,
		SSL:                    cfg.Database.Mongo.SSL,
		MaxPoolSize:            cfg.Database.Mongo.MaxPoolSize,
		MinPoolSize:            cfg.Database.Mongo.MinPoolSize,
		ConnectTimeout:         cfg.Database.Mongo.ConnectTimeout,
		SocketTimeout:          cfg.Database.Mongo.SocketTimeout,
		MaxIdleTime:            cfg.Database.Mongo.MaxIdleTime,
		ServerSelectionTimeout: cfg.Database.Mongo.ServerSelectionTimeout,
	}
	db, err := mongodb.NewMongoRepository(ctx, mongoConfig, cfg.Database.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	var cacheService *cache.CacheService
	if cfg.Cache.Enabled {
		cacheConfig := &cache.CacheConfig{
			Enabled:         cfg.Cache.Enabled,
			Backend:         cache.CacheType(cfg.Cache.Backend),
			Prefix:          cfg.Cache.Prefix,
			TTL:             cfg.Cache.TTL,
			CleanupInterval: cfg.Cache.CleanupInterval,
			Redis: cache.RedisConfig{
				Address:      cfg.Cache.Redis.Address,
				Password:     cfg.Cache.Redis.Password,
				Database:     cfg.Cache.Redis.Database,
				PoolSize:     cfg.Cache.Redis.PoolSize,
				MinIdleConns: cfg.Cache.Redis.MinIdleConns,
			},
		}
		backend, err := cache.NewCache(cacheConfig)
		if err != nil {
			log.Fatalf("Failed to initialize cache: %v", err)
		}
		cacheService = cache.NewCacheService(backend, cacheConfig)
	}

	userRepo := usersRepository.NewMongoUserRepository(db)
	videoRepo := videoRepository.NewMongoVideoRepository(db)
	commentRepo := commentRepository.NewMongoCommentRepository(db)
	subscriptionRepo := subscriptionRepository.NewMongoSubscriptionRepository(db)

	videoService := videoServices.NewVideoService(videoRepo, userRepo, cacheService, cfg)
	commentService := commentServices.NewCommentService(commentRepo, videoRepo, userRepo, cacheService)
	subscriptionService := subscriptionServices.NewSubscriptionService(subscriptionRepo, userRepo)

	api := app.Group(cfg.Server.BaseRoute)

	videos.RegisterRoutes(api, &videos.VideosHandlers{
		VideoHandler: videoHandlers.NewVideoHandler(videoService),
	}, cfg)
	comments.RegisterRoutes(api, &comments.CommentsHandlers{
		CommentHandler: commentHandlers.NewCommentHandler(commentService),
	}, cfg)
	subscriptions.RegisterRoutes(api, &subscriptions.SubscriptionsHandlers{
		SubscriptionHandler: subscriptionHandlers.NewSubscriptionHandler(subscriptionService),
	}, cfg)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting Vidora API Server (Videos + Comments + Subscriptions) on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}
	log.Println("Server stopped")
}
