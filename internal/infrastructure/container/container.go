package container

import (
	"fmt"
	"log"

	"github.com/flatmatch/flatmatch-backend/internal/config"
	delivery "github.com/flatmatch/flatmatch-backend/internal/delivery/http"
	"github.com/flatmatch/flatmatch-backend/internal/delivery/http/handler"
	"github.com/flatmatch/flatmatch-backend/internal/delivery/http/middleware"
	"github.com/flatmatch/flatmatch-backend/internal/infrastructure/convcache"
	"github.com/flatmatch/flatmatch-backend/internal/infrastructure/database"
	"github.com/flatmatch/flatmatch-backend/internal/infrastructure/gemini"
	"github.com/flatmatch/flatmatch-backend/internal/infrastructure/server"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/flatmatch/flatmatch-backend/internal/repository/memory"
	"github.com/flatmatch/flatmatch-backend/internal/repository/postgres"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/auth"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/chat"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/listing"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/match"
	"github.com/flatmatch/flatmatch-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Store  *repository.Store
	Server *server.Server
	Gemini *gemini.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Select the storage backend. No configuration means the volatile
	// in-memory store; a durable backend is only used when asked for and
	// failing to reach it is fatal here, not per call.
	switch cfg.StoreDriver() {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		c.Store = postgres.NewStore(db)
	default:
		log.Println("No durable store configured, using in-memory backend")
		c.Store = memory.NewStore()
	}

	// The conversation-pointer cache is optional and only worth having
	// with a durable store behind it.
	var convCache chat.ConversationCache
	if c.DB != nil && cfg.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Printf("Warning: failed to initialize redis, conversations will be recomputed from the log: %v", err)
		} else {
			c.Redis = redisClient
			convCache = convcache.NewRedisCache(redisClient)
		}
	}

	// Match insight is optional as well.
	var insight match.InsightClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: failed to initialize gemini client: %v", err)
		} else {
			c.Gemini = geminiClient
			insight = geminiClient
		}
	}

	// Initialize use cases
	authUseCase := auth.NewUseCase(c.Store.Users, cfg.JWT.Secret, cfg.JWT.AccessExpiryMin)
	profileUseCase := profile.NewUseCase(c.Store.Users, c.Store.Roommates, c.Store.Badges)
	matchUseCase := match.NewUseCase(c.Store.Users, c.Store.Roommates, insight)
	listingUseCase := listing.NewUseCase(c.Store.Listings)
	chatUseCase := chat.NewUseCase(c.Store.Messages, c.Store.Users, convCache)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	listingHandler := handler.NewListingHandler(listingUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := delivery.NewRouter(
		authHandler,
		profileHandler,
		matchHandler,
		listingHandler,
		chatHandler,
		authMiddleware,
	)

	// Initialize server
	c.Server = server.NewServer(&cfg.Server, router.Setup())

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
