package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/catalog"
	"bookstore-catalog/internal/config"
	authorHandler "bookstore-catalog/internal/domains/author/handler"
	bookHandler "bookstore-catalog/internal/domains/book/handler"
	bookstoreHandler "bookstore-catalog/internal/domains/bookstore/handler"
	categoryHandler "bookstore-catalog/internal/domains/category/handler"
	publisherHandler "bookstore-catalog/internal/domains/publisher/handler"
	reviewHandler "bookstore-catalog/internal/domains/review/handler"
	searchHandler "bookstore-catalog/internal/domains/search/handler"
	userHandler "bookstore-catalog/internal/domains/user/handler"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/pkg/logger"
)

const connectTimeout = 30 * time.Second

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph: config, the record store
// behind the configured driver, the catalog services and their handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB  // set when STORE_DRIVER=postgres
	Redis  *database.RedisClient // set when STORE_DRIVER=redis
	Store  store.Gateway

	// ========================================
	// SERVICE LAYER
	// ========================================
	Services *catalog.Services

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler    *authorHandler.AuthorHandler
	BookHandler      *bookHandler.BookHandler
	BookstoreHandler *bookstoreHandler.BookstoreHandler
	CategoryHandler  *categoryHandler.CategoryHandler
	PublisherHandler *publisherHandler.PublisherHandler
	ReviewHandler    *reviewHandler.ReviewHandler
	UserHandler      *userHandler.UserHandler
	SearchHandler    *searchHandler.SearchHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads the configuration and builds everything on top of it.
//
// Order matters:
// 1. Config
// 2. Logger
// 3. Store (driver switch, migrations)
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	return NewWithConfig(cfg)
}

// NewWithConfig builds the container from an already loaded configuration.
func NewWithConfig(cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Str("driver", cfg.Store.Driver).Msg("initializing container")

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	// ========================================
	// STEP 1: RECORD STORE
	// ========================================
	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	// ========================================
	// STEP 2: SERVICES
	// ========================================
	c.Services = catalog.New(c.Store, catalog.Options{
		BcryptCost: cfg.Security.BcryptCost,
	})

	// ========================================
	// STEP 3: HANDLERS
	// ========================================
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"driver":   cfg.Store.Driver,
		"entities": c.Services.Search.Entities(),
	})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore(ctx context.Context) error {
	specs := catalog.Collections()

	switch c.Config.Store.Driver {
	case config.DriverPostgres:
		db := database.NewPostgresDB(&c.Config.Database)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		pg, err := store.NewPostgresStore(db.Pool, specs...)
		if err != nil {
			return err
		}
		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		c.Store = pg

	case config.DriverRedis:
		rc := database.NewRedisClient(c.Config.Redis)
		c.Redis = rc
		if err := rc.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		rs, err := store.NewRedisStore(rc.Client, c.Config.Redis.KeyPrefix, specs...)
		if err != nil {
			return err
		}
		c.Store = rs

	case config.DriverMemory:
		ms, err := store.NewMemoryStore(specs...)
		if err != nil {
			return err
		}
		logger.Debug("using in-memory store, data is lost on exit")
		c.Store = ms

	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}
	return nil
}

func (c *Container) initHandlers() {
	s := c.Services
	c.AuthorHandler = authorHandler.NewAuthorHandler(s.Authors)
	c.BookHandler = bookHandler.NewBookHandler(s.Books)
	c.BookstoreHandler = bookstoreHandler.NewBookstoreHandler(s.Bookstores)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(s.Categories)
	c.PublisherHandler = publisherHandler.NewPublisherHandler(s.Publishers)
	c.ReviewHandler = reviewHandler.NewReviewHandler(s.Reviews)
	c.UserHandler = userHandler.NewUserHandler(s.Users)
	c.SearchHandler = searchHandler.NewSearchHandler(s.Search)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases the store connections. Called on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}

	log.Info().Msg("container cleanup completed")
}
