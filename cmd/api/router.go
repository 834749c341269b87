package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/internal/shared/response"
	"bookstore-catalog/pkg/container"
)

const healthTimeout = 2 * time.Second

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares. Recovery sits innermost so recovered panics are
	// still access-logged with their request id.
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupBookstoreRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupPublisherRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupSearchRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/base/:id", c.AuthorHandler.GetBase)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET("/base/:id", c.BookHandler.GetBaseBook)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// ========================================
// BOOKSTORE ROUTES
// ========================================
func setupBookstoreRoutes(v1 *gin.RouterGroup, c *container.Container) {
	bookstores := v1.Group("/bookstores")
	{
		bookstores.POST("", c.BookstoreHandler.Create)
		bookstores.GET("", c.BookstoreHandler.List)
		bookstores.GET("/base/:id", c.BookstoreHandler.GetBase)
		bookstores.GET("/:id", c.BookstoreHandler.Get)
		bookstores.PUT("/:id", c.BookstoreHandler.Update)
		bookstores.DELETE("/:id", c.BookstoreHandler.Delete)

		// Membership
		bookstores.POST("/:id/books/:bookId", c.BookstoreHandler.AddBook)
		bookstores.DELETE("/:id/books/:bookId", c.BookstoreHandler.RemoveBook)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.POST("", c.CategoryHandler.Create)
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/base/:id", c.CategoryHandler.GetBase)
		categories.GET("/:id", c.CategoryHandler.Get)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// ========================================
// PUBLISHER ROUTES
// ========================================
func setupPublisherRoutes(v1 *gin.RouterGroup, c *container.Container) {
	publishers := v1.Group("/publishers")
	{
		publishers.POST("", c.PublisherHandler.Create)
		publishers.GET("", c.PublisherHandler.List)
		publishers.GET("/base/:id", c.PublisherHandler.GetBase)
		publishers.GET("/:id", c.PublisherHandler.Get)
		publishers.PUT("/:id", c.PublisherHandler.Update)
		publishers.DELETE("/:id", c.PublisherHandler.Delete)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews")
	{
		reviews.POST("", c.ReviewHandler.CreateReview)
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/base/:id", c.ReviewHandler.GetBaseReview)
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.PUT("/:id", c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.POST("", c.UserHandler.Create)
		users.GET("", c.UserHandler.List)
		users.GET("/base/:id", c.UserHandler.GetBase)
		users.GET("/:id", c.UserHandler.Get)
		users.PUT("/:id", c.UserHandler.Update)
		users.DELETE("/:id", c.UserHandler.Delete)
	}
}

// ========================================
// SEARCH ROUTES
// ========================================
func setupSearchRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/search/:entity", c.SearchHandler.Search)
}

// healthCheckHandler reports the app version and whether the store answers.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"driver":    appCtx.Config.Store.Driver,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		storeStatus := "ok"
		if err := appCtx.Store.Ping(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("store ping failed")
			storeStatus = "unavailable"
			health["status"] = "degraded"
		}
		health["store"] = storeStatus

		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		status := http.StatusOK
		if storeStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
