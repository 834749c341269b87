package service

import (
	"context"

	"bookstore-catalog/internal/domains/review/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateReviewRequest) (*model.ReviewResponse, error)
	Get(ctx context.Context, id string) (*model.ReviewResponse, error)
	Update(ctx context.Context, id string, req model.UpdateReviewRequest) (*model.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.ReviewResponse, error)

	// GetSummary returns the id and a content snippet.
	GetSummary(ctx context.Context, id string) (*model.ReviewSummary, error)

	// Assemble resolves the author and the book of a stored review.
	Assemble(ctx context.Context, rec store.Record) (*model.ReviewResponse, error)
}

// =====================================================
// DERIVED STATS (consumed by book and user)
// =====================================================

type StatsInterface interface {
	// StatsForBook averages the ratings of a book, rounded to 2 places.
	StatsForBook(ctx context.Context, bookID string) (shared.ReviewStats, error)

	// CountByUser counts the reviews written by a user.
	CountByUser(ctx context.Context, userID string) (int, error)
}
