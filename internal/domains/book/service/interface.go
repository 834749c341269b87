package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

// ServiceInterface - book business logic
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	Get(ctx context.Context, id string) (*model.BookResponse, error)
	Update(ctx context.Context, id string, req model.UpdateBookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.BookResponse, error)
	GetSummary(ctx context.Context, id string) (shared.Summary, error)
	Assemble(ctx context.Context, rec store.Record) (*model.BookResponse, error)

	// Reverse lookups used by authors and publishers
	LatestByAuthor(ctx context.Context, authorID string, limit int) ([]shared.Summary, error)
	CountPublishedByAuthor(ctx context.Context, authorID string) (int, error)
	ListByPublisher(ctx context.Context, publisherID string) ([]shared.Summary, error)

	// ExportExcel builds a workbook of every assembled book. The caller owns
	// the returned file and must Close it.
	ExportExcel(ctx context.Context) (*excelize.File, error)
}

// ReviewStatsLookup aggregates the reviews of a book.
type ReviewStatsLookup interface {
	StatsForBook(ctx context.Context, bookID string) (shared.ReviewStats, error)
}
