package service

import (
	"context"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.AuthorResponse, error)
	Get(ctx context.Context, id string) (*model.AuthorResponse, error)
	Update(ctx context.Context, id string, req model.UpdateAuthorRequest) (*model.AuthorResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.AuthorResponse, error)
	GetSummary(ctx context.Context, id string) (shared.Summary, error)
	Assemble(ctx context.Context, rec store.Record) (*model.AuthorResponse, error)
}

// BookLookup answers the author-side questions about books.
type BookLookup interface {
	LatestByAuthor(ctx context.Context, authorID string, limit int) ([]shared.Summary, error)
	CountPublishedByAuthor(ctx context.Context, authorID string) (int, error)
}
