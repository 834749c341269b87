package service

import (
	"context"

	"bookstore-catalog/internal/domains/bookstore/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateBookstoreRequest) (*model.BookstoreResponse, error)
	Get(ctx context.Context, id string) (*model.BookstoreResponse, error)
	Update(ctx context.Context, id string, req model.UpdateBookstoreRequest) (*model.BookstoreResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.BookstoreResponse, error)
	GetSummary(ctx context.Context, id string) (shared.Summary, error)
	Assemble(ctx context.Context, rec store.Record) (*model.BookstoreResponse, error)

	// AddBook is idempotent; RemoveBook of a non-member is a no-op.
	AddBook(ctx context.Context, id, bookID string) (*model.BookstoreResponse, error)
	RemoveBook(ctx context.Context, id, bookID string) (*model.BookstoreResponse, error)
}
