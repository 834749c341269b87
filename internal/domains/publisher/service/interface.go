package service

import (
	"context"

	"bookstore-catalog/internal/domains/publisher/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreatePublisherRequest) (*model.PublisherResponse, error)
	Get(ctx context.Context, id string) (*model.PublisherResponse, error)
	Update(ctx context.Context, id string, req model.UpdatePublisherRequest) (*model.PublisherResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.PublisherResponse, error)
	GetSummary(ctx context.Context, id string) (shared.Summary, error)
	Assemble(ctx context.Context, rec store.Record) (*model.PublisherResponse, error)
}

// BookLookup lists the books carrying a publisher id.
type BookLookup interface {
	ListByPublisher(ctx context.Context, publisherID string) ([]shared.Summary, error)
}
