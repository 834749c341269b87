package service

import (
	"context"

	"bookstore-catalog/internal/domains/category/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.CategoryResponse, error)
	Get(ctx context.Context, id string) (*model.CategoryResponse, error)
	Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.CategoryResponse, error)
	GetSummary(ctx context.Context, id string) (shared.Summary, error)

	// Assemble turns a stored record into its response shape.
	Assemble(ctx context.Context, rec store.Record) (*model.CategoryResponse, error)
}
