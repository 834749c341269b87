package service

import (
	"context"

	"bookstore-catalog/internal/domains/user/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

// ServiceInterface - user business logic
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error)
	Get(ctx context.Context, id string) (*model.UserResponse, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.UserResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.UserResponse, error)
	GetSummary(ctx context.Context, id string) (shared.Summary, error)
	Assemble(ctx context.Context, rec store.Record) (*model.UserResponse, error)
}

// ReviewCounter counts the reviews a user has written.
type ReviewCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}
