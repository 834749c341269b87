package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/category/model"
	"bookstore-catalog/internal/domains/category/service"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/apperror"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newService(t *testing.T) service.ServiceInterface {
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: model.Collection, Unique: []string{"name"}})
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return service.NewCategoryService(gw, clock.Now)
}

func strPtr(s string) *string { return &s }

func TestCategoryService_CreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "  Fiction ", Description: "Made up"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Fiction", created.Name)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCategoryService_CreateValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "   "})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCategoryService_DuplicateName(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "Poetry"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateCategoryRequest{Name: "Poetry"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.ErrorIs(t, err, model.ErrDuplicateCategoryName)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCategoryService_PartialUpdate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "History", Description: "Old things"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, model.UpdateCategoryRequest{Description: strPtr("Past events")})
	require.NoError(t, err)
	assert.Equal(t, "History", updated.Name)
	assert.Equal(t, "Past events", updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// renaming to its own name is not a conflict
	_, err = svc.Update(ctx, created.ID, model.UpdateCategoryRequest{Name: strPtr("History")})
	assert.NoError(t, err)
}

func TestCategoryService_UpdateErrors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "bad-id", model.UpdateCategoryRequest{Name: strPtr("x")})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))

	_, err = svc.Update(ctx, store.NewID(), model.UpdateCategoryRequest{Name: strPtr("x")})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	a, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateCategoryRequest{Name: "B"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, a.ID, model.UpdateCategoryRequest{Name: strPtr("B")})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = svc.Update(ctx, a.ID, model.UpdateCategoryRequest{Name: strPtr("")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCategoryService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "Travel"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = svc.Delete(ctx, "xyz")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))
}

func TestCategoryService_GetSummary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "Science"})
	require.NoError(t, err)

	s, err := svc.GetSummary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, s.ID)
	assert.Equal(t, "Science", s.Name)
}
