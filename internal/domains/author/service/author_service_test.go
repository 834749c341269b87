package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/author/service"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeBooks struct {
	latest    map[string][]shared.Summary
	published map[string]int
	err       error
	gotLimit  int
}

func (f *fakeBooks) LatestByAuthor(_ context.Context, authorID string, limit int) ([]shared.Summary, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.latest[authorID], nil
}

func (f *fakeBooks) CountPublishedByAuthor(_ context.Context, authorID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.published[authorID], nil
}

func newService(t *testing.T, books *fakeBooks) service.ServiceInterface {
	t.Helper()
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: model.Collection, Unique: []string{"name"}})
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return service.NewAuthorService(gw, books, clock.Now)
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestAuthorService_CreateAndAssemble(t *testing.T) {
	books := &fakeBooks{latest: map[string][]shared.Summary{}, published: map[string]int{}}
	svc := newService(t, books)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "Mark Twain", Age: 74, Gender: "Male"})
	require.NoError(t, err)
	assert.Equal(t, "Mark Twain", created.Name)
	assert.Equal(t, []shared.Summary{}, created.LatestBooks)
	assert.Equal(t, 0, created.TotalPublished)
	assert.Equal(t, model.LatestBooksLimit, books.gotLimit)

	books.latest[created.ID] = []shared.Summary{{ID: "b2", Name: "Tom Sawyer"}}
	books.published[created.ID] = 1

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tom Sawyer", got.LatestBooks[0].Name)
	assert.Equal(t, 1, got.TotalPublished)
}

func TestAuthorService_BookLookupFailureDegrades(t *testing.T) {
	svc := newService(t, &fakeBooks{err: errors.New("boom")})

	created, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: "Anon", Age: 30, Gender: "Female"})
	require.NoError(t, err)
	assert.Empty(t, created.LatestBooks)
	assert.Equal(t, 0, created.TotalPublished)
}

func TestAuthorService_DuplicateName(t *testing.T) {
	svc := newService(t, &fakeBooks{})
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "Mark Twain", Age: 74, Gender: "Male"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateAuthorRequest{Name: "Mark Twain", Age: 40, Gender: "Male"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAuthorService_Validation(t *testing.T) {
	svc := newService(t, &fakeBooks{})
	ctx := context.Background()

	cases := []model.CreateAuthorRequest{
		{Name: "", Age: 30, Gender: "Male"},
		{Name: "X", Age: 0, Gender: "Male"},
		{Name: "X", Age: 200, Gender: "Male"},
		{Name: "X", Age: 30, Gender: " "},
	}
	for _, req := range cases {
		_, err := svc.Create(ctx, req)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "%+v", req)
	}
}

func TestAuthorService_UpdateAndDelete(t *testing.T) {
	svc := newService(t, &fakeBooks{})
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "Samuel Clemens", Age: 40, Gender: "Male"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, model.UpdateAuthorRequest{Age: intPtr(41)})
	require.NoError(t, err)
	assert.Equal(t, 41, updated.Age)
	assert.Equal(t, "Samuel Clemens", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.Update(ctx, "nope", model.UpdateAuthorRequest{Gender: strPtr("x")})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))

	s, err := svc.GetSummary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.Summary{ID: created.ID, Name: "Samuel Clemens"}, s)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, apperror.IsKind(svc.Delete(ctx, created.ID), apperror.KindNotFound))
}
