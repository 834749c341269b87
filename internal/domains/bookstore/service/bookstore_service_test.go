package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/bookstore/model"
	"bookstore-catalog/internal/domains/bookstore/service"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeBooks map[string]string

func (f fakeBooks) GetSummary(_ context.Context, id string) (shared.Summary, error) {
	name, ok := f[id]
	if !ok {
		return shared.Summary{}, errors.New("missing")
	}
	return shared.Summary{ID: id, Name: name}, nil
}

func newService(t *testing.T, books fakeBooks) service.ServiceInterface {
	t.Helper()
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: model.Collection, Unique: []string{"name"}})
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return service.NewBookstoreService(gw, books, clock.Now)
}

func TestBookstoreService_CreateStartsEmpty(t *testing.T) {
	svc := newService(t, fakeBooks{})

	created, err := svc.Create(context.Background(), model.CreateBookstoreRequest{Name: "Barnes & Noble", Location: "New York"})
	require.NoError(t, err)
	assert.Equal(t, []shared.Summary{}, created.Books)

	_, err = svc.Create(context.Background(), model.CreateBookstoreRequest{Name: "Barnes & Noble", Location: "Boston"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestBookstoreService_AddBookIsIdempotent(t *testing.T) {
	dune := store.NewID()
	svc := newService(t, fakeBooks{dune: "Dune"})
	ctx := context.Background()

	shop, err := svc.Create(ctx, model.CreateBookstoreRequest{Name: "Shop", Location: "Here"})
	require.NoError(t, err)

	first, err := svc.AddBook(ctx, shop.ID, dune)
	require.NoError(t, err)
	second, err := svc.AddBook(ctx, shop.ID, dune)
	require.NoError(t, err)

	assert.Equal(t, []shared.Summary{{ID: dune, Name: "Dune"}}, second.Books)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, shop.CreatedAt, second.CreatedAt)
}

func TestBookstoreService_RemoveBook(t *testing.T) {
	dune, emma := store.NewID(), store.NewID()
	svc := newService(t, fakeBooks{dune: "Dune", emma: "Emma"})
	ctx := context.Background()

	shop, err := svc.Create(ctx, model.CreateBookstoreRequest{Name: "Shop", Location: "Here"})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, shop.ID, dune)
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, shop.ID, emma)
	require.NoError(t, err)

	after, err := svc.RemoveBook(ctx, shop.ID, dune)
	require.NoError(t, err)
	assert.Equal(t, []shared.Summary{{ID: emma, Name: "Emma"}}, after.Books)

	// removing a non-member is a no-op
	again, err := svc.RemoveBook(ctx, shop.ID, dune)
	require.NoError(t, err)
	assert.Equal(t, after.Books, again.Books)
}

func TestBookstoreService_MissingBooksAreOmitted(t *testing.T) {
	dune, gone := store.NewID(), store.NewID()
	svc := newService(t, fakeBooks{dune: "Dune"})
	ctx := context.Background()

	shop, err := svc.Create(ctx, model.CreateBookstoreRequest{Name: "Shop", Location: "Here"})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, shop.ID, gone)
	require.NoError(t, err)
	got, err := svc.AddBook(ctx, shop.ID, dune)
	require.NoError(t, err)

	assert.Equal(t, []shared.Summary{{ID: dune, Name: "Dune"}}, got.Books)
}

func TestBookstoreService_MembershipErrors(t *testing.T) {
	svc := newService(t, fakeBooks{})
	ctx := context.Background()

	_, err := svc.AddBook(ctx, "bad", store.NewID())
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))

	shop, err := svc.Create(ctx, model.CreateBookstoreRequest{Name: "Shop", Location: "Here"})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, shop.ID, "not-a-book-id")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))

	_, err = svc.RemoveBook(ctx, store.NewID(), store.NewID())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestBookstoreService_UpdateKeepsMembership(t *testing.T) {
	dune := store.NewID()
	svc := newService(t, fakeBooks{dune: "Dune"})
	ctx := context.Background()

	shop, err := svc.Create(ctx, model.CreateBookstoreRequest{Name: "Shop", Location: "Here"})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, shop.ID, dune)
	require.NoError(t, err)

	loc := "There"
	updated, err := svc.Update(ctx, shop.ID, model.UpdateBookstoreRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "There", updated.Location)
	assert.Len(t, updated.Books, 1)

	s, err := svc.GetSummary(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop", s.Name)

	require.NoError(t, svc.Delete(ctx, shop.ID))
	_, err = svc.Get(ctx, shop.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
