package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/review/model"
	"bookstore-catalog/internal/domains/review/service"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeLookup map[string]string

func (f fakeLookup) GetSummary(_ context.Context, id string) (shared.Summary, error) {
	name, ok := f[id]
	if !ok {
		return shared.Summary{}, errors.New("missing")
	}
	return shared.Summary{ID: id, Name: name}, nil
}

type fixture struct {
	svc   service.ServiceInterface
	stats service.StatsInterface
	user  string
	book  string
}

func setup(t *testing.T) fixture {
	t.Helper()
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: model.Collection, Indexed: []string{"book_id", "created_by_id"}})
	require.NoError(t, err)

	user, book := store.NewID(), store.NewID()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return fixture{
		svc:   service.NewReviewService(gw, fakeLookup{user: "Ann"}, fakeLookup{book: "Dune"}, clock.Now),
		stats: service.NewReviewStats(gw),
		user:  user,
		book:  book,
	}
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestReviewService_CreateResolvesReferences(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.CreateReviewRequest{
		Content: " Great read ", Rating: 5, CreatedByID: f.user, BookID: f.book,
	})
	require.NoError(t, err)
	assert.Equal(t, "Great read", created.Content)
	assert.Equal(t, shared.Summary{ID: f.user, Name: "Ann"}, created.CreatedBy)
	assert.Equal(t, shared.Summary{ID: f.book, Name: "Dune"}, created.Book)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestReviewService_DanglingReferencesDegrade(t *testing.T) {
	f := setup(t)
	ghost := store.NewID()

	created, err := f.svc.Create(context.Background(), model.CreateReviewRequest{
		Content: "Hmm", Rating: 3, CreatedByID: ghost, BookID: "not-an-id",
	})
	require.NoError(t, err)
	assert.Equal(t, shared.UnknownSummary(ghost), created.CreatedBy)
	assert.Equal(t, shared.UnknownName, created.Book.Name)
}

func TestReviewService_RatingBounds(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: "x", Rating: rating, CreatedByID: f.user, BookID: f.book})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "rating %d", rating)
	}

	created, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: "x", Rating: 1, CreatedByID: f.user, BookID: f.book})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, model.UpdateReviewRequest{Rating: intPtr(9)})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestReviewService_PartialUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: "Fine", Rating: 3, CreatedByID: f.user, BookID: f.book})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, model.UpdateReviewRequest{Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Fine", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = f.svc.Update(ctx, store.NewID(), model.UpdateReviewRequest{Content: strPtr("x")})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReviewService_SummaryTruncatesContent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	long := strings.Repeat("é", 150)
	created, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: long, Rating: 4, CreatedByID: f.user, BookID: f.book})
	require.NoError(t, err)

	s, err := f.svc.GetSummary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, s.ID)
	assert.Equal(t, strings.Repeat("é", model.SummaryLength), s.Content)
}

func TestReviewService_Delete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: "Bye", Rating: 2, CreatedByID: f.user, BookID: f.book})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, created.ID))

	_, err = f.svc.Get(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.True(t, apperror.IsKind(f.svc.Delete(ctx, "nope"), apperror.KindInvalidIdentifier))
}

func TestReviewStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	stats, err := f.stats.StatsForBook(ctx, f.book)
	require.NoError(t, err)
	assert.Nil(t, stats.Average)
	assert.Equal(t, 0, stats.Total)

	for _, r := range []int{4, 5} {
		_, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: "ok", Rating: r, CreatedByID: f.user, BookID: f.book})
		require.NoError(t, err)
	}
	_, err = f.svc.Create(ctx, model.CreateReviewRequest{Content: "other", Rating: 1, CreatedByID: store.NewID(), BookID: store.NewID()})
	require.NoError(t, err)

	stats, err = f.stats.StatsForBook(ctx, f.book)
	require.NoError(t, err)
	require.NotNil(t, stats.Average)
	assert.Equal(t, 4.5, *stats.Average)
	assert.Equal(t, 2, stats.Total)

	n, err := f.stats.CountByUser(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReviewStats_RoundsToTwoPlaces(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, r := range []int{5, 4, 4} {
		_, err := f.svc.Create(ctx, model.CreateReviewRequest{Content: "ok", Rating: r, CreatedByID: f.user, BookID: f.book})
		require.NoError(t, err)
	}

	stats, err := f.stats.StatsForBook(ctx, f.book)
	require.NoError(t, err)
	require.NotNil(t, stats.Average)
	assert.Equal(t, 4.33, *stats.Average)
}
