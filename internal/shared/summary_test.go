package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/apperror"
)

var errThingNotFound = errors.New("thing not found")

func TestSummaryReader(t *testing.T) {
	ctx := context.Background()
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: "things"})
	require.NoError(t, err)

	id, err := gw.Insert(ctx, "things", store.Document{"name": "Widget"})
	require.NoError(t, err)

	r := NewSummaryReader(gw, "things", "name", errThingNotFound)

	s, err := r.GetSummary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Summary{ID: id, Name: "Widget"}, s)

	_, err = r.GetSummary(ctx, store.NewID())
	assert.ErrorIs(t, err, errThingNotFound)

	_, err = r.GetSummary(ctx, "nope")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))
}

func TestResolveSummary(t *testing.T) {
	ctx := context.Background()
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: "things"})
	require.NoError(t, err)
	id, err := gw.Insert(ctx, "things", store.Document{"name": "Widget"})
	require.NoError(t, err)
	r := NewSummaryReader(gw, "things", "name", errThingNotFound)

	s, ok := ResolveSummary(ctx, r, "thing", id)
	assert.True(t, ok)
	assert.Equal(t, "Widget", s.Name)

	missing := store.NewID()
	s, ok = ResolveSummary(ctx, r, "thing", missing)
	assert.False(t, ok)
	assert.Equal(t, UnknownSummary(missing), s)

	s, ok = ResolveSummary(ctx, r, "thing", "malformed")
	assert.False(t, ok)
	assert.Equal(t, Summary{ID: "malformed", Name: UnknownName}, s)

	_, ok = ResolveSummary(ctx, r, "thing", "")
	assert.False(t, ok)
}

func TestClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	c := Clock(func() time.Time { return fixed })

	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, fixed.Equal(c.Now()))

	var nilClock Clock
	assert.WithinDuration(t, time.Now(), nilClock.Now(), time.Second)
}
