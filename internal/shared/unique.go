package shared

import (
	"context"
	"errors"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/apperror"
)

// CheckUnique fails with Conflict when a record other than selfID already
// holds value in field. The store's unique index has the final say; this only
// gives the common case a cheap early answer.
func CheckUnique(ctx context.Context, gw store.Gateway, collection, field, value, selfID string, conflict error) error {
	recs, err := gw.FindMatching(ctx, collection, store.Eq{Field: field, Value: value}, store.FindOptions{Limit: 2})
	if err != nil {
		return apperror.Unexpected(err)
	}
	for _, rec := range recs {
		if rec.ID != selfID {
			return apperror.Conflict(conflict)
		}
	}
	return nil
}

// WriteError translates an error from an insert or update.
func WriteError(err, notFound, conflict error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperror.Conflict(conflict)
	}
	return apperror.FromStore(err, notFound)
}
