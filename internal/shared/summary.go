package shared

import (
	"context"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/apperror"
)

// SummaryReader reads summaries straight from a collection, for lookups that
// need nothing but the record's display field.
type SummaryReader struct {
	gw         store.Gateway
	collection string
	field      string
	notFound   error
}

func NewSummaryReader(gw store.Gateway, collection, field string, notFound error) *SummaryReader {
	return &SummaryReader{gw: gw, collection: collection, field: field, notFound: notFound}
}

func (r *SummaryReader) GetSummary(ctx context.Context, id string) (Summary, error) {
	rec, err := r.gw.FindByID(ctx, r.collection, id)
	if err != nil {
		return Summary{}, apperror.FromStore(err, r.notFound)
	}
	name, _ := rec.Doc[r.field].(string)
	return Summary{ID: rec.ID, Name: name}, nil
}
