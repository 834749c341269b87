package shared

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UnknownName labels a summary whose target record could not be resolved.
const UnknownName = "Unknown"

// Summary is the {id, name} shape one entity embeds to reference another.
// It lives here so domains can embed each other without import cycles.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func UnknownSummary(id string) Summary {
	return Summary{ID: id, Name: UnknownName}
}

// ReviewStats is the rating aggregate of one book. Average is nil when the
// book has no reviews.
type ReviewStats struct {
	Average *float64 `json:"average_rating"`
	Total   int      `json:"total_reviews"`
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// SummaryLookup resolves an id into its summary.
type SummaryLookup interface {
	GetSummary(ctx context.Context, id string) (Summary, error)
}

// ResolveSummary looks id up and reports whether it resolved. Failures of any
// kind degrade to the Unknown summary and are only logged.
func ResolveSummary(ctx context.Context, lookup SummaryLookup, ref, id string) (Summary, bool) {
	if id == "" {
		return UnknownSummary(id), false
	}
	s, err := lookup.GetSummary(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("ref", ref).Str("id", id).Msg("unresolved reference")
		return UnknownSummary(id), false
	}
	return s, true
}
