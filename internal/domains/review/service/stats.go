package service

import (
	"context"

	"bookstore-catalog/internal/domains/review/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/utils"
)

type reviewStats struct {
	gw store.Gateway
}

// NewReviewStats reads the review collection directly, so books and users
// can show review figures without depending on the review service.
func NewReviewStats(gw store.Gateway) StatsInterface {
	return &reviewStats{gw: gw}
}

func (s *reviewStats) StatsForBook(ctx context.Context, bookID string) (shared.ReviewStats, error) {
	groups, err := s.gw.Aggregate(ctx, model.Collection, store.Aggregation{
		Match:   store.Eq{Field: "book_id", Value: bookID},
		GroupBy: "book_id",
		Average: "rating",
	})
	if err != nil {
		return shared.ReviewStats{}, err
	}
	if len(groups) == 0 || groups[0].Count == 0 {
		return shared.ReviewStats{Total: 0}, nil
	}

	avg := utils.RoundTo(groups[0].Average, 2)
	return shared.ReviewStats{Average: &avg, Total: int(groups[0].Count)}, nil
}

func (s *reviewStats) CountByUser(ctx context.Context, userID string) (int, error) {
	n, err := s.gw.Count(ctx, model.Collection, store.Eq{Field: "created_by_id", Value: userID})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
