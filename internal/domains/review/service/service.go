package service

import (
	"context"

	"bookstore-catalog/internal/domains/review/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type reviewService struct {
	gw    store.Gateway
	users shared.SummaryLookup
	books shared.SummaryLookup
	clock shared.Clock
}

func NewReviewService(gw store.Gateway, users, books shared.SummaryLookup, clock shared.Clock) ServiceInterface {
	return &reviewService{gw: gw, users: users, books: books, clock: clock}
}

// =====================================================
// CRUD
// =====================================================

func (s *reviewService) Create(ctx context.Context, req model.CreateReviewRequest) (*model.ReviewResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	now := s.clock.Now()
	doc, err := store.Encode(model.Review{
		Content:     req.Content,
		Rating:      req.Rating,
		CreatedByID: req.CreatedByID,
		BookID:      req.BookID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrReviewNotFound)
	}
	return s.Get(ctx, id)
}

func (s *reviewService) Get(ctx context.Context, id string) (*model.ReviewResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrReviewNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *reviewService) Update(ctx context.Context, id string, req model.UpdateReviewRequest) (*model.ReviewResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, req.Patch(s.clock.Now()))
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrReviewNotFound)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrReviewNotFound)
	}
	return s.Get(ctx, id)
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrReviewNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrReviewNotFound)
	}
	return nil
}

func (s *reviewService) List(ctx context.Context) ([]*model.ReviewResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	out := make([]*model.ReviewResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *reviewService) GetSummary(ctx context.Context, id string) (*model.ReviewSummary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrReviewNotFound)
	}

	var r model.Review
	if err := store.Decode(rec, &r); err != nil {
		return nil, apperror.Unexpected(err)
	}
	return r.ToSummary(), nil
}

// =====================================================
// ASSEMBLY
// =====================================================

func (s *reviewService) Assemble(ctx context.Context, rec store.Record) (*model.ReviewResponse, error) {
	var r model.Review
	if err := store.Decode(rec, &r); err != nil {
		return nil, apperror.Unexpected(err)
	}

	createdBy, _ := shared.ResolveSummary(ctx, s.users, "created_by_id", r.CreatedByID)
	book, _ := shared.ResolveSummary(ctx, s.books, "book_id", r.BookID)
	return r.ToResponse(createdBy, book), nil
}
