package service

import (
	"context"

	"github.com/rs/zerolog"

	"bookstore-catalog/internal/domains/bookstore/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type bookstoreService struct {
	gw    store.Gateway
	books shared.SummaryLookup
	clock shared.Clock
}

func NewBookstoreService(gw store.Gateway, books shared.SummaryLookup, clock shared.Clock) ServiceInterface {
	return &bookstoreService{gw: gw, books: books, clock: clock}
}

func (s *bookstoreService) Create(ctx context.Context, req model.CreateBookstoreRequest) (*model.BookstoreResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", req.Name, "", model.ErrDuplicateBookstoreName); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc, err := store.Encode(model.Bookstore{
		Name:      req.Name,
		Location:  req.Location,
		BookIDs:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrBookstoreNotFound, model.ErrDuplicateBookstoreName)
	}
	return s.Get(ctx, id)
}

func (s *bookstoreService) Get(ctx context.Context, id string) (*model.BookstoreResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrBookstoreNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *bookstoreService) Update(ctx context.Context, id string, req model.UpdateBookstoreRequest) (*model.BookstoreResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.Name != nil {
		if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", *req.Name, id, model.ErrDuplicateBookstoreName); err != nil {
			return nil, err
		}
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, req.Patch(s.clock.Now()))
	if err != nil {
		return nil, shared.WriteError(err, model.ErrBookstoreNotFound, model.ErrDuplicateBookstoreName)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrBookstoreNotFound)
	}
	return s.Get(ctx, id)
}

func (s *bookstoreService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrBookstoreNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrBookstoreNotFound)
	}
	return nil
}

func (s *bookstoreService) List(ctx context.Context) ([]*model.BookstoreResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	out := make([]*model.BookstoreResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *bookstoreService) GetSummary(ctx context.Context, id string) (shared.Summary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return shared.Summary{}, apperror.FromStore(err, model.ErrBookstoreNotFound)
	}
	name, _ := rec.Doc["name"].(string)
	return shared.Summary{ID: rec.ID, Name: name}, nil
}

// =====================================================
// MEMBERSHIP
// =====================================================

func (s *bookstoreService) AddBook(ctx context.Context, id, bookID string) (*model.BookstoreResponse, error) {
	return s.changeMembership(ctx, id, bookID, s.gw.AddToSet)
}

func (s *bookstoreService) RemoveBook(ctx context.Context, id, bookID string) (*model.BookstoreResponse, error) {
	return s.changeMembership(ctx, id, bookID, s.gw.Pull)
}

type setOp func(ctx context.Context, collection, id, field, value string, set store.Document) (int64, error)

func (s *bookstoreService) changeMembership(ctx context.Context, id, bookID string, op setOp) (*model.BookstoreResponse, error) {
	if store.CheckID(id) != nil || store.CheckID(bookID) != nil {
		return nil, apperror.InvalidID()
	}

	matched, err := op(ctx, model.Collection, id, model.BookIDsField, bookID, store.Document{"updated_at": s.clock.Now()})
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrBookstoreNotFound)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrBookstoreNotFound)
	}
	return s.Get(ctx, id)
}

// =====================================================
// ASSEMBLY
// =====================================================

// Assemble embeds a summary for each stocked book. Books that no longer
// resolve are left out of the list; the stored id set is not touched.
func (s *bookstoreService) Assemble(ctx context.Context, rec store.Record) (*model.BookstoreResponse, error) {
	var b model.Bookstore
	if err := store.Decode(rec, &b); err != nil {
		return nil, apperror.Unexpected(err)
	}

	books := make([]shared.Summary, 0, len(b.BookIDs))
	for _, bookID := range b.BookIDs {
		summary, err := s.books.GetSummary(ctx, bookID)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("book_id", bookID).Msg("stocked book unavailable")
			continue
		}
		books = append(books, summary)
	}
	return b.ToResponse(books), nil
}
