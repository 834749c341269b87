package service

import (
	"context"

	"github.com/rs/zerolog"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

// Lookups groups the references a book resolves at read time.
type Lookups struct {
	Authors    shared.SummaryLookup
	Categories shared.SummaryLookup
	Publishers shared.SummaryLookup
	Reviews    ReviewStatsLookup
}

type bookService struct {
	gw      store.Gateway
	lookups Lookups
	clock   shared.Clock
}

// NewBookService - Constructor with DI
func NewBookService(gw store.Gateway, lookups Lookups, clock shared.Clock) ServiceInterface {
	return &bookService{gw: gw, lookups: lookups, clock: clock}
}

// =====================================================
// CRUD
// =====================================================

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", req.Name, "", model.ErrDuplicateBookName); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc, err := store.Encode(model.Book{
		Name:        req.Name,
		Description: req.Description,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		PublisherID: req.PublisherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrBookNotFound, model.ErrDuplicateBookName)
	}
	return s.Get(ctx, id)
}

func (s *bookService) Get(ctx context.Context, id string) (*model.BookResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrBookNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *bookService) Update(ctx context.Context, id string, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.Name != nil {
		if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", *req.Name, id, model.ErrDuplicateBookName); err != nil {
			return nil, err
		}
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, req.Patch(s.clock.Now()))
	if err != nil {
		return nil, shared.WriteError(err, model.ErrBookNotFound, model.ErrDuplicateBookName)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrBookNotFound)
	}
	return s.Get(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrBookNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrBookNotFound)
	}
	return nil
}

func (s *bookService) List(ctx context.Context) ([]*model.BookResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return s.assembleAll(ctx, recs)
}

func (s *bookService) GetSummary(ctx context.Context, id string) (shared.Summary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return shared.Summary{}, apperror.FromStore(err, model.ErrBookNotFound)
	}
	name, _ := rec.Doc["name"].(string)
	return shared.Summary{ID: rec.ID, Name: name}, nil
}

// =====================================================
// REVERSE LOOKUPS
// =====================================================

// LatestByAuthor returns up to limit of the author's books, newest first.
func (s *bookService) LatestByAuthor(ctx context.Context, authorID string, limit int) ([]shared.Summary, error) {
	recs, err := s.gw.FindMatching(ctx, model.Collection,
		store.Eq{Field: "author_id", Value: authorID},
		store.FindOptions{Limit: limit, Newest: true},
	)
	if err != nil {
		return nil, err
	}
	return summaries(recs), nil
}

// CountPublishedByAuthor counts the author's books whose publisher resolves,
// the same rule that sets is_published.
func (s *bookService) CountPublishedByAuthor(ctx context.Context, authorID string) (int, error) {
	recs, err := s.gw.FindMatching(ctx, model.Collection, store.Eq{Field: "author_id", Value: authorID}, store.FindOptions{})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, rec := range recs {
		publisherID, _ := rec.Doc["publisher_id"].(string)
		if _, ok := s.resolvePublisher(ctx, publisherID); ok {
			total++
		}
	}
	return total, nil
}

func (s *bookService) ListByPublisher(ctx context.Context, publisherID string) ([]shared.Summary, error) {
	recs, err := s.gw.FindMatching(ctx, model.Collection, store.Eq{Field: "publisher_id", Value: publisherID}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	return summaries(recs), nil
}

// =====================================================
// ASSEMBLY
// =====================================================

func (s *bookService) Assemble(ctx context.Context, rec store.Record) (*model.BookResponse, error) {
	var b model.Book
	if err := store.Decode(rec, &b); err != nil {
		return nil, apperror.Unexpected(err)
	}

	refs := model.References{}
	refs.Author, _ = shared.ResolveSummary(ctx, s.lookups.Authors, "author_id", b.AuthorID)
	refs.Category, _ = shared.ResolveSummary(ctx, s.lookups.Categories, "category_id", b.CategoryID)
	if b.PublisherID != "" {
		publisher, ok := s.resolvePublisher(ctx, b.PublisherID)
		refs.Publisher = &publisher
		refs.IsPublished = ok
	}

	stats, err := s.lookups.Reviews.StatsForBook(ctx, b.ID)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("book_id", b.ID).Msg("review stats unavailable")
		stats = shared.ReviewStats{}
	}
	refs.Stats = stats

	return b.ToResponse(refs), nil
}

func (s *bookService) assembleAll(ctx context.Context, recs []store.Record) ([]*model.BookResponse, error) {
	out := make([]*model.BookResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *bookService) resolvePublisher(ctx context.Context, id string) (shared.Summary, bool) {
	if id == "" {
		return shared.Summary{}, false
	}
	return shared.ResolveSummary(ctx, s.lookups.Publishers, "publisher_id", id)
}

func summaries(recs []store.Record) []shared.Summary {
	out := make([]shared.Summary, 0, len(recs))
	for _, rec := range recs {
		name, _ := rec.Doc["name"].(string)
		out = append(out, shared.Summary{ID: rec.ID, Name: name})
	}
	return out
}
