package service

import (
	"context"

	"github.com/rs/zerolog"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type authorService struct {
	gw    store.Gateway
	books BookLookup
	clock shared.Clock
}

func NewAuthorService(gw store.Gateway, books BookLookup, clock shared.Clock) ServiceInterface {
	return &authorService{gw: gw, books: books, clock: clock}
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", req.Name, "", model.ErrDuplicateAuthorName); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc, err := store.Encode(model.Author{
		Name:      req.Name,
		Age:       req.Age,
		Gender:    req.Gender,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrAuthorNotFound, model.ErrDuplicateAuthorName)
	}
	return s.Get(ctx, id)
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

func (s *authorService) Get(ctx context.Context, id string) (*model.AuthorResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrAuthorNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *authorService) List(ctx context.Context) ([]*model.AuthorResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	out := make([]*model.AuthorResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *authorService) GetSummary(ctx context.Context, id string) (shared.Summary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return shared.Summary{}, apperror.FromStore(err, model.ErrAuthorNotFound)
	}
	name, _ := rec.Doc["name"].(string)
	return shared.Summary{ID: rec.ID, Name: name}, nil
}

// ════════════════════════════════════════════════════════════════
// UPDATE / DELETE
// ════════════════════════════════════════════════════════════════

func (s *authorService) Update(ctx context.Context, id string, req model.UpdateAuthorRequest) (*model.AuthorResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.Name != nil {
		if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", *req.Name, id, model.ErrDuplicateAuthorName); err != nil {
			return nil, err
		}
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, req.Patch(s.clock.Now()))
	if err != nil {
		return nil, shared.WriteError(err, model.ErrAuthorNotFound, model.ErrDuplicateAuthorName)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrAuthorNotFound)
	}
	return s.Get(ctx, id)
}

func (s *authorService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrAuthorNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrAuthorNotFound)
	}
	return nil
}

// ════════════════════════════════════════════════════════════════
// ASSEMBLY
// ════════════════════════════════════════════════════════════════

// Assemble adds the author's newest books and published count. Either lookup
// failing leaves its field at the zero value.
func (s *authorService) Assemble(ctx context.Context, rec store.Record) (*model.AuthorResponse, error) {
	var a model.Author
	if err := store.Decode(rec, &a); err != nil {
		return nil, apperror.Unexpected(err)
	}

	logger := zerolog.Ctx(ctx)
	latest, err := s.books.LatestByAuthor(ctx, a.ID, model.LatestBooksLimit)
	if err != nil {
		logger.Debug().Err(err).Str("author_id", a.ID).Msg("latest books unavailable")
		latest = nil
	}
	published, err := s.books.CountPublishedByAuthor(ctx, a.ID)
	if err != nil {
		logger.Debug().Err(err).Str("author_id", a.ID).Msg("published count unavailable")
		published = 0
	}
	return a.ToResponse(latest, published), nil
}
