package service

import (
	"context"

	"github.com/rs/zerolog"

	"bookstore-catalog/internal/domains/publisher/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

// publisherService implements ServiceInterface
type publisherService struct {
	gw    store.Gateway
	books BookLookup
	clock shared.Clock
}

func NewPublisherService(gw store.Gateway, books BookLookup, clock shared.Clock) ServiceInterface {
	return &publisherService{gw: gw, books: books, clock: clock}
}

func (s *publisherService) Create(ctx context.Context, req model.CreatePublisherRequest) (*model.PublisherResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", req.Name, "", model.ErrDuplicatePublisherName); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc, err := store.Encode(model.Publisher{
		Name:      req.Name,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrPublisherNotFound, model.ErrDuplicatePublisherName)
	}
	return s.Get(ctx, id)
}

func (s *publisherService) Get(ctx context.Context, id string) (*model.PublisherResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrPublisherNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *publisherService) Update(ctx context.Context, id string, req model.UpdatePublisherRequest) (*model.PublisherResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.Name != nil {
		if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", *req.Name, id, model.ErrDuplicatePublisherName); err != nil {
			return nil, err
		}
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, req.Patch(s.clock.Now()))
	if err != nil {
		return nil, shared.WriteError(err, model.ErrPublisherNotFound, model.ErrDuplicatePublisherName)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrPublisherNotFound)
	}
	return s.Get(ctx, id)
}

func (s *publisherService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrPublisherNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrPublisherNotFound)
	}
	return nil
}

func (s *publisherService) List(ctx context.Context) ([]*model.PublisherResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	out := make([]*model.PublisherResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *publisherService) GetSummary(ctx context.Context, id string) (shared.Summary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return shared.Summary{}, apperror.FromStore(err, model.ErrPublisherNotFound)
	}
	name, _ := rec.Doc["name"].(string)
	return shared.Summary{ID: rec.ID, Name: name}, nil
}

// Assemble embeds the publisher's books. A failed book lookup leaves the
// list empty rather than failing the read.
func (s *publisherService) Assemble(ctx context.Context, rec store.Record) (*model.PublisherResponse, error) {
	var p model.Publisher
	if err := store.Decode(rec, &p); err != nil {
		return nil, apperror.Unexpected(err)
	}

	books, err := s.books.ListByPublisher(ctx, p.ID)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("publisher_id", p.ID).Msg("publisher books unavailable")
		books = nil
	}
	return p.ToResponse(books), nil
}
