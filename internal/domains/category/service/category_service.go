package service

import (
	"context"

	"bookstore-catalog/internal/domains/category/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

type categoryService struct {
	gw    store.Gateway
	clock shared.Clock
}

func NewCategoryService(gw store.Gateway, clock shared.Clock) ServiceInterface {
	return &categoryService{gw: gw, clock: clock}
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.CategoryResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", req.Name, "", model.ErrDuplicateCategoryName); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc, err := store.Encode(model.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrCategoryNotFound, model.ErrDuplicateCategoryName)
	}
	return s.Get(ctx, id)
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.CategoryResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrCategoryNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *categoryService) Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.CategoryResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.Name != nil {
		if err := shared.CheckUnique(ctx, s.gw, model.Collection, "name", *req.Name, id, model.ErrDuplicateCategoryName); err != nil {
			return nil, err
		}
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, req.Patch(s.clock.Now()))
	if err != nil {
		return nil, shared.WriteError(err, model.ErrCategoryNotFound, model.ErrDuplicateCategoryName)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrCategoryNotFound)
	}
	return s.Get(ctx, id)
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrCategoryNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrCategoryNotFound)
	}
	return nil
}

func (s *categoryService) List(ctx context.Context) ([]*model.CategoryResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	out := make([]*model.CategoryResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *categoryService) GetSummary(ctx context.Context, id string) (shared.Summary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return shared.Summary{}, apperror.FromStore(err, model.ErrCategoryNotFound)
	}
	name, _ := rec.Doc["name"].(string)
	return shared.Summary{ID: rec.ID, Name: name}, nil
}

// Categories reference nothing, so assembly is a plain decode.
func (s *categoryService) Assemble(ctx context.Context, rec store.Record) (*model.CategoryResponse, error) {
	var c model.Category
	if err := store.Decode(rec, &c); err != nil {
		return nil, apperror.Unexpected(err)
	}
	return c.ToResponse(), nil
}
