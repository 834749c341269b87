package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"bookstore-catalog/internal/domains/user/model"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/apperror"
)

// userService implements ServiceInterface
type userService struct {
	gw         store.Gateway
	reviews    ReviewCounter
	bcryptCost int
	clock      shared.Clock
}

// NewUserService - bcryptCost outside bcrypt's range falls back to
// bcrypt.DefaultCost.
func NewUserService(gw store.Gateway, reviews ReviewCounter, bcryptCost int, clock shared.Clock) ServiceInterface {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{gw: gw, reviews: reviews, bcryptCost: bcryptCost, clock: clock}
}

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	// 1. NORMALIZE + VALIDATE
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	// 2. CHECK EMAIL UNIQUENESS
	if err := shared.CheckUnique(ctx, s.gw, model.Collection, "email", req.Email, "", model.ErrEmailAlreadyExists); err != nil {
		return nil, err
	}

	// 3. HASH PASSWORD
	passwordHash, err := s.hash(req.Password)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	// 4. INSERT
	now := s.clock.Now()
	doc, err := store.Encode(model.User{
		Name:         req.Name,
		Email:        req.Email,
		Gender:       req.Gender,
		PhoneNumber:  req.PhoneNumber,
		Age:          req.Age,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	id, err := s.gw.Insert(ctx, model.Collection, doc)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrUserNotFound, model.ErrEmailAlreadyExists)
	}
	return s.Get(ctx, id)
}

func (s *userService) Get(ctx context.Context, id string) (*model.UserResponse, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return nil, apperror.FromStore(err, model.ErrUserNotFound)
	}
	return s.Assemble(ctx, rec)
}

func (s *userService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.UserResponse, error) {
	if err := store.CheckID(id); err != nil {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.Email != nil {
		if err := shared.CheckUnique(ctx, s.gw, model.Collection, "email", *req.Email, id, model.ErrEmailAlreadyExists); err != nil {
			return nil, err
		}
	}

	patch := req.Patch(s.clock.Now())
	if req.Password != nil {
		passwordHash, err := s.hash(*req.Password)
		if err != nil {
			return nil, apperror.Unexpected(err)
		}
		patch["password_hash"] = passwordHash
	}

	matched, err := s.gw.UpdateByID(ctx, model.Collection, id, patch)
	if err != nil {
		return nil, shared.WriteError(err, model.ErrUserNotFound, model.ErrEmailAlreadyExists)
	}
	if matched == 0 {
		return nil, apperror.NotFound(model.ErrUserNotFound)
	}
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	deleted, err := s.gw.DeleteByID(ctx, model.Collection, id)
	if err != nil {
		return apperror.FromStore(err, model.ErrUserNotFound)
	}
	if deleted == 0 {
		return apperror.NotFound(model.ErrUserNotFound)
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]*model.UserResponse, error) {
	recs, err := s.gw.FindAll(ctx, model.Collection)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	out := make([]*model.UserResponse, 0, len(recs))
	for _, rec := range recs {
		resp, err := s.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *userService) GetSummary(ctx context.Context, id string) (shared.Summary, error) {
	rec, err := s.gw.FindByID(ctx, model.Collection, id)
	if err != nil {
		return shared.Summary{}, apperror.FromStore(err, model.ErrUserNotFound)
	}
	name, _ := rec.Doc["name"].(string)
	return shared.Summary{ID: rec.ID, Name: name}, nil
}

// Assemble adds total_reviews; a failed count reports 0.
func (s *userService) Assemble(ctx context.Context, rec store.Record) (*model.UserResponse, error) {
	var u model.User
	if err := store.Decode(rec, &u); err != nil {
		return nil, apperror.Unexpected(err)
	}

	total, err := s.reviews.CountByUser(ctx, u.ID)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("user_id", u.ID).Msg("review count unavailable")
		total = 0
	}
	return u.ToResponse(total), nil
}

func (s *userService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
