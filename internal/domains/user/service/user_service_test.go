package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookstore-catalog/internal/domains/user/model"
	"bookstore-catalog/internal/domains/user/service"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/apperror"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeReviews struct {
	counts map[string]int
	err    error
}

func (f *fakeReviews) CountByUser(_ context.Context, userID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[userID], nil
}

func setup(t *testing.T, reviews *fakeReviews) (service.ServiceInterface, store.Gateway) {
	t.Helper()
	gw, err := store.NewMemoryStore(store.CollectionSpec{Name: model.Collection, Unique: []string{"email"}})
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return service.NewUserService(gw, reviews, bcrypt.MinCost, clock.Now), gw
}

func validUser(email string) model.CreateUserRequest {
	return model.CreateUserRequest{
		Name:        "Alice Smith",
		Email:       email,
		Gender:      "Female",
		PhoneNumber: "+12345678901",
		Age:         28,
		Password:    "strongpassword123",
	}
}

func strPtr(s string) *string { return &s }

func storedHash(t *testing.T, gw store.Gateway, id string) string {
	t.Helper()
	rec, err := gw.FindByID(context.Background(), model.Collection, id)
	require.NoError(t, err)
	hash, _ := rec.Doc["password_hash"].(string)
	return hash
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	svc, gw := setup(t, &fakeReviews{})

	created, err := svc.Create(context.Background(), validUser("  Alice@Example.COM "))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, 0, created.TotalReviews)

	hash := storedHash(t, gw, created.ID)
	require.NotEmpty(t, hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("strongpassword123")))

	body, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
}

func TestUserService_EmailIsUniqueCaseInsensitively(t *testing.T) {
	svc, _ := setup(t, &fakeReviews{})
	ctx := context.Background()

	_, err := svc.Create(ctx, validUser("alice@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validUser("ALICE@example.com"))
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)

	other, err := svc.Create(ctx, validUser("bob@example.com"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, other.ID, model.UpdateUserRequest{Email: strPtr("Alice@Example.com")})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserService_Validation(t *testing.T) {
	svc, _ := setup(t, &fakeReviews{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *model.CreateUserRequest)
	}{
		{"bad email", func(r *model.CreateUserRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *model.CreateUserRequest) { r.Password = "short" }},
		{"bad phone", func(r *model.CreateUserRequest) { r.PhoneNumber = "call me" }},
		{"no age", func(r *model.CreateUserRequest) { r.Age = 0 }},
		{"no name", func(r *model.CreateUserRequest) { r.Name = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUser("v@example.com")
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc, gw := setup(t, &fakeReviews{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validUser("alice@example.com"))
	require.NoError(t, err)
	before := storedHash(t, gw, created.ID)

	updated, err := svc.Update(ctx, created.ID, model.UpdateUserRequest{Password: strPtr("anotherpassword")})
	require.NoError(t, err)
	assert.Equal(t, created.Email, updated.Email)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	after := storedHash(t, gw, created.ID)
	assert.NotEqual(t, before, after)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after), []byte("anotherpassword")))

	// a profile-only update leaves the hash alone
	_, err = svc.Update(ctx, created.ID, model.UpdateUserRequest{Gender: strPtr("Other")})
	require.NoError(t, err)
	assert.Equal(t, after, storedHash(t, gw, created.ID))
}

func TestUserService_TotalReviews(t *testing.T) {
	reviews := &fakeReviews{counts: map[string]int{}}
	svc, _ := setup(t, reviews)
	ctx := context.Background()

	created, err := svc.Create(ctx, validUser("alice@example.com"))
	require.NoError(t, err)

	reviews.counts[created.ID] = 3
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalReviews)

	reviews.err = errors.New("down")
	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalReviews)
}

func TestUserService_SummaryAndDelete(t *testing.T) {
	svc, _ := setup(t, &fakeReviews{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validUser("alice@example.com"))
	require.NoError(t, err)

	s, err := svc.GetSummary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", s.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = svc.GetSummary(ctx, "zzz")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidIdentifier))
}
