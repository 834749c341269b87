package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/utils"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxContentLength = 5000
)

type CreateReviewRequest struct {
	Content     string `json:"content"`
	Rating      int    `json:"rating"`
	CreatedByID string `json:"created_by_id"`
	BookID      string `json:"book_id"`
}

func (r *CreateReviewRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.CreatedByID = strings.TrimSpace(r.CreatedByID)
	r.BookID = strings.TrimSpace(r.BookID)
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.RuneLength(1, MaxContentLength)),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(MinRating), validation.Max(MaxRating),
		),
		validation.Field(&r.CreatedByID, validation.Required),
		validation.Field(&r.BookID, validation.Required),
	)
}

// UpdateReviewRequest only lets the author revise the text and the rating.
type UpdateReviewRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

func (r *UpdateReviewRequest) Normalize() {
	r.Content = utils.TrimPtr(r.Content)
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.RuneLength(1, MaxContentLength)),
		validation.Field(&r.Rating, validation.NilOrNotEmpty, validation.Min(MinRating), validation.Max(MaxRating)),
	)
}

func (r UpdateReviewRequest) Patch(now time.Time) store.Document {
	doc := store.Document{"updated_at": now}
	if r.Content != nil {
		doc["content"] = *r.Content
	}
	if r.Rating != nil {
		doc["rating"] = *r.Rating
	}
	return doc
}
