package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/utils"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 5000
)

// CreateBookRequest - request body for POST /books
type CreateBookRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AuthorID    string `json:"author_id"`
	CategoryID  string `json:"category_id"`
	PublisherID string `json:"publisher_id"`
}

func (r *CreateBookRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.AuthorID = strings.TrimSpace(r.AuthorID)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.PublisherID = strings.TrimSpace(r.PublisherID)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(1, MaxDescriptionLength)),
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.CategoryID, validation.Required),
	)
}

// UpdateBookRequest - request body for PUT /books/:id. An empty publisher_id
// unpublishes the book.
type UpdateBookRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AuthorID    *string `json:"author_id"`
	CategoryID  *string `json:"category_id"`
	PublisherID *string `json:"publisher_id"`
}

func (r *UpdateBookRequest) Normalize() {
	r.Name = utils.TrimPtr(r.Name)
	r.Description = utils.TrimPtr(r.Description)
	r.AuthorID = utils.TrimPtr(r.AuthorID)
	r.CategoryID = utils.TrimPtr(r.CategoryID)
	r.PublisherID = utils.TrimPtr(r.PublisherID)
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(1, MaxDescriptionLength)),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty),
	)
}

func (r UpdateBookRequest) Patch(now time.Time) store.Document {
	doc := store.Document{"updated_at": now}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	if r.Description != nil {
		doc["description"] = *r.Description
	}
	if r.AuthorID != nil {
		doc["author_id"] = *r.AuthorID
	}
	if r.CategoryID != nil {
		doc["category_id"] = *r.CategoryID
	}
	if r.PublisherID != nil {
		doc["publisher_id"] = *r.PublisherID
	}
	return doc
}
