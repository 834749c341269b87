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

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
	)
}

// UpdateCategoryRequest is a partial update; nil fields are left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r *UpdateCategoryRequest) Normalize() {
	r.Name = utils.TrimPtr(r.Name)
	r.Description = utils.TrimPtr(r.Description)
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
	)
}

// Patch returns the supplied fields plus the refreshed updated_at.
func (r UpdateCategoryRequest) Patch(now time.Time) store.Document {
	doc := store.Document{"updated_at": now}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	if r.Description != nil {
		doc["description"] = *r.Description
	}
	return doc
}
