package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/utils"
)

const (
	MaxNameLength   = 255
	MaxGenderLength = 50
	MaxAge          = 150
)

type CreateAuthorRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.TrimSpace(r.Gender)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Age, validation.Required, validation.Min(1), validation.Max(MaxAge)),
		validation.Field(&r.Gender, validation.Required, validation.RuneLength(1, MaxGenderLength)),
	)
}

type UpdateAuthorRequest struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

func (r *UpdateAuthorRequest) Normalize() {
	r.Name = utils.TrimPtr(r.Name)
	r.Gender = utils.TrimPtr(r.Gender)
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Age, validation.NilOrNotEmpty, validation.Min(1), validation.Max(MaxAge)),
		validation.Field(&r.Gender, validation.NilOrNotEmpty, validation.RuneLength(1, MaxGenderLength)),
	)
}

func (r UpdateAuthorRequest) Patch(now time.Time) store.Document {
	doc := store.Document{"updated_at": now}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	if r.Age != nil {
		doc["age"] = *r.Age
	}
	if r.Gender != nil {
		doc["gender"] = *r.Gender
	}
	return doc
}
