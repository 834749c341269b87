package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/utils"
)

const (
	MaxNameLength     = 255
	MaxLocationLength = 255
)

type CreatePublisherRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (r *CreatePublisherRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
}

func (r CreatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Location, validation.Required, validation.RuneLength(1, MaxLocationLength)),
	)
}

type UpdatePublisherRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

func (r *UpdatePublisherRequest) Normalize() {
	r.Name = utils.TrimPtr(r.Name)
	r.Location = utils.TrimPtr(r.Location)
}

func (r UpdatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Location, validation.NilOrNotEmpty, validation.RuneLength(1, MaxLocationLength)),
	)
}

func (r UpdatePublisherRequest) Patch(now time.Time) store.Document {
	doc := store.Document{"updated_at": now}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	if r.Location != nil {
		doc["location"] = *r.Location
	}
	return doc
}
