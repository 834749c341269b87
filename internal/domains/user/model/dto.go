package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/utils"
)

const (
	MaxNameLength   = 100
	MaxGenderLength = 50
	MaxAge          = 150
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{4,19}$`)

// ========================================
// CREATE
// ========================================

type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
	Password    string `json:"password"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = utils.NormalizeEmail(r.Email)
	r.Gender = strings.TrimSpace(r.Gender)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Gender, validation.Required, validation.RuneLength(1, MaxGenderLength)),
		validation.Field(&r.PhoneNumber,
			validation.Required.Error("phone number is required"),
			validation.Match(phonePattern).Error("invalid phone number"),
		),
		validation.Field(&r.Age, validation.Required, validation.Min(1), validation.Max(MaxAge)),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72).Error("password must be 8-72 characters"),
		),
	)
}

// ========================================
// UPDATE
// ========================================

// UpdateUserRequest is a partial update. A supplied password is re-hashed by
// the service and never reaches Patch.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Gender      *string `json:"gender"`
	PhoneNumber *string `json:"phone_number"`
	Age         *int    `json:"age"`
	Password    *string `json:"password"`
}

func (r *UpdateUserRequest) Normalize() {
	r.Name = utils.TrimPtr(r.Name)
	if r.Email != nil {
		email := utils.NormalizeEmail(*r.Email)
		r.Email = &email
	}
	r.Gender = utils.TrimPtr(r.Gender)
	r.PhoneNumber = utils.TrimPtr(r.PhoneNumber)
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email.Error("invalid email format"), validation.Length(5, 255)),
		validation.Field(&r.Gender, validation.NilOrNotEmpty, validation.RuneLength(1, MaxGenderLength)),
		validation.Field(&r.PhoneNumber, validation.NilOrNotEmpty, validation.Match(phonePattern).Error("invalid phone number")),
		validation.Field(&r.Age, validation.NilOrNotEmpty, validation.Min(1), validation.Max(MaxAge)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(8, 72).Error("password must be 8-72 characters")),
	)
}

// Patch returns the supplied profile fields plus updated_at.
func (r UpdateUserRequest) Patch(now time.Time) store.Document {
	doc := store.Document{"updated_at": now}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	if r.Email != nil {
		doc["email"] = *r.Email
	}
	if r.Gender != nil {
		doc["gender"] = *r.Gender
	}
	if r.PhoneNumber != nil {
		doc["phone_number"] = *r.PhoneNumber
	}
	if r.Age != nil {
		doc["age"] = *r.Age
	}
	return doc
}
