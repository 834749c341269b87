package model

import (
	"time"

	"bookstore-catalog/internal/shared"
)

const Collection = "authors"

// LatestBooksLimit caps the latest_books list of an author.
const LatestBooksLimit = 5

type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthorResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Age            int              `json:"age"`
	Gender         string           `json:"gender"`
	LatestBooks    []shared.Summary `json:"latest_books"`
	TotalPublished int              `json:"total_published"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (a *Author) ToResponse(latest []shared.Summary, totalPublished int) *AuthorResponse {
	if latest == nil {
		latest = []shared.Summary{}
	}
	return &AuthorResponse{
		ID:             a.ID,
		Name:           a.Name,
		Age:            a.Age,
		Gender:         a.Gender,
		LatestBooks:    latest,
		TotalPublished: totalPublished,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
