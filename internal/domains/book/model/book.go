package model

import (
	"time"

	"bookstore-catalog/internal/shared"
)

const Collection = "books"

// Book is the stored shape. PublisherID is empty for unpublished books.
type Book struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AuthorID    string    `json:"author_id"`
	CategoryID  string    `json:"category_id"`
	PublisherID string    `json:"publisher_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookResponse is the assembled book. Publisher is omitted, not defaulted,
// when the book has no publisher id.
type BookResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Author        shared.Summary  `json:"author"`
	Category      shared.Summary  `json:"category"`
	Publisher     *shared.Summary `json:"publisher,omitempty"`
	IsPublished   bool            `json:"is_published"`
	AverageRating *float64        `json:"average_rating"`
	TotalReviews  int             `json:"total_reviews"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// References holds the resolved references of one book.
type References struct {
	Author      shared.Summary
	Category    shared.Summary
	Publisher   *shared.Summary
	IsPublished bool
	Stats       shared.ReviewStats
}

func (b *Book) ToResponse(refs References) *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		Author:        refs.Author,
		Category:      refs.Category,
		Publisher:     refs.Publisher,
		IsPublished:   refs.IsPublished,
		AverageRating: refs.Stats.Average,
		TotalReviews:  refs.Stats.Total,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *Book) ToSummary() shared.Summary {
	return shared.Summary{ID: b.ID, Name: b.Name}
}
