package model

import (
	"time"

	"bookstore-catalog/internal/shared"
	"bookstore-catalog/internal/shared/utils"
)

const Collection = "reviews"

// SummaryLength is the rune cap on the content embedded in a review summary.
const SummaryLength = 100

type Review struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	CreatedByID string    `json:"created_by_id"`
	BookID      string    `json:"book_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReviewResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Rating    int            `json:"rating"`
	CreatedBy shared.Summary `json:"created_by"`
	Book      shared.Summary `json:"book"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ReviewSummary is the lightweight shape of a review: its id and a content
// snippet.
type ReviewSummary struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func (r *Review) ToResponse(createdBy, book shared.Summary) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedBy: createdBy,
		Book:      book,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *Review) ToSummary() *ReviewSummary {
	return &ReviewSummary{ID: r.ID, Content: utils.Truncate(r.Content, SummaryLength)}
}
