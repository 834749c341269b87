package model

import (
	"time"

	"bookstore-catalog/internal/shared"
)

const Collection = "publishers"

type Publisher struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublisherResponse embeds every book published under this publisher.
type PublisherResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Location  string           `json:"location"`
	Books     []shared.Summary `json:"books"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (p *Publisher) ToResponse(books []shared.Summary) *PublisherResponse {
	if books == nil {
		books = []shared.Summary{}
	}
	return &PublisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		Location:  p.Location,
		Books:     books,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
