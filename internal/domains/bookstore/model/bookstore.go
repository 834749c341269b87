package model

import (
	"time"

	"bookstore-catalog/internal/shared"
)

const Collection = "bookstores"

// BookIDsField is the stored set of book ids stocked by a bookstore.
const BookIDsField = "book_ids"

type Bookstore struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	BookIDs   []string  `json:"book_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookstoreResponse lists the stocked books that still exist.
type BookstoreResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Location  string           `json:"location"`
	Books     []shared.Summary `json:"books"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (b *Bookstore) ToResponse(books []shared.Summary) *BookstoreResponse {
	if books == nil {
		books = []shared.Summary{}
	}
	return &BookstoreResponse{
		ID:        b.ID,
		Name:      b.Name,
		Location:  b.Location,
		Books:     books,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
