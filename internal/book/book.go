package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no book (or review) matches the lookup. Empty
// search results are reported as not-found rather than as an empty list; the
// HTTP layer turns this into a 404.
var ErrNotFound = errors.New("not found")

// Review is a standalone review record. A denormalized copy of it is also
// appended to the owning book's Reviews sequence on write.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"review"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a catalog entry. Reviews holds embedded copies of the book's
// reviews; the sequence is append-only from the service's point of view.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Reviews   []Review  `json:"reviews"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update carries the optional fields of a partial book update. Nil means
// "leave unchanged".
type Update struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
}
