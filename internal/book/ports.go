package book

import "context"

// Repository is the catalog store.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, id string, upd Update) (Book, error)
	Delete(ctx context.Context, id string) error
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]Book, error)
	SearchByTitle(ctx context.Context, title string) ([]Book, error)
	SearchByReviewText(ctx context.Context, text string) ([]Book, error)
	FirstByTitle(ctx context.Context, title string) (Book, error)

	// AddReview persists the standalone review record and appends a copy to
	// the owning book's embedded sequence.
	AddReview(ctx context.Context, rev *Review) error
	// DeleteReviewsByBook removes all standalone reviews referencing bookID
	// and reports how many were deleted. It does not touch the embedded
	// copies on the book itself.
	DeleteReviewsByBook(ctx context.Context, bookID string) (int64, error)
}
