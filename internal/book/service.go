package book

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides catalog business logic over books and their reviews.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all books. An empty catalog is reported as ErrNotFound.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNotFound
	}
	return books, nil
}

// Create inserts a new book with an empty review sequence.
func (s *Service) Create(ctx context.Context, b *Book) error {
	return s.repo.Create(ctx, b)
}

// Update applies a partial update and returns the post-update record.
func (s *Service) Update(ctx context.Context, id string, upd Update) (Book, error) {
	return s.repo.Update(ctx, id, upd)
}

// Delete removes a book by id. There is no existence check; deleting a
// missing id still succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetByISBN returns the book with the exact ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// FindByAuthor returns books whose author contains the substring,
// case-insensitively. Empty results are ErrNotFound.
func (s *Service) FindByAuthor(ctx context.Context, author string) ([]Book, error) {
	return nonEmpty(s.repo.SearchByAuthor(ctx, author))
}

// FindByTitle returns books whose title contains the substring,
// case-insensitively. Empty results are ErrNotFound.
func (s *Service) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return nonEmpty(s.repo.SearchByTitle(ctx, title))
}

// FindByReviewText returns books with an embedded review containing the
// substring, case-insensitively. Empty results are ErrNotFound.
func (s *Service) FindByReviewText(ctx context.Context, text string) ([]Book, error) {
	return nonEmpty(s.repo.SearchByReviewText(ctx, text))
}

// ReviewsByTitle resolves the first book matching the title substring and
// returns its embedded reviews.
func (s *Service) ReviewsByTitle(ctx context.Context, title string) ([]Review, error) {
	b, err := s.repo.FirstByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return b.Reviews, nil
}

// AddReview resolves the book by title substring and records a review
// authored by userID: one standalone record plus one embedded copy appended
// to the book.
func (s *Service) AddReview(ctx context.Context, title string, rating int, text, userID string) (Review, error) {
	b, err := s.repo.FirstByTitle(ctx, title)
	if err != nil {
		return Review{}, err
	}

	rev := Review{
		ID:        uuid.NewString(),
		BookID:    b.ID,
		Rating:    rating,
		Text:      text,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddReview(ctx, &rev); err != nil {
		return Review{}, err
	}
	return rev, nil
}

// DeleteReviewsForBook bulk-deletes the standalone reviews referencing
// bookID. Zero deletions are reported as ErrNotFound. The embedded copies on
// the book are left in place.
func (s *Service) DeleteReviewsForBook(ctx context.Context, bookID string) (int64, error) {
	count, err := s.repo.DeleteReviewsByBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNotFound
	}
	return count, nil
}

func nonEmpty(books []Book, err error) ([]Book, error) {
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNotFound
	}
	return books, nil
}
