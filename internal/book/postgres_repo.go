package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, author, isbn, reviews, created_at, updated_at"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	var reviews []byte
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &reviews, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Book{}, err
	}
	b.Reviews = []Review{}
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &b.Reviews); err != nil {
			return Book{}, err
		}
	}
	return b, nil
}

func collectBooks(rows pgx.Rows) ([]Book, error) {
	defer rows.Close()
	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books ORDER BY created_at", bookColumns)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, title, author, isbn, reviews)
	VALUES (gen_random_uuid(), $1, $2, $3, '[]'::jsonb)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.ISBN).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	b.Reviews = []Review{}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, upd Update) (Book, error) {
	fields := []string{"updated_at = NOW()"}
	args := []any{}
	argn := 1

	if upd.Title != nil {
		fields = append(fields, fmt.Sprintf("title = $%d", argn))
		args = append(args, *upd.Title)
		argn++
	}
	if upd.Author != nil {
		fields = append(fields, fmt.Sprintf("author = $%d", argn))
		args = append(args, *upd.Author)
		argn++
	}
	if upd.ISBN != nil {
		fields = append(fields, fmt.Sprintf("isbn = $%d", argn))
		args = append(args, *upd.ISBN)
		argn++
	}

	query := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d RETURNING %s",
		strings.Join(fields, ", "), argn, bookColumns)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, "DELETE FROM books WHERE id = $1", id)
	return err
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE isbn = $1 LIMIT 1", bookColumns)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) SearchByAuthor(ctx context.Context, author string) ([]Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE author ILIKE $1 ORDER BY created_at", bookColumns)
	return r.search(ctx, query, "%"+author+"%")
}

func (r *PostgresRepo) SearchByTitle(ctx context.Context, title string) ([]Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE title ILIKE $1 ORDER BY created_at", bookColumns)
	return r.search(ctx, query, "%"+title+"%")
}

func (r *PostgresRepo) SearchByReviewText(ctx context.Context, text string) ([]Book, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM books
	WHERE EXISTS (
		SELECT 1 FROM jsonb_array_elements(reviews) AS rev
		WHERE rev->>'review' ILIKE $1
	)
	ORDER BY created_at`, bookColumns)
	return r.search(ctx, query, "%"+text+"%")
}

func (r *PostgresRepo) search(ctx context.Context, query, pattern string) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, pattern)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) FirstByTitle(ctx context.Context, title string) (Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE title ILIKE $1 ORDER BY created_at LIMIT 1", bookColumns)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, "%"+title+"%"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// AddReview runs both halves of the dual write in one transaction: the
// standalone review insert and the embedded-copy append on the book. The
// original system did these as two independent writes; here a crash between
// them cannot leave the two stores disagreeing.
func (r *PostgresRepo) AddReview(ctx context.Context, rev *Review) error {
	embedded, err := json.Marshal(rev)
	if err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return pgx.BeginFunc(timeoutCtx, r.db, func(tx pgx.Tx) error {
		const insertReview = `
		INSERT INTO reviews (id, book_id, rating, review, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(timeoutCtx, insertReview,
			rev.ID, rev.BookID, rev.Rating, rev.Text, rev.UserID, rev.CreatedAt); err != nil {
			return err
		}

		const appendToBook = `
		UPDATE books
		SET reviews = reviews || jsonb_build_array($2::jsonb), updated_at = NOW()
		WHERE id = $1
		`
		tag, err := tx.Exec(timeoutCtx, appendToBook, rev.BookID, string(embedded))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) DeleteReviewsByBook(ctx context.Context, bookID string) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM reviews WHERE book_id = $1", bookID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
