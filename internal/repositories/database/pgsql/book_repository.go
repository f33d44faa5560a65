package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portsrepo "github.com/bookshare/bookshare_backend/internal/core/ports/repositories"
	"github.com/bookshare/bookshare_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBookRepository struct {
	db *pgxpool.Pool
}

func newPgxBookRepository(db *pgxpool.Pool) portsrepo.BookRepository {
	return &PgxBookRepository{db: db}
}

var _ portsrepo.BookRepository = (*PgxBookRepository)(nil)

func toModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:        d.BookID,
		Title:         d.Title,
		Author:        strPtr(d.Author),
		Description:   strPtr(d.Description),
		Tags:          d.Tags,
		PDFPath:       d.PDFPath,
		CoverPath:     strPtr(d.CoverPath),
		IsActive:      d.IsActive,
		CreatedBy:     d.CreatedBy,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

func toDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:        m.BookID,
		Title:         m.Title,
		Author:        strVal(m.Author),
		Description:   strVal(m.Description),
		Tags:          m.Tags,
		PDFPath:       m.PDFPath,
		CoverPath:     strVal(m.CoverPath),
		IsActive:      m.IsActive,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func toDomainBookSlice(ms []models.Book) []domain.Book {
	ds := make([]domain.Book, len(ms))
	for i, m := range ms {
		ds[i] = toDomainBook(m)
	}
	return ds
}

const bookColumns = `book_id, title, author, description, tags, pdf_path, cover_path, is_active, created_by, created_at, last_updated_at`

func scanBookRow(scan func(dest ...any) error) (*models.Book, error) {
	var m models.Book
	err := scan(
		&m.BookID,
		&m.Title,
		&m.Author,
		&m.Description,
		&m.Tags,
		&m.PDFPath,
		&m.CoverPath,
		&m.IsActive,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	m := toModelBook(book)
	query := `
        INSERT INTO books (book_id, title, author, description, tags, pdf_path, cover_path, is_active, created_by, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.BookID,
		m.Title,
		m.Author,
		m.Description,
		m.Tags,
		m.PDFPath,
		m.CoverPath,
		m.IsActive,
		m.CreatedBy,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1;`
	row := r.db.QueryRow(ctx, query, bookID)
	m, err := scanBookRow(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID %s: %w", bookID, err)
	}
	b := toDomainBook(*m)
	return &b, nil
}

func (r *PgxBookRepository) ListVisibleBooks(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	// IS DISTINCT FROM keeps legacy rows where the flag was never written.
	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE is_active IS DISTINCT FROM FALSE
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	modelBooks := []models.Book{}
	for rows.Next() {
		m, err := scanBookRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		modelBooks = append(modelBooks, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	return toDomainBookSlice(modelBooks), nil
}

func (r *PgxBookRepository) FindVisibleBooksByIDs(ctx context.Context, bookIDs []string) ([]domain.Book, error) {
	if len(bookIDs) == 0 {
		return []domain.Book{}, nil
	}

	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE book_id = ANY($1) AND is_active IS DISTINCT FROM FALSE;
    `
	rows, err := r.db.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by IDs: %w", err)
	}
	defer rows.Close()

	modelBooks := []models.Book{}
	for rows.Next() {
		m, err := scanBookRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		modelBooks = append(modelBooks, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	return toDomainBookSlice(modelBooks), nil
}
