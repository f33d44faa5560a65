package pgsql

import (
	"context"
	"fmt"

	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portsrepo "github.com/bookshare/bookshare_backend/internal/core/ports/repositories"
	"github.com/bookshare/bookshare_backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFavoriteRepository struct {
	db *pgxpool.Pool
}

func newPgxFavoriteRepository(db *pgxpool.Pool) portsrepo.FavoriteRepository {
	return &PgxFavoriteRepository{db: db}
}

var _ portsrepo.FavoriteRepository = (*PgxFavoriteRepository)(nil)

func (r *PgxFavoriteRepository) SaveFavorite(ctx context.Context, favorite domain.Favorite) error {
	// DO NOTHING makes re-adding idempotent; the primary key guarantees at
	// most one row per (user, book).
	query := `
        INSERT INTO favorites (user_id, book_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, book_id) DO NOTHING;
    `
	_, err := r.db.Exec(ctx, query, favorite.UserID, favorite.BookID, favorite.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

func (r *PgxFavoriteRepository) RemoveFavorite(ctx context.Context, userID, bookID string) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND book_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxFavoriteRepository) ListFavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	query := `
        SELECT user_id, book_id, created_at
        FROM favorites
        WHERE user_id = $1
        ORDER BY created_at DESC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var m models.Favorite
		if err := rows.Scan(&m.UserID, &m.BookID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, domain.Favorite(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", rows.Err())
	}

	return favorites, nil
}
