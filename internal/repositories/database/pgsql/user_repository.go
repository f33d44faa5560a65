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

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	role := string(d.Role)
	if role == "" {
		role = string(domain.RoleUser)
	}
	return models.User{
		UserID:            d.UserID,
		Email:             strPtr(d.Email),
		Name:              strPtr(d.Name),
		Photo:             strPtr(d.Photo),
		Role:              role,
		PrimaryProvider:   strPtr(string(d.PrimaryProvider)),
		PrimaryProviderID: strPtr(d.PrimaryProviderID),
		CreatedAt:         d.CreatedAt,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:            m.UserID,
		Email:             strVal(m.Email),
		Name:              strVal(m.Name),
		Photo:             strVal(m.Photo),
		Role:              domain.Role(m.Role),
		PrimaryProvider:   domain.AuthProvider(strVal(m.PrimaryProvider)),
		PrimaryProviderID: strVal(m.PrimaryProviderID),
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

const userColumns = `user_id, email, name, photo, role, primary_provider, primary_provider_id, created_at, last_updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.Photo,
		&m.Role,
		&m.PrimaryProvider,
		&m.PrimaryProviderID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (user_id, email, name, photo, role, primary_provider, primary_provider_id, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.Name,
		m.Photo,
		m.Role,
		m.PrimaryProvider,
		m.PrimaryProviderID,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	u := toDomainUser(*m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	u := toDomainUser(*m)
	return &u, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        UPDATE users
        SET email = $1, name = $2, photo = $3, primary_provider = $4, primary_provider_id = $5, last_updated_at = $6
        WHERE user_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Email,
		m.Name,
		m.Photo,
		m.PrimaryProvider,
		m.PrimaryProviderID,
		m.LastUpdatedAt,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
