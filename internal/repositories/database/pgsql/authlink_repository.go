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

type PgxAuthLinkRepository struct {
	db *pgxpool.Pool
}

func newPgxAuthLinkRepository(db *pgxpool.Pool) portsrepo.AuthLinkRepository {
	return &PgxAuthLinkRepository{db: db}
}

var _ portsrepo.AuthLinkRepository = (*PgxAuthLinkRepository)(nil)

func toDomainAccount(m models.AuthLinkAccount) domain.ProviderAccount {
	return domain.ProviderAccount{
		UserID:       m.UserID,
		Provider:     domain.AuthProvider(m.Provider),
		ProviderID:   m.ProviderID,
		Email:        strVal(m.Email),
		Photo:        strVal(m.Photo),
		PasswordHash: strVal(m.PasswordHash),
		LinkedAt:     m.LinkedAt,
	}
}

const accountColumns = `user_id, provider, provider_id, email, photo, password_hash, linked_at`

func scanAccount(row pgx.Row) (*models.AuthLinkAccount, error) {
	var m models.AuthLinkAccount
	err := row.Scan(
		&m.UserID,
		&m.Provider,
		&m.ProviderID,
		&m.Email,
		&m.Photo,
		&m.PasswordHash,
		&m.LinkedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxAuthLinkRepository) FindAccountByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.ProviderAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM auth_link_accounts WHERE provider = $1 AND provider_id = $2;`
	m, err := scanAccount(r.db.QueryRow(ctx, query, string(provider), providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find auth link by provider: %w", err)
	}
	acc := toDomainAccount(*m)
	return &acc, nil
}

func (r *PgxAuthLinkRepository) FindLocalAccountByEmail(ctx context.Context, email string) (*domain.ProviderAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM auth_link_accounts WHERE provider = 'local' AND email = $1;`
	m, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find local auth link by email: %w", err)
	}
	acc := toDomainAccount(*m)
	return &acc, nil
}

func (r *PgxAuthLinkRepository) FindLinkByUserID(ctx context.Context, userID string) (*domain.AuthLink, error) {
	query := `SELECT ` + accountColumns + ` FROM auth_link_accounts WHERE user_id = $1 ORDER BY linked_at;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query auth link accounts: %w", err)
	}
	defer rows.Close()

	link := &domain.AuthLink{
		UserID:   userID,
		Accounts: map[domain.AuthProvider]domain.ProviderAccount{},
	}
	for rows.Next() {
		var m models.AuthLinkAccount
		err := rows.Scan(
			&m.UserID,
			&m.Provider,
			&m.ProviderID,
			&m.Email,
			&m.Photo,
			&m.PasswordHash,
			&m.LinkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auth link row: %w", err)
		}
		acc := toDomainAccount(m)
		link.Accounts[acc.Provider] = acc
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating auth link rows: %w", rows.Err())
	}
	if len(link.Accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return link, nil
}

func (r *PgxAuthLinkRepository) UpsertAccount(ctx context.Context, account domain.ProviderAccount) error {
	// Refresh-on-conflict keyed by (user, provider): relinking the same
	// provider updates credentials in place without touching other rows.
	query := `
        INSERT INTO auth_link_accounts (user_id, provider, provider_id, email, photo, password_hash, linked_at, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $7)
        ON CONFLICT (user_id, provider) DO UPDATE SET
            provider_id = EXCLUDED.provider_id,
            email = EXCLUDED.email,
            photo = EXCLUDED.photo,
            password_hash = COALESCE(EXCLUDED.password_hash, auth_link_accounts.password_hash),
            linked_at = EXCLUDED.linked_at,
            last_updated_at = EXCLUDED.last_updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		account.UserID,
		string(account.Provider),
		account.ProviderID,
		strPtr(account.Email),
		strPtr(account.Photo),
		strPtr(account.PasswordHash),
		account.LinkedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("provider identity already linked: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to upsert auth link account: %w", err)
	}
	return nil
}

func (r *PgxAuthLinkRepository) DeleteAccount(ctx context.Context, provider domain.AuthProvider, providerID string) error {
	query := `DELETE FROM auth_link_accounts WHERE provider = $1 AND provider_id = $2;`
	_, err := r.db.Exec(ctx, query, string(provider), providerID)
	if err != nil {
		return fmt.Errorf("failed to delete auth link account: %w", err)
	}
	return nil
}
