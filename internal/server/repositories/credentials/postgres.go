package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func storeError(err error) error {
	return fmt.Errorf("%w: db error: %w", common.ErrStore, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Credential) (*models.Credential, error) {

	query :=
		`INSERT INTO credentials (id, identity, salt, digest, cost)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Identity, c.Salt, c.Digest, c.Cost).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, storeError(err)
	}

	return c, nil
}

func (r *PostgresRepository) get(ctx context.Context, query, identity string) (*models.Credential, error) {
	c := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, identity).
		Scan(&c.ID, &c.Identity, &c.Salt, &c.Digest, &c.Cost, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, storeError(err)
	}

	return c, nil
}

func (r *PostgresRepository) GetByIdentity(ctx context.Context, identity string) (*models.Credential, error) {
	query :=
		`SELECT id, identity, salt, digest, cost, created_at, updated_at FROM credentials
		 WHERE identity = $1
		 `
	return r.get(ctx, query, identity)
}

// GetByIdentityForUpdate locks the row until the surrounding transaction ends.
func (r *PostgresRepository) GetByIdentityForUpdate(ctx context.Context, identity string) (*models.Credential, error) {
	query :=
		`SELECT id, identity, salt, digest, cost, created_at, updated_at FROM credentials
		 WHERE identity = $1
		 FOR UPDATE
		 `
	return r.get(ctx, query, identity)
}

// UpdateSecret replaces salt, digest and cost of an existing credential.
func (r *PostgresRepository) UpdateSecret(ctx context.Context, c *models.Credential) error {
	query :=
		`UPDATE credentials SET salt = $2, digest = $3, cost = $4, updated_at = now()
		 WHERE identity = $1
		 `

	res, err := r.db.ExecContext(ctx, query, c.Identity, c.Salt, c.Digest, c.Cost)
	if err != nil {
		return storeError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeError(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
