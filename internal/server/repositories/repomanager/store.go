package repomanager

import (
	"context"
	"crypto/subtle"
	"database/sql"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/google/uuid"
)

// PostgresStore adapts the credentials repository to the store handle used by
// the credential service.
type PostgresStore struct {
	db *sql.DB
	m  RepositoryManager
}

func NewPostgresStore(db *sql.DB, m RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, m: m}
}

func (s *PostgresStore) Put(ctx context.Context, c *models.Credential) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.m.Credentials(s.db).Create(ctx, c)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, identity string) (*models.Credential, error) {
	return s.m.Credentials(s.db).GetByIdentity(ctx, identity)
}

// Rotate swaps salt and digest under a row lock, provided the stored digest
// still matches expected.
func (s *PostgresStore) Rotate(ctx context.Context, identity string, expected []byte, next *models.Credential) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.m.Credentials(tx)

		cur, err := repo.GetByIdentityForUpdate(ctx, identity)
		if err != nil {
			return err
		}
		if subtle.ConstantTimeCompare(cur.Digest, expected) != 1 {
			return common.ErrorUnauthorized
		}

		next.Identity = identity
		return repo.UpdateSecret(ctx, next)
	})
}
