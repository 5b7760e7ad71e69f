package credentials

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/server/models"
)

// Repository is the row-level access to stored credentials. SQL
// implementations are bound to a dbx.DBTX so they can run inside a transaction.
type Repository interface {
	Create(ctx context.Context, c *models.Credential) (*models.Credential, error)
	GetByIdentity(ctx context.Context, identity string) (*models.Credential, error)
	GetByIdentityForUpdate(ctx context.Context, identity string) (*models.Credential, error)
	UpdateSecret(ctx context.Context, c *models.Credential) error
}
