package credentials

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps credentials in a map keyed by identity. It is safe
// for concurrent use and satisfies the service's CredentialStore.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Credential
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Credential)}
}

func clone(c models.Credential) models.Credential {
	c.Salt = bytes.Clone(c.Salt)
	c.Digest = bytes.Clone(c.Digest)
	return c
}

func (r *MemoryRepository) Put(ctx context.Context, c *models.Credential) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStore, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.Identity]; ok {
		return common.ErrDuplicateIdentity
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	r.items[c.Identity] = clone(*c)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, identity string) (*models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStore, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[identity]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c = clone(c)
	return &c, nil
}

// Rotate replaces the salt and digest of identity when the stored digest still
// equals expected. A mismatch means another writer won and yields ErrorUnauthorized.
func (r *MemoryRepository) Rotate(ctx context.Context, identity string, expected []byte, next *models.Credential) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStore, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[identity]
	if !ok {
		return common.ErrorNotFound
	}
	if subtle.ConstantTimeCompare(cur.Digest, expected) != 1 {
		return common.ErrorUnauthorized
	}

	cur.Salt = bytes.Clone(next.Salt)
	cur.Digest = bytes.Clone(next.Digest)
	cur.Cost = next.Cost
	cur.UpdatedAt = time.Now().UTC()
	r.items[identity] = cur
	return nil
}

// LoadFile seeds the repository from a JSON array of credentials. Records
// whose identity is already present are rejected.
func (r *MemoryRepository) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var seed []models.Credential
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("%w: parse seed file: %w", common.ErrMalformedCredential, err)
	}

	for i := range seed {
		if err := r.Put(ctx, &seed[i]); err != nil {
			return i, fmt.Errorf("seed %q: %w", seed[i].Identity, err)
		}
	}
	return len(seed), nil
}

// Len reports the number of stored credentials.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
