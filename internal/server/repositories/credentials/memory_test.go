package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGet(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	c := &models.Credential{Identity: "alice", Salt: []byte("s"), Digest: []byte("d"), Cost: 8}
	require.NoError(t, r.Put(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, []byte("d"), got.Digest)

	// returned copies must not alias stored state
	got.Digest[0] = 'x'
	again, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("d"), again.Digest)
}

func TestMemory_GetMissing(t *testing.T) {
	r := NewMemoryRepository()
	_, err := r.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_PutDuplicate(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, r.Put(ctx, &models.Credential{Identity: "alice", Digest: []byte("1")}))

	err := r.Put(ctx, &models.Credential{Identity: "alice", Digest: []byte("2")})
	assert.ErrorIs(t, err, common.ErrDuplicateIdentity)

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got.Digest, "first record must survive")
}

func TestMemory_ConcurrentPutSingleWinner(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	const n = 32
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Put(ctx, &models.Credential{Identity: "race", Digest: []byte("d")})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, common.ErrDuplicateIdentity):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, dup.Load())
	assert.Equal(t, 1, r.Len())
}

func TestMemory_Rotate(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, r.Put(ctx, &models.Credential{Identity: "bob", Salt: []byte("s1"), Digest: []byte("d1"), Cost: 8}))

	next := &models.Credential{Salt: []byte("s2"), Digest: []byte("d2"), Cost: 10}

	err := r.Rotate(ctx, "bob", []byte("stale"), next)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	require.NoError(t, r.Rotate(ctx, "bob", []byte("d1"), next))
	got, err := r.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []byte("s2"), got.Salt)
	assert.Equal(t, []byte("d2"), got.Digest)
	assert.EqualValues(t, 10, got.Cost)

	assert.ErrorIs(t, r.Rotate(ctx, "ghost", []byte("d1"), next), common.ErrorNotFound)
}

func TestMemory_CancelledContext(t *testing.T) {
	r := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Put(ctx, &models.Credential{Identity: "a"}), common.ErrStore)
	_, err := r.Get(ctx, "a")
	assert.ErrorIs(t, err, common.ErrStore)
}

func TestMemory_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	// salt/digest are base64 in JSON
	seed := `[
		{"identity":"alice","salt":"MDEyMzQ1Njc4OWFiY2RlZg==","digest":"AQ==","cost":8},
		{"identity":"bob","salt":"MDEyMzQ1Njc4OWFiY2RlZg==","digest":"Ag==","cost":8}
	]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	r := NewMemoryRepository()
	n, err := r.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := r.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(got.Salt))
}

func TestMemory_LoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	r := NewMemoryRepository()

	_, err := r.LoadFile(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = r.LoadFile(context.Background(), bad)
	assert.ErrorIs(t, err, common.ErrMalformedCredential)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`[{"identity":"x"},{"identity":"x"}]`), 0o600))
	n, err := NewMemoryRepository().LoadFile(context.Background(), dup)
	assert.ErrorIs(t, err, common.ErrDuplicateIdentity)
	assert.Equal(t, 1, n)
}
