package passhash

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/credvault/internal/common"
	"golang.org/x/sync/semaphore"
)

// Hasher computes digests with a default cost and bounds how many Argon2
// computations run at once. Argon2 is memory-hard, so unbounded concurrency
// turns a burst of logins into a burst of allocations.
//
// A Hasher holds no mutable state besides the semaphore and is safe for
// concurrent use.
type Hasher struct {
	cost Cost
	sem  *semaphore.Weighted

	computations atomic.Uint64
}

// NewHasher returns a Hasher using cost for new credentials. maxConcurrent <= 0
// disables the limiter.
func NewHasher(cost Cost, maxConcurrent int) (*Hasher, error) {
	if err := cost.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hash cost: %w", err)
	}
	h := &Hasher{cost: cost}
	if maxConcurrent > 0 {
		h.sem = semaphore.NewWeighted(int64(maxConcurrent))
	}
	return h, nil
}

// Cost returns the cost used for new credentials.
func (h *Hasher) Cost() Cost {
	return h.cost
}

// Compute runs ComputeDigest once a concurrency slot is available. Giving up on
// the wait because ctx is done is reported as common.ErrHashing. Once started,
// the computation is not interrupted.
func (h *Hasher) Compute(ctx context.Context, password string, salt Salt, cost Cost) (Digest, error) {
	if h.sem != nil {
		if err := h.sem.Acquire(ctx, 1); err != nil {
			return Digest{}, fmt.Errorf("%w: waiting for hashing slot: %v", common.ErrHashing, err)
		}
		defer h.sem.Release(1)
	}
	h.computations.Add(1)
	return ComputeDigest(password, salt, cost)
}

// Computations reports how many digest computations this Hasher has started.
func (h *Hasher) Computations() uint64 {
	return h.computations.Load()
}

// New generates a fresh salt and computes its digest with the default cost.
func (h *Hasher) New(ctx context.Context, password string) (Salt, Digest, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return Salt{}, Digest{}, err
	}
	d, err := h.Compute(ctx, password, salt, h.cost)
	if err != nil {
		return Salt{}, Digest{}, err
	}
	return salt, d, nil
}
