// Package services contains server-side business logic. This file implements
// CredentialService, which creates credentials and verifies passwords against
// them without revealing whether an identity exists.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/passhash"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/go-playground/validator/v10"
)

// CredentialStore is the durable credential store. Put must reject an
// identity that is already present with common.ErrDuplicateIdentity, also
// when two writers race. Get returns common.ErrorNotFound for unknown
// identities. Rotate replaces salt, digest and cost only while the stored
// digest equals expected, and returns common.ErrorUnauthorized otherwise.
type CredentialStore interface {
	Put(ctx context.Context, c *models.Credential) error
	Get(ctx context.Context, identity string) (*models.Credential, error)
	Rotate(ctx context.Context, identity string, expected []byte, next *models.Credential) error
}

// Outcome is the result of a verification. There are exactly two.
type Outcome int

const (
	Rejected Outcome = iota
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

// CredentialService creates and verifies credentials.
type CredentialService struct {
	store        CredentialStore
	hasher       *passhash.Hasher
	logger       logging.Logger
	validate     *validator.Validate
	storeTimeout time.Duration

	// compared against when the identity is unknown so both paths hash once
	dummySalt   passhash.Salt
	dummyDigest passhash.Digest
}

// NewCredentialService builds the service around an explicit store handle.
// storeTimeout bounds every store call; zero disables the bound.
func NewCredentialService(store CredentialStore, hasher *passhash.Hasher, logger logging.Logger, storeTimeout time.Duration) (*CredentialService, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	validate, err := newValidator()
	if err != nil {
		return nil, err
	}

	secret, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("%w: dummy secret: %w", common.ErrHashing, err)
	}
	salt, digest, err := hasher.New(context.Background(), secret)
	if err != nil {
		return nil, fmt.Errorf("dummy credential: %w", err)
	}

	return &CredentialService{
		store:        store,
		hasher:       hasher,
		logger:       logger.With("module", "credential_service"),
		validate:     validate,
		storeTimeout: storeTimeout,
		dummySalt:    salt,
		dummyDigest:  digest,
	}, nil
}

func (s *CredentialService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *CredentialService) get(ctx context.Context, identity string) (*models.Credential, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.store.Get(ctx, identity)
}

// CreateCredential stores a new credential for identity. It returns
// common.ErrorValidation for unacceptable input, common.ErrDuplicateIdentity
// when identity is taken, and common.ErrorInternal for anything else. Neither
// salt nor digest is returned to the caller.
func (s *CredentialService) CreateCredential(ctx context.Context, identity, password string) error {
	if err := validateInput(s.validate, identity, password); err != nil {
		return err
	}

	_, err := s.get(ctx, identity)
	switch {
	case err == nil:
		return common.ErrDuplicateIdentity
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "create: lookup failed", "identity", identity, "error", err)
		return common.ErrorInternal
	}

	salt, digest, err := s.hasher.New(ctx, password)
	if err != nil {
		s.logger.Error(ctx, "create: hashing failed", "identity", identity, "error", err)
		return common.ErrorInternal
	}

	c := &models.Credential{
		Identity: identity,
		Salt:     salt[:],
		Digest:   digest.Encode(),
		Cost:     int16(digest.Cost.Memory),
	}

	pctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.store.Put(pctx, c); err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return common.ErrDuplicateIdentity
		}
		s.logger.Error(ctx, "create: store failed", "identity", identity, "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "credential created", "identity", identity, "cost", digest.Cost.String())
	return nil
}

// VerifyCredential reports whether password matches the credential stored for
// identity. Unknown identities, wrong passwords and internal faults are all
// Rejected; faults are logged.
func (s *CredentialService) VerifyCredential(ctx context.Context, identity, password string) Outcome {
	_, ok := s.verify(ctx, identity, password)
	if ok {
		return Accepted
	}
	return Rejected
}

// verify returns the stored credential alongside the result so callers can
// act on the exact digest that was matched.
func (s *CredentialService) verify(ctx context.Context, identity, password string) (*models.Credential, bool) {
	salt, want, cost := s.dummySalt, s.dummyDigest, s.hasher.Cost()
	found := false

	stored, err := s.get(ctx, identity)
	switch {
	case err == nil:
		if st, d, derr := decodeStored(stored); derr != nil {
			s.logger.Error(ctx, "verify: stored credential unreadable", "identity", identity, "error", derr)
		} else {
			salt, want, cost = st, d, d.Cost
			found = true
		}
	case errors.Is(err, common.ErrorNotFound):
	default:
		s.logger.Error(ctx, "verify: lookup failed", "identity", identity, "error", err)
	}

	got, err := s.hasher.Compute(ctx, password, salt, cost)
	if err != nil {
		s.logger.Warn(ctx, "verify: hashing failed", "identity", identity, "error", err)
		return nil, false
	}

	match := passhash.Equal(got, want)
	if !found || !match {
		return nil, false
	}
	return stored, true
}

func decodeStored(c *models.Credential) (passhash.Salt, passhash.Digest, error) {
	salt, err := passhash.DecodeSalt(c.Salt)
	if err != nil {
		return passhash.Salt{}, passhash.Digest{}, err
	}
	d, err := passhash.DecodeDigest(c.Digest)
	if err != nil {
		return passhash.Salt{}, passhash.Digest{}, err
	}
	return salt, d, nil
}

// ChangePassword replaces the credential of identity after verifying
// oldPassword. A failed verification, or a concurrent change that won the
// race, returns common.ErrorUnauthorized. The new credential uses the current
// default cost.
func (s *CredentialService) ChangePassword(ctx context.Context, identity, oldPassword, newPassword string) error {
	if err := validateInput(s.validate, identity, newPassword); err != nil {
		return err
	}

	stored, ok := s.verify(ctx, identity, oldPassword)
	if !ok {
		return common.ErrorUnauthorized
	}

	salt, digest, err := s.hasher.New(ctx, newPassword)
	if err != nil {
		s.logger.Error(ctx, "change password: hashing failed", "identity", identity, "error", err)
		return common.ErrorInternal
	}

	next := &models.Credential{
		Identity: identity,
		Salt:     salt[:],
		Digest:   digest.Encode(),
		Cost:     int16(digest.Cost.Memory),
	}

	rctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.store.Rotate(rctx, identity, stored.Digest, next); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "change password: store failed", "identity", identity, "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "password changed", "identity", identity)
	return nil
}
