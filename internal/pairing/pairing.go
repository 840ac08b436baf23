// Package pairing resolves the two-user pair that jointly owns a garden.
package pairing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/repository"
)

// pairNamespace scopes deterministic pair IDs. Generated once for this
// deployment family; changing it would orphan every existing garden.
var pairNamespace = uuid.MustParse("9f2c1a4e-5b8d-4f6a-9c3e-7d1b2a8c4e6f")

// PairID derives the canonical identifier for a pair of users. The result
// is order-independent: PairID(a, b) == PairID(b, a).
func PairID(userA, userB string) string {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	return uuid.NewSHA1(pairNamespace, []byte(lo+":"+hi)).String()
}

// Service resolves pair membership for reward fan-out and access checks.
type Service interface {
	// Establish records the pair of two users and returns its canonical
	// pair ID. Establishing the same pair again is a no-op.
	Establish(ctx context.Context, userA, userB string) (string, error)

	// Members returns both user IDs of a pair.
	Members(ctx context.Context, pairID string) ([2]string, error)

	// PartnerOf returns the other member of the pair. Returns
	// domain.ErrNotPairMember when userID does not belong to the pair.
	PartnerOf(ctx context.Context, pairID, userID string) (string, error)
}

type service struct {
	pairRepo repository.Pair
}

// NewService creates a pairing service backed by the pair repository.
func NewService(pairRepo repository.Pair) Service {
	return &service{pairRepo: pairRepo}
}

func (s *service) Establish(ctx context.Context, userA, userB string) (string, error) {
	if userA == "" || userB == "" || userA == userB {
		return "", fmt.Errorf("%w: a pair needs two distinct users", domain.ErrInvalidInput)
	}
	// Store members in canonical order so lookups are order-independent.
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	pairID := PairID(lo, hi)
	if err := s.pairRepo.UpsertPair(ctx, pairID, lo, hi); err != nil {
		return "", fmt.Errorf("failed to record pair: %w", err)
	}
	return pairID, nil
}

func (s *service) Members(ctx context.Context, pairID string) ([2]string, error) {
	members, err := s.pairRepo.GetPairMembers(ctx, pairID)
	if err != nil {
		return [2]string{}, fmt.Errorf("failed to resolve pair members: %w", err)
	}
	return members, nil
}

func (s *service) PartnerOf(ctx context.Context, pairID, userID string) (string, error) {
	members, err := s.Members(ctx, pairID)
	if err != nil {
		return "", err
	}
	switch userID {
	case members[0]:
		return members[1], nil
	case members[1]:
		return members[0], nil
	default:
		return "", fmt.Errorf("%w: %s in pair %s", domain.ErrNotPairMember, userID, pairID)
	}
}
