package garden

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
)

// In-memory collaborators for service tests. The garden fake enforces the
// same revision check as the real store so the retry loop is exercised for
// real; wallet and pairing fakes are plain maps.

type fakeGardenRepo struct {
	mu     sync.Mutex
	states map[string]*domain.GardenState

	// conflictNextUpdates injects revision conflicts into the next N update
	// calls, simulating a concurrent session committing first.
	conflictNextUpdates int
	updateCalls         int
}

func newFakeGardenRepo() *fakeGardenRepo {
	return &fakeGardenRepo{states: make(map[string]*domain.GardenState)}
}

func cloneState(state *domain.GardenState) *domain.GardenState {
	raw, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}
	var out domain.GardenState
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func (r *fakeGardenRepo) GetGardenState(_ context.Context, pairID string) (*domain.GardenState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[pairID]
	if !ok {
		return nil, domain.ErrGardenNotFound
	}
	return cloneState(state), nil
}

func (r *fakeGardenRepo) CreateGardenState(_ context.Context, state *domain.GardenState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[state.PairID]; ok {
		return fmt.Errorf("garden already exists for pair %s", state.PairID)
	}
	state.Revision = 1
	r.states[state.PairID] = cloneState(state)
	return nil
}

func (r *fakeGardenRepo) UpdateGardenState(_ context.Context, state *domain.GardenState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++

	stored, ok := r.states[state.PairID]
	if !ok {
		return domain.ErrGardenNotFound
	}
	if r.conflictNextUpdates > 0 {
		r.conflictNextUpdates--
		// Simulate the other session's write landing first.
		stored.Revision++
		return fmt.Errorf("%w: revision %d is stale", domain.ErrRevisionConflict, state.Revision)
	}
	if stored.Revision != state.Revision {
		return fmt.Errorf("%w: revision %d is stale", domain.ErrRevisionConflict, state.Revision)
	}
	state.Revision++
	r.states[state.PairID] = cloneState(state)
	return nil
}

func (r *fakeGardenRepo) ListNeglectedPairs(_ context.Context, cutoff time.Time, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pairs []string
	for pairID, state := range r.states {
		if state.LastInteraction != nil && state.LastInteraction.Before(cutoff) {
			pairs = append(pairs, pairID)
		}
		if len(pairs) == limit {
			break
		}
	}
	return pairs, nil
}

// stored returns the committed state, bypassing the service.
func (r *fakeGardenRepo) stored(pairID string) *domain.GardenState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneState(r.states[pairID])
}

// seed replaces the committed state wholesale.
func (r *fakeGardenRepo) seed(state *domain.GardenState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state.Revision == 0 {
		state.Revision = 1
	}
	r.states[state.PairID] = cloneState(state)
}

type fakeProfileService struct {
	mu      sync.Mutex
	wallets map[string]*domain.Profile
}

func newFakeProfileService() *fakeProfileService {
	return &fakeProfileService{wallets: make(map[string]*domain.Profile)}
}

func (p *fakeProfileService) setWallet(userID string, gold, water int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wallets[userID] = &domain.Profile{UserID: userID, Gold: gold, Water: water, MaxWater: domain.StarterMaxWater}
}

func (p *fakeProfileService) GetWallet(_ context.Context, userID string) (*domain.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	wallet, ok := p.wallets[userID]
	if !ok {
		wallet = &domain.Profile{UserID: userID, Gold: domain.StarterGold, Water: domain.StarterWater, MaxWater: domain.StarterMaxWater}
		p.wallets[userID] = wallet
	}
	copied := *wallet
	return &copied, nil
}

func (p *fakeProfileService) AdjustGold(_ context.Context, userID string, delta int) (*domain.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	wallet, ok := p.wallets[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if wallet.Gold+delta < 0 {
		return nil, domain.ErrInsufficientGold
	}
	wallet.Gold += delta
	copied := *wallet
	return &copied, nil
}

func (p *fakeProfileService) AdjustWater(_ context.Context, userID string, delta int) (*domain.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	wallet, ok := p.wallets[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if wallet.Water+delta < 0 {
		return nil, domain.ErrInsufficientWater
	}
	wallet.Water += delta
	copied := *wallet
	return &copied, nil
}

func (p *fakeProfileService) gold(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wallets[userID].Gold
}

func (p *fakeProfileService) water(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wallets[userID].Water
}

type fakePairingService struct {
	members map[string][2]string
}

func (p *fakePairingService) Establish(_ context.Context, userA, userB string) (string, error) {
	pairID := userA + ":" + userB
	p.members[pairID] = [2]string{userA, userB}
	return pairID, nil
}

func (p *fakePairingService) Members(_ context.Context, pairID string) ([2]string, error) {
	members, ok := p.members[pairID]
	if !ok {
		return [2]string{}, domain.ErrGardenNotFound
	}
	return members, nil
}

func (p *fakePairingService) PartnerOf(_ context.Context, pairID, userID string) (string, error) {
	members, err := p.Members(context.Background(), pairID)
	if err != nil {
		return "", err
	}
	switch userID {
	case members[0]:
		return members[1], nil
	case members[1]:
		return members[0], nil
	default:
		return "", domain.ErrNotPairMember
	}
}

type stubPresence struct {
	online map[string]bool
}

func (s *stubPresence) IsOnline(userID string) bool { return s.online[userID] }

// captureBus records published events for assertions.
type captureBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *captureBus) Publish(_ context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *captureBus) Subscribe(event.Type, event.Handler) {}

func (b *captureBus) typesSeen() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]event.Type, 0, len(b.events))
	for _, evt := range b.events {
		types = append(types, evt.Type)
	}
	return types
}

// fixedClock is a settable Clock for deterministic elapsed-time tests.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testHarness bundles a service with its fakes.
type testHarness struct {
	svc      Service
	repo     *fakeGardenRepo
	profiles *fakeProfileService
	pairing  *fakePairingService
	presence *stubPresence
	bus      *captureBus
	clock    *fixedClock
}

const (
	testPairID = "pair-1"
	userAlice  = "user-alice"
	userBob    = "user-bob"
)

func newTestHarness() *testHarness {
	repo := newFakeGardenRepo()
	profiles := newFakeProfileService()
	profiles.setWallet(userAlice, 10, 3)
	profiles.setWallet(userBob, 10, 3)
	pairs := &fakePairingService{members: map[string][2]string{
		testPairID: {userAlice, userBob},
	}}
	presence := &stubPresence{online: map[string]bool{userAlice: true, userBob: true}}
	bus := &captureBus{}
	clock := &fixedClock{now: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}

	svc := NewService(DefaultConfig(), repo, profiles, pairs, presence, bus, clock)
	return &testHarness{
		svc:      svc,
		repo:     repo,
		profiles: profiles,
		pairing:  pairs,
		presence: presence,
		bus:      bus,
		clock:    clock,
	}
}
