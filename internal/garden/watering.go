package garden

import (
	"context"
	"fmt"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/growth"
	"github.com/pairloom/garden-engine/internal/logger"
)

// Water runs the watering state machine for one user.
//
// Per day and per user the transitions are
// not-watered -> watered(first) -> watered(second, harmony bonus), with a
// 6-hour personal re-watering gate. The caller's cooldown anchor is the only
// per-user timestamp touched; the partner's is never read for gating.
func (s *service) Water(ctx context.Context, pairID, userID string) (*domain.WaterResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWaterCalled, "pairID", pairID, "userID", userID)

	partner, err := s.pairingSvc.PartnerOf(ctx, pairID, userID)
	if err != nil {
		return nil, err
	}

	// Read the wallet fresh immediately before acting; balances are also
	// mutated by unrelated features.
	wallet, err := s.profileSvc.GetWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet.Water < WaterCost {
		return nil, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientWater, wallet.Water, WaterCost)
	}

	var result domain.WaterResult
	state, err := s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		result = domain.WaterResult{}

		if growth.HealthFor(state.LastInteraction, now) == domain.HealthWilted {
			return fmt.Errorf("%w: revive it first", domain.ErrGardenWilted)
		}

		// First/second bookkeeping reads the set before this action: a
		// re-watering refreshes timestamps only and never replays the
		// day's streak or harmony transition.
		firstOfDay := len(state.WateredByToday) == 0
		secondOfDay := len(state.WateredByToday) == 1 && state.WateredByToday[0] == partner

		if state.WateredToday(userID) {
			last, ok := state.LastWateredByUser[userID]
			if ok && now.Sub(last) < s.cfg.RewaterCooldown {
				remaining := s.cfg.RewaterCooldown - now.Sub(last)
				return fmt.Errorf("%w: %s remaining", domain.ErrCooldownActive, remaining.Round(time.Minute))
			}
			state.RemoveWateredToday(userID)
		}

		if firstOfDay {
			// Day's first watering advances the streak.
			state.StreakDays++
			if state.StreakDays >= s.cfg.StreakThreshold {
				state.StreakDays = 0
				result.StreakRewardPaid = true
			}
		} else if secondOfDay {
			// Both users watered today: harmony bonus.
			result.HarmonyBonusPaid = true
			if !s.presence.IsOnline(partner) && !state.HasPendingHarmonyBonus(partner) {
				state.PendingHarmonyBonusFor = append(state.PendingHarmonyBonusFor, partner)
				result.PendingForPartner = true
			}
		}

		watered := now
		state.LastInteraction = &watered
		state.LastWateredByUser[userID] = now
		state.WateredByToday = append(state.WateredByToday, userID)

		result.StreakDays = state.StreakDays
		result.Health = growth.HealthFor(state.LastInteraction, now)
		result.WateredAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Side effects after the committed write: never re-run under a revision
	// conflict retry. A failure here is logged, not compensated.
	if _, err := s.profileSvc.AdjustWater(ctx, userID, -WaterCost); err != nil {
		log.Error("Water deduction failed after state write", "userID", userID, "error", err)
	}
	if result.StreakRewardPaid {
		s.payBoth(ctx, pairID, s.cfg.StreakRewardGold)
		result.GoldAwarded += s.cfg.StreakRewardGold
		s.publish(ctx, event.NewGardenRewardEvent(event.GardenStreakReward, pairID, s.cfg.StreakRewardGold))
	}
	if result.HarmonyBonusPaid {
		s.payBoth(ctx, pairID, s.cfg.HarmonyBonusGold)
		result.GoldAwarded += s.cfg.HarmonyBonusGold
		s.publish(ctx, event.NewGardenRewardEvent(event.GardenHarmonyBonus, pairID, s.cfg.HarmonyBonusGold))
	}
	s.publish(ctx, event.NewGardenWateredEvent(pairID, userID, result.StreakDays, result.HarmonyBonusPaid))

	log.Info(LogMsgWaterSuccessful,
		"pairID", pairID,
		"userID", userID,
		"streak", result.StreakDays,
		"harmonyBonus", result.HarmonyBonusPaid,
		"revision", state.Revision)
	return &result, nil
}

// Revive is the paid override for a wilted garden. It resets the decay
// anchor and nothing else: streak and watered-today bookkeeping stay as the
// day-rollover rules left them.
func (s *service) Revive(ctx context.Context, pairID, userID string) (*domain.ReviveResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReviveCalled, "pairID", pairID, "userID", userID)

	if _, err := s.pairingSvc.PartnerOf(ctx, pairID, userID); err != nil {
		return nil, err
	}

	wallet, err := s.profileSvc.GetWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet.Gold < s.cfg.RevivalCostGold {
		return nil, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientGold, wallet.Gold, s.cfg.RevivalCostGold)
	}

	var result domain.ReviveResult
	_, err = s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		if growth.HealthFor(state.LastInteraction, now) != domain.HealthWilted {
			return fmt.Errorf("%w: watering is available", domain.ErrGardenNotWilted)
		}
		revived := now
		state.LastInteraction = &revived
		result = domain.ReviveResult{
			GoldSpent: s.cfg.RevivalCostGold,
			Health:    growth.HealthFor(state.LastInteraction, now),
			RevivedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.profileSvc.AdjustGold(ctx, userID, -s.cfg.RevivalCostGold); err != nil {
		log.Error("Revival charge failed after state write", "userID", userID, "error", err)
	}
	s.publish(ctx, event.NewGardenRevivedEvent(pairID, userID, s.cfg.RevivalCostGold))

	log.Info(LogMsgReviveSuccessful, "pairID", pairID, "userID", userID)
	return &result, nil
}

// ClaimPendingHarmonyBonus drains the caller's deferred harmony notification.
// Gold was already paid when the bonus fired; only the notification is
// deferred for offline partners.
func (s *service) ClaimPendingHarmonyBonus(ctx context.Context, pairID, userID string) (bool, error) {
	if _, err := s.pairingSvc.PartnerOf(ctx, pairID, userID); err != nil {
		return false, err
	}

	claimed := false
	_, err := s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		claimed = false
		if !state.HasPendingHarmonyBonus(userID) {
			return errNoChange
		}
		filtered := state.PendingHarmonyBonusFor[:0]
		for _, id := range state.PendingHarmonyBonusFor {
			if id != userID {
				filtered = append(filtered, id)
			}
		}
		state.PendingHarmonyBonusFor = filtered
		claimed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return claimed, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish garden event", "type", evt.Type, "error", err)
	}
}
