package worker

import (
	"context"
	"time"

	"github.com/pairloom/garden-engine/internal/garden"
	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/repository"
)

// NeglectSweepBatchSize bounds how many gardens one sweep touches.
const NeglectSweepBatchSize = 200

// NeglectSweepJob walks gardens whose last interaction predates the neglect
// threshold and applies the punishment to each. It implements Job so the
// scheduler can enqueue it at a fixed interval. The punishment itself is
// idempotent, so an overlapping or repeated sweep is harmless.
type NeglectSweepJob struct {
	gardenSvc  garden.Service
	gardenRepo repository.Garden
	threshold  time.Duration
}

// NewNeglectSweepJob creates a new NeglectSweepJob
func NewNeglectSweepJob(gardenSvc garden.Service, gardenRepo repository.Garden, threshold time.Duration) *NeglectSweepJob {
	return &NeglectSweepJob{
		gardenSvc:  gardenSvc,
		gardenRepo: gardenRepo,
		threshold:  threshold,
	}
}

// Process runs one sweep.
func (j *NeglectSweepJob) Process(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)
	log.Info(LogMsgNeglectSweepStarting)

	cutoff := time.Now().Add(-j.threshold)
	pairs, err := j.gardenRepo.ListNeglectedPairs(ctx, cutoff, NeglectSweepBatchSize)
	if err != nil {
		log.Error(LogMsgNeglectSweepFailed, "error", err)
		return err
	}

	punished := 0
	for _, pairID := range pairs {
		result, err := j.gardenSvc.ApplyPunishment(ctx, pairID)
		if err != nil {
			// One bad garden must not stop the sweep.
			log.Error(LogMsgNeglectPunishFailed, "pairID", pairID, "error", err)
			continue
		}
		if result.Applied {
			punished++
		}
	}

	log.Info(LogMsgNeglectSweepCompleted, "candidates", len(pairs), "punished", punished)
	return nil
}
