package service

import (
	"context"
	"errors"
	"fmt"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AffinityLedger reads and adds to per-player, per-character scores.
// Scores are 64-bit signed integers without clamping; an absent record reads as 0.
type AffinityLedger struct {
	repo   interfaces.AffinityRepository
	logger *zap.Logger
}

// NewAffinityLedger creates a ledger over the affinity repository.
func NewAffinityLedger(repo interfaces.AffinityRepository, logger *zap.Logger) *AffinityLedger {
	return &AffinityLedger{repo: repo, logger: logger.Named("AffinityLedger")}
}

// GetScore returns 0 when the pair has no record.
func (l *AffinityLedger) GetScore(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, characterID string) (int, error) {
	a, err := l.repo.Get(ctx, querier, playerID, characterID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return a.Score, nil
}

// ApplyDelta adds delta to the stored score, creating the record on first use.
func (l *AffinityLedger) ApplyDelta(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, characterID string, delta int) (int, error) {
	if characterID == "" {
		return 0, fmt.Errorf("%w: empty character id", models.ErrInvalidInput)
	}
	return l.repo.AddDelta(ctx, querier, playerID, characterID, delta)
}

// ApplyEffects applies every effect in the given order and returns the resulting scores.
func (l *AffinityLedger) ApplyEffects(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, effects []models.AffinityEffect) (map[string]int, error) {
	scores := make(map[string]int, len(effects))
	for _, e := range effects {
		score, err := l.ApplyDelta(ctx, querier, playerID, e.TargetCharacterID, e.Delta)
		if err != nil {
			return nil, fmt.Errorf("apply effect on %s: %w", e.TargetCharacterID, err)
		}
		scores[e.TargetCharacterID] = score
		l.logger.Debug("Affinity changed",
			zap.String("playerID", playerID.String()),
			zap.String("characterID", e.TargetCharacterID),
			zap.Int("delta", e.Delta),
			zap.Int("score", score))
	}
	return scores, nil
}

// List returns every stored record of the player, ordered by character id.
func (l *AffinityLedger) List(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID) ([]models.Affinity, error) {
	return l.repo.ListByPlayer(ctx, querier, playerID)
}

// Snapshot returns the current scores as a map.
func (l *AffinityLedger) Snapshot(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID) (map[string]int, error) {
	records, err := l.repo.ListByPlayer(ctx, querier, playerID)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]int, len(records))
	for _, a := range records {
		snapshot[a.TargetCharacterID] = a.Score
	}
	return snapshot, nil
}

// Restore replaces all scores of the player with snapshot.
func (l *AffinityLedger) Restore(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, snapshot map[string]int) error {
	return l.repo.ReplaceAll(ctx, querier, playerID, snapshot)
}
