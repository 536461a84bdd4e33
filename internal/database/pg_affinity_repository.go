package database

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	affinityFields = `player_id, target_character_id, score, updated_at`

	getAffinityQuery = `
        SELECT ` + affinityFields + `
        FROM affinities
        WHERE player_id = $1 AND target_character_id = $2
    `
	listAffinitiesByPlayerQuery = `
        SELECT ` + affinityFields + `
        FROM affinities
        WHERE player_id = $1
        ORDER BY target_character_id
    `
	// Запись создается при первом изменении, дальше дельта прибавляется на месте.
	addAffinityDeltaQuery = `
        INSERT INTO affinities (player_id, target_character_id, score, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (player_id, target_character_id)
        DO UPDATE SET score = affinities.score + EXCLUDED.score, updated_at = NOW()
        RETURNING score
    `
	deleteAffinitiesByPlayerQuery = `DELETE FROM affinities WHERE player_id = $1`
	insertAffinitiesQuery         = `
        INSERT INTO affinities (player_id, target_character_id, score, updated_at)
        SELECT $1, t.target, t.score, NOW()
        FROM unnest($2::text[], $3::bigint[]) AS t(target, score)
    `
)

var _ interfaces.AffinityRepository = (*pgAffinityRepository)(nil)

type pgAffinityRepository struct {
	logger *zap.Logger
}

// NewPgAffinityRepository creates a PostgreSQL affinity repository.
func NewPgAffinityRepository(logger *zap.Logger) interfaces.AffinityRepository {
	return &pgAffinityRepository{logger: logger.Named("PgAffinityRepo")}
}

func (r *pgAffinityRepository) Get(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, characterID string) (*models.Affinity, error) {
	var a models.Affinity
	err := querier.QueryRow(ctx, getAffinityQuery, playerID, characterID).Scan(&a.PlayerID, &a.TargetCharacterID, &a.Score, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get affinity",
			zap.String("playerID", playerID.String()), zap.String("characterID", characterID), zap.Error(err))
		return nil, fmt.Errorf("get affinity: %w", err)
	}
	return &a, nil
}

func (r *pgAffinityRepository) ListByPlayer(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID) ([]models.Affinity, error) {
	affinities := make([]models.Affinity, 0)
	if err := pgxscan.Select(ctx, querier, &affinities, listAffinitiesByPlayerQuery, playerID); err != nil {
		r.logger.Error("Failed to list affinities", zap.String("playerID", playerID.String()), zap.Error(err))
		return nil, fmt.Errorf("list affinities: %w", err)
	}
	return affinities, nil
}

// AddDelta атомарно прибавляет delta к очку персонажа и возвращает новое значение.
// Вызывать внутри транзакции вместе со сменой сцены.
func (r *pgAffinityRepository) AddDelta(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, characterID string, delta int) (int, error) {
	logFields := []zap.Field{
		zap.String("playerID", playerID.String()),
		zap.String("characterID", characterID),
		zap.Int("delta", delta),
	}
	var score int
	if err := querier.QueryRow(ctx, addAffinityDeltaQuery, playerID, characterID, delta).Scan(&score); err != nil {
		r.logger.Error("Failed to apply affinity delta", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("apply affinity delta: %w", err)
	}
	r.logger.Debug("Affinity delta applied", append(logFields, zap.Int("score", score))...)
	return score, nil
}

// ReplaceAll заменяет все очки игрока снимком из сохранения.
func (r *pgAffinityRepository) ReplaceAll(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, scores map[string]int) error {
	logFields := []zap.Field{zap.String("playerID", playerID.String()), zap.Int("records", len(scores))}
	if _, err := querier.Exec(ctx, deleteAffinitiesByPlayerQuery, playerID); err != nil {
		r.logger.Error("Failed to clear affinities", append(logFields, zap.Error(err))...)
		return fmt.Errorf("clear affinities: %w", err)
	}
	if len(scores) == 0 {
		return nil
	}

	targets := make([]string, 0, len(scores))
	for target := range scores {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	// score хранится как BIGINT, значения передаются без сужения.
	values := make([]int64, 0, len(targets))
	for _, target := range targets {
		values = append(values, int64(scores[target]))
	}

	if _, err := querier.Exec(ctx, insertAffinitiesQuery, playerID, targets, values); err != nil {
		r.logger.Error("Failed to restore affinities", append(logFields, zap.Error(err))...)
		return fmt.Errorf("restore affinities: %w", err)
	}
	r.logger.Info("Affinities replaced", logFields...)
	return nil
}
