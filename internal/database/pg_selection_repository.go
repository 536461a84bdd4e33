package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	getSelectionByKeyQuery = `
        SELECT id, player_id, idempotency_key, option_id, next_scene_id, created_at
        FROM option_selections
        WHERE player_id = $1 AND idempotency_key = $2
    `
	insertSelectionQuery = `
        INSERT INTO option_selections (id, player_id, idempotency_key, option_id, next_scene_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	// PostgreSQL unique_violation
	uniqueViolationCode = "23505"
)

var _ interfaces.SelectionRepository = (*pgSelectionRepository)(nil)

// pgSelectionRepository хранит выборы, сделанные с ключом идемпотентности.
type pgSelectionRepository struct {
	logger *zap.Logger
}

// NewPgSelectionRepository creates a PostgreSQL repository of idempotent option selections.
func NewPgSelectionRepository(logger *zap.Logger) interfaces.SelectionRepository {
	return &pgSelectionRepository{logger: logger.Named("PgSelectionRepo")}
}

// scanSelection сканирует строку option_selections в модель.
func scanSelection(row pgx.Row) (*models.OptionSelection, error) {
	var s models.OptionSelection
	if err := row.Scan(&s.ID, &s.PlayerID, &s.IdempotencyKey, &s.OptionID, &s.NextSceneID, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByKey ищет выбор игрока по ключу. Нет записи значит ErrNotFound.
func (r *pgSelectionRepository) GetByKey(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, key string) (*models.OptionSelection, error) {
	selection, err := scanSelection(querier.QueryRow(ctx, getSelectionByKeyQuery, playerID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get option selection", zap.String("playerID", playerID.String()), zap.Error(err))
		return nil, fmt.Errorf("get option selection: %w", err)
	}
	return selection, nil
}

// Create returns models.ErrIdempotencyConflict if the key was recorded concurrently.
func (r *pgSelectionRepository) Create(ctx context.Context, querier interfaces.DBTX, selection *models.OptionSelection) error {
	if selection.ID == uuid.Nil {
		selection.ID = uuid.New()
	}
	// Время записи важно только для отладки, поэтому берем локальные часы
	if selection.CreatedAt.IsZero() {
		selection.CreatedAt = time.Now().UTC()
	}
	logFields := []zap.Field{
		zap.String("playerID", selection.PlayerID.String()),
		zap.String("optionID", selection.OptionID),
	}

	_, err := querier.Exec(ctx, insertSelectionQuery,
		selection.ID,
		selection.PlayerID,
		selection.IdempotencyKey,
		selection.OptionID,
		selection.NextSceneID,
		selection.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.logger.Warn("Idempotency key recorded concurrently", logFields...)
			return models.ErrIdempotencyConflict
		}
		r.logger.Error("Failed to record option selection", append(logFields, zap.Error(err))...)
		return fmt.Errorf("record option selection: %w", err)
	}
	return nil
}
