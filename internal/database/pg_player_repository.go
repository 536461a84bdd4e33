package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	playerFields = `id, account_id, name, current_scene_id, created_at, updated_at`

	insertPlayerQuery = `
        INSERT INTO players (id, account_id, name, current_scene_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
    `
	getPlayerByIDQuery = `
        SELECT ` + playerFields + `
        FROM players
        WHERE id = $1
    `
	// Блокирует строку игрока до конца транзакции: переходы одного игрока выполняются по очереди
	getPlayerByIDForUpdateQuery = getPlayerByIDQuery + ` FOR UPDATE`
	getPlayerByAccountIDQuery   = `
        SELECT ` + playerFields + `
        FROM players
        WHERE account_id = $1
    `
	updatePlayerNameQuery         = `UPDATE players SET name = $2, updated_at = NOW() WHERE id = $1`
	updatePlayerCurrentSceneQuery = `UPDATE players SET current_scene_id = $2, updated_at = NOW() WHERE id = $1`
)

var _ interfaces.PlayerRepository = (*pgPlayerRepository)(nil)

// pgPlayerRepository реализует PlayerRepository поверх PostgreSQL.
type pgPlayerRepository struct {
	logger *zap.Logger
}

// NewPgPlayerRepository creates a PostgreSQL player repository.
func NewPgPlayerRepository(logger *zap.Logger) interfaces.PlayerRepository {
	return &pgPlayerRepository{logger: logger.Named("PgPlayerRepo")}
}

// Create вставляет игрока. Пустой ID генерируется здесь.
func (r *pgPlayerRepository) Create(ctx context.Context, querier interfaces.DBTX, player *models.Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	now := time.Now().UTC()
	player.CreatedAt = now
	player.UpdatedAt = now

	logFields := []zap.Field{zap.String("playerID", player.ID.String())}
	if _, err := querier.Exec(ctx, insertPlayerQuery, player.ID, player.AccountID, player.Name, player.CurrentSceneID, now); err != nil {
		var pgErr *pgconn.PgError
		// Уникальный индекс по account_id: у аккаунта может быть только один игрок
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.logger.Warn("Player already exists", logFields...)
			return models.ErrPlayerExists
		}
		r.logger.Error("Failed to insert player", append(logFields, zap.Error(err))...)
		return fmt.Errorf("insert player: %w", err)
	}
	r.logger.Info("Player created", logFields...)
	return nil
}

func (r *pgPlayerRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id uuid.UUID) (*models.Player, error) {
	return r.get(ctx, querier, getPlayerByIDQuery, id)
}

// GetByIDForUpdate читает игрока с SELECT ... FOR UPDATE. Вызывать только внутри транзакции.
func (r *pgPlayerRepository) GetByIDForUpdate(ctx context.Context, querier interfaces.DBTX, id uuid.UUID) (*models.Player, error) {
	return r.get(ctx, querier, getPlayerByIDForUpdateQuery, id)
}

func (r *pgPlayerRepository) GetByAccountID(ctx context.Context, querier interfaces.DBTX, accountID uuid.UUID) (*models.Player, error) {
	return r.get(ctx, querier, getPlayerByAccountIDQuery, accountID)
}

// get выполняет один из SELECT-запросов игрока и переводит отсутствие строки в ErrPlayerNotFound.
func (r *pgPlayerRepository) get(ctx context.Context, querier interfaces.DBTX, query string, id uuid.UUID) (*models.Player, error) {
	var player models.Player
	if err := pgxscan.Get(ctx, querier, &player, query, id); err != nil {
		if pgxscan.NotFound(err) {
			r.logger.Debug("Player not found", zap.String("id", id.String()))
			return nil, models.ErrPlayerNotFound
		}
		r.logger.Error("Failed to get player", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}
	return &player, nil
}

func (r *pgPlayerRepository) UpdateName(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, name string) error {
	return r.update(ctx, querier, updatePlayerNameQuery, id, name, "name")
}

func (r *pgPlayerRepository) UpdateCurrentScene(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, sceneID string) error {
	return r.update(ctx, querier, updatePlayerCurrentSceneQuery, id, sceneID, "current scene")
}

// update обновляет одно текстовое поле игрока.
// 0 затронутых строк значит, что игрока нет.
func (r *pgPlayerRepository) update(ctx context.Context, querier interfaces.DBTX, query string, id uuid.UUID, value, what string) error {
	logFields := []zap.Field{zap.String("playerID", id.String()), zap.String("field", what), zap.String("value", value)}
	tag, err := querier.Exec(ctx, query, id, value)
	if err != nil {
		r.logger.Error("Failed to update player", append(logFields, zap.Error(err))...)
		return fmt.Errorf("update player %s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Player to update not found", logFields...)
		return models.ErrPlayerNotFound
	}
	r.logger.Debug("Player updated", logFields...)
	return nil
}
