package database

import (
	"context"
	"fmt"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	saveSlotFields = `player_id, slot_number, scene_id, preview_text, affinity_snapshot, saved_at`

	// Занятый слот перезаписывается целиком, saved_at обновляется
	upsertSaveSlotQuery = `
        INSERT INTO save_slots (player_id, slot_number, scene_id, preview_text, affinity_snapshot, saved_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (player_id, slot_number) DO UPDATE SET
            scene_id = EXCLUDED.scene_id,
            preview_text = EXCLUDED.preview_text,
            affinity_snapshot = EXCLUDED.affinity_snapshot,
            saved_at = EXCLUDED.saved_at
        RETURNING saved_at
    `
	getSaveSlotQuery = `
        SELECT ` + saveSlotFields + `
        FROM save_slots
        WHERE player_id = $1 AND slot_number = $2
    `
	listSaveSlotsByPlayerQuery = `
        SELECT ` + saveSlotFields + `
        FROM save_slots
        WHERE player_id = $1
        ORDER BY slot_number ASC
    `
	deleteSaveSlotQuery = `DELETE FROM save_slots WHERE player_id = $1 AND slot_number = $2`
)

var _ interfaces.SaveSlotRepository = (*pgSaveSlotRepository)(nil)

// pgSaveSlotRepository реализует SaveSlotRepository поверх PostgreSQL.
type pgSaveSlotRepository struct {
	logger *zap.Logger
}

// NewPgSaveSlotRepository creates a PostgreSQL save slot repository.
func NewPgSaveSlotRepository(logger *zap.Logger) interfaces.SaveSlotRepository {
	return &pgSaveSlotRepository{logger: logger.Named("PgSaveSlotRepo")}
}

// Upsert writes the slot, overwriting scene, preview, snapshot and timestamp of an occupied one.
func (r *pgSaveSlotRepository) Upsert(ctx context.Context, querier interfaces.DBTX, slot *models.SaveSlot) error {
	logFields := []zap.Field{
		zap.String("playerID", slot.PlayerID.String()),
		zap.Int("slot", slot.SlotNumber),
		zap.String("sceneID", slot.SceneID),
	}
	// Пустой снимок храним как {}, а не NULL
	snapshot := slot.AffinitySnapshot
	if snapshot == nil {
		snapshot = map[string]int{}
	}

	err := querier.QueryRow(ctx, upsertSaveSlotQuery,
		slot.PlayerID,
		slot.SlotNumber,
		slot.SceneID,
		slot.PreviewText,
		snapshot, // map кодируется pgx в JSONB
	).Scan(&slot.SavedAt)
	if err != nil {
		r.logger.Error("Failed to upsert save slot", append(logFields, zap.Error(err))...)
		return fmt.Errorf("upsert save slot: %w", err)
	}
	slot.AffinitySnapshot = snapshot
	r.logger.Debug("Save slot written", logFields...)
	return nil
}

// Get возвращает слот или ErrSaveSlotNotFound.
func (r *pgSaveSlotRepository) Get(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, slotNumber int) (*models.SaveSlot, error) {
	var slot models.SaveSlot
	if err := pgxscan.Get(ctx, querier, &slot, getSaveSlotQuery, playerID, slotNumber); err != nil {
		if pgxscan.NotFound(err) {
			return nil, models.ErrSaveSlotNotFound
		}
		r.logger.Error("Failed to get save slot",
			zap.String("playerID", playerID.String()), zap.Int("slot", slotNumber), zap.Error(err))
		return nil, fmt.Errorf("get save slot: %w", err)
	}
	return &slot, nil
}

// ListByPlayer возвращает только занятые слоты, по возрастанию номера.
func (r *pgSaveSlotRepository) ListByPlayer(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID) ([]models.SaveSlot, error) {
	slots := make([]models.SaveSlot, 0)
	if err := pgxscan.Select(ctx, querier, &slots, listSaveSlotsByPlayerQuery, playerID); err != nil {
		r.logger.Error("Failed to list save slots", zap.String("playerID", playerID.String()), zap.Error(err))
		return nil, fmt.Errorf("list save slots: %w", err)
	}
	return slots, nil
}

// Delete is idempotent: the bool only reports whether a row existed.
func (r *pgSaveSlotRepository) Delete(ctx context.Context, querier interfaces.DBTX, playerID uuid.UUID, slotNumber int) (bool, error) {
	logFields := []zap.Field{zap.String("playerID", playerID.String()), zap.Int("slot", slotNumber)}
	tag, err := querier.Exec(ctx, deleteSaveSlotQuery, playerID, slotNumber)
	if err != nil {
		r.logger.Error("Failed to delete save slot", append(logFields, zap.Error(err))...)
		return false, fmt.Errorf("delete save slot: %w", err)
	}
	deleted := tag.RowsAffected() > 0
	r.logger.Debug("Save slot delete executed", append(logFields, zap.Bool("deleted", deleted))...)
	return deleted, nil
}
