package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"
	"vn-server/internal/story"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ограничение длины подписи слота, в рунах
const maxPreviewTextRunes = 200

// SaveService manages save slots and restores a player's position from them.
//
//go:generate mockery --name SaveService --output ./mocks --outpkg mocks --case=underscore
type SaveService interface {
	// ListSlots returns the player's slots ordered by slot number.
	ListSlots(ctx context.Context, playerID uuid.UUID) ([]models.SaveSlot, error)
	// Save overwrites an occupied slot or creates it. Affinity is snapshotted with it.
	Save(ctx context.Context, playerID uuid.UUID, slotNumber int, sceneID, previewText string) (*models.SaveSlot, error)
	// Load moves the player to the slot's scene and returns that scene id.
	Load(ctx context.Context, playerID uuid.UUID, slotNumber int) (string, error)
	// Delete removes a slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, playerID uuid.UUID, slotNumber int) error
}

// saveServiceImpl реализует SaveService.
type saveServiceImpl struct {
	graph   *story.Graph
	ledger  *AffinityLedger
	players interfaces.PlayerRepository
	slots   interfaces.SaveSlotRepository
	db      interfaces.DBTX
	tx      interfaces.Transactor
	events  eventSink
	opts    Options
	logger  *zap.Logger
}

// NewSaveService creates the save/resume service. publisher may be nil.
func NewSaveService(
	graph *story.Graph,
	ledger *AffinityLedger,
	players interfaces.PlayerRepository,
	slots interfaces.SaveSlotRepository,
	db interfaces.DBTX,
	tx interfaces.Transactor,
	publisher interfaces.EventPublisher,
	opts Options,
	logger *zap.Logger,
) SaveService {
	named := logger.Named("SaveService")
	return &saveServiceImpl{
		graph:   graph,
		ledger:  ledger,
		players: players,
		slots:   slots,
		db:      db,
		tx:      tx,
		events:  eventSink{publisher: publisher, logger: named, now: time.Now},
		opts:    opts,
		logger:  named,
	}
}

// validateSlot проверяет номер слота. Верхней границы нет.
func validateSlot(slotNumber int) error {
	if slotNumber < 1 {
		return fmt.Errorf("%w: slot number must be >= 1, got %d", models.ErrInvalidInput, slotNumber)
	}
	return nil
}

func (s *saveServiceImpl) ListSlots(ctx context.Context, playerID uuid.UUID) ([]models.SaveSlot, error) {
	// Неизвестный игрок должен дать 404, а не пустой список
	if _, err := s.players.GetByID(ctx, s.db, playerID); err != nil {
		return nil, err
	}
	return s.slots.ListByPlayer(ctx, s.db, playerID)
}

func (s *saveServiceImpl) Save(ctx context.Context, playerID uuid.UUID, slotNumber int, sceneID, previewText string) (*models.SaveSlot, error) {
	logFields := []zap.Field{
		zap.String("playerID", playerID.String()),
		zap.Int("slot", slotNumber),
		zap.String("sceneID", sceneID),
	}
	if err := validateSlot(slotNumber); err != nil {
		return nil, err
	}
	// Сохранять можно только сцену из текущего графа
	if !s.graph.HasScene(sceneID) {
		s.logger.Warn("Save for unknown scene rejected", logFields...)
		return nil, fmt.Errorf("%w: unknown scene %q", models.ErrInvalidInput, sceneID)
	}
	previewText = strings.TrimSpace(previewText)
	if utf8.RuneCountInString(previewText) > maxPreviewTextRunes {
		return nil, fmt.Errorf("%w: preview text longer than %d characters", models.ErrInvalidInput, maxPreviewTextRunes)
	}

	slot := &models.SaveSlot{
		PlayerID:    playerID,
		SlotNumber:  slotNumber,
		SceneID:     sceneID,
		PreviewText: previewText,
	}
	// Блокировка игрока не дает снимку симпатии разойтись с параллельным выбором
	err := s.tx.WithTx(ctx, func(q interfaces.DBTX) error {
		if _, err := s.players.GetByIDForUpdate(ctx, q, playerID); err != nil {
			return err
		}
		snapshot, err := s.ledger.Snapshot(ctx, q, playerID)
		if err != nil {
			return err
		}
		slot.AffinitySnapshot = snapshot
		return s.slots.Upsert(ctx, q, slot)
	})
	if err != nil {
		s.logger.Warn("Save failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("Game saved", logFields...)
	s.events.publish(ctx, interfaces.GameplayEvent{
		Type:       interfaces.EventGameSaved,
		PlayerID:   playerID,
		SceneID:    sceneID,
		SlotNumber: slotNumber,
	})
	return slot, nil
}

func (s *saveServiceImpl) Load(ctx context.Context, playerID uuid.UUID, slotNumber int) (string, error) {
	logFields := []zap.Field{zap.String("playerID", playerID.String()), zap.Int("slot", slotNumber)}
	if err := validateSlot(slotNumber); err != nil {
		return "", err
	}

	var sceneID string
	err := s.tx.WithTx(ctx, func(q interfaces.DBTX) error {
		if _, err := s.players.GetByIDForUpdate(ctx, q, playerID); err != nil {
			return err
		}
		slot, err := s.slots.Get(ctx, q, playerID, slotNumber)
		if err != nil {
			return err
		}
		// Контент мог измениться после сохранения
		if !s.graph.HasScene(slot.SceneID) {
			return fmt.Errorf("%w: saved scene %s is no longer part of the story", models.ErrSceneNotFound, slot.SceneID)
		}
		if err := s.players.UpdateCurrentScene(ctx, q, playerID, slot.SceneID); err != nil {
			return err
		}
		// По умолчанию загрузка двигает только указатель, очки остаются текущими
		if s.opts.RestoreAffinityOnLoad {
			if err := s.ledger.Restore(ctx, q, playerID, slot.AffinitySnapshot); err != nil {
				return err
			}
		}
		sceneID = slot.SceneID
		return nil
	})
	if err != nil {
		s.logger.Warn("Load failed", append(logFields, zap.Error(err))...)
		return "", err
	}

	s.logger.Info("Game loaded", append(logFields, zap.String("sceneID", sceneID), zap.Bool("affinityRestored", s.opts.RestoreAffinityOnLoad))...)
	s.events.publish(ctx, interfaces.GameplayEvent{
		Type:       interfaces.EventGameLoaded,
		PlayerID:   playerID,
		SceneID:    sceneID,
		SlotNumber: slotNumber,
	})
	return sceneID, nil
}

func (s *saveServiceImpl) Delete(ctx context.Context, playerID uuid.UUID, slotNumber int) error {
	logFields := []zap.Field{zap.String("playerID", playerID.String()), zap.Int("slot", slotNumber)}
	if err := validateSlot(slotNumber); err != nil {
		return err
	}
	deleted, err := s.slots.Delete(ctx, s.db, playerID, slotNumber)
	if err != nil {
		s.logger.Error("Delete save slot failed", append(logFields, zap.Error(err))...)
		return err
	}
	if !deleted {
		s.logger.Debug("Save slot already empty", logFields...)
		return nil
	}
	s.logger.Info("Save slot deleted", logFields...)
	s.events.publish(ctx, interfaces.GameplayEvent{
		Type:       interfaces.EventSaveDeleted,
		PlayerID:   playerID,
		SlotNumber: slotNumber,
	})
	return nil
}
