package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GameplayEventType names a committed gameplay change.
type GameplayEventType string

const (
	EventOptionSelected GameplayEventType = "option_selected"
	EventSceneAdvanced  GameplayEventType = "scene_advanced"
	EventGameSaved      GameplayEventType = "game_saved"
	EventGameLoaded     GameplayEventType = "game_loaded"
	EventSaveDeleted    GameplayEventType = "save_deleted"
)

// GameplayEvent is published after the change it describes has been committed.
type GameplayEvent struct {
	Type        GameplayEventType `json:"type"`
	PlayerID    uuid.UUID         `json:"playerId"`
	SceneID     string            `json:"sceneId,omitempty"`
	FromSceneID string            `json:"fromSceneId,omitempty"`
	OptionID    string            `json:"optionId,omitempty"`
	SlotNumber  int               `json:"slotNumber,omitempty"`
	Deltas      map[string]int    `json:"deltas,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

// EventPublisher sends gameplay events to the message broker.
//
//go:generate mockery --name EventPublisher --output ./mocks --outpkg mocks --case=underscore
type EventPublisher interface {
	PublishGameplayEvent(ctx context.Context, event GameplayEvent) error
}
