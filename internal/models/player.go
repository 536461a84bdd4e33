package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is the in-game identity of an account. CurrentSceneID is written only by the
// transition commit (select/advance/minigame) and by save-slot load.
type Player struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	AccountID      *uuid.UUID `json:"accountId,omitempty" db:"account_id"`
	Name           string     `json:"name" db:"name"`
	CurrentSceneID *string    `json:"currentSceneId,omitempty" db:"current_scene_id"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// Affinity is the running score of one player towards one character.
type Affinity struct {
	PlayerID          uuid.UUID `json:"playerId" db:"player_id"`
	TargetCharacterID string    `json:"targetCharacterId" db:"target_character_id"`
	Score             int       `json:"score" db:"score"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// SaveSlot is an overwritable checkpoint, unique per (player, slot number).
type SaveSlot struct {
	PlayerID    uuid.UUID `json:"playerId" db:"player_id"`
	SlotNumber  int       `json:"slotNumber" db:"slot_number"`
	SceneID     string    `json:"sceneId" db:"scene_id"`
	PreviewText string    `json:"previewText" db:"preview_text"`
	// AffinitySnapshot holds the scores at save time; restored on load only when configured.
	AffinitySnapshot map[string]int `json:"affinitySnapshot,omitempty" db:"affinity_snapshot"`
	SavedAt          time.Time      `json:"savedAt" db:"saved_at"`
}

// SavedAtLabel is the short display form used by the save/load screen.
func (s *SaveSlot) SavedAtLabel() string {
	if s.SavedAt.IsZero() {
		return ""
	}
	return s.SavedAt.Format("2006-01-02 15:04")
}

// OptionSelection records one committed option choice made under an idempotency key.
type OptionSelection struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PlayerID       uuid.UUID `json:"playerId" db:"player_id"`
	IdempotencyKey string    `json:"idempotencyKey" db:"idempotency_key"`
	OptionID       string    `json:"optionId" db:"option_id"`
	NextSceneID    string    `json:"nextSceneId" db:"next_scene_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
