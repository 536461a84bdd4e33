package handler

import (
	"time"

	"vn-server/internal/models"

	"github.com/google/uuid"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
}

// --- Запросы ---

type createPlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

type renamePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Ответы ---

// PlayerResponse представляет игрока в ответах API.
type PlayerResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	CurrentSceneID *string   `json:"currentSceneId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toPlayerResponse(p *models.Player) PlayerResponse {
	return PlayerResponse{
		ID:             p.ID,
		Name:           p.Name,
		CurrentSceneID: p.CurrentSceneID,
		CreatedAt:      p.CreatedAt,
	}
}

// AffinityResponse представляет очки симпатии к одному персонажу.
type AffinityResponse struct {
	CharacterID string `json:"characterId"`
	Score       int    `json:"score"`
}

type completeMinigameRequest struct {
	SceneID string `json:"sceneId"`
	GameID  string `json:"gameId"`
	// Указатель, чтобы отличить false от отсутствующего поля
	Won     *bool  `json:"won" binding:"required"`
}

// saveGameRequest: пустой sceneId значит текущая сцена игрока.
type saveGameRequest struct {
	SceneID     string `json:"sceneId"`
	PreviewText string `json:"previewText"`
}

// SaveSlotResponse carries savedAt twice: RFC3339 for clients and a display label.
type SaveSlotResponse struct {
	SlotNumber   int            `json:"slotNumber"`
	SceneID      string         `json:"sceneId"`
	PreviewText  string         `json:"previewText"`
	Affinity     map[string]int `json:"affinity,omitempty"`
	SavedAt      string         `json:"savedAt"`
	SavedAtLabel string         `json:"savedAtLabel"`
}

func toSaveSlotResponse(s *models.SaveSlot) SaveSlotResponse {
	return SaveSlotResponse{
		SlotNumber:   s.SlotNumber,
		SceneID:      s.SceneID,
		PreviewText:  s.PreviewText,
		Affinity:     s.AffinitySnapshot,
		SavedAt:      s.SavedAt.UTC().Format(time.RFC3339),
		SavedAtLabel: s.SavedAtLabel(),
	}
}

// LoadGameResponse возвращается после загрузки слота.
type LoadGameResponse struct {
	SceneID string            `json:"sceneId"`
	Scene   *models.SceneView `json:"scene"`
}
