package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listSaves обрабатывает GET /saves. Слоты отсортированы по номеру.
func (h *GameHandler) listSaves(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	slots, err := h.saves.ListSlots(c.Request.Context(), player.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]SaveSlotResponse, 0, len(slots))
	for i := range slots {
		resp = append(resp, toSaveSlotResponse(&slots[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// saveGame writes a slot. An empty sceneId saves the player's current scene.
func (h *GameHandler) saveGame(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	slot, err := parseSlot(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	var req saveGameRequest
	if !h.bindJSON(c, &req) {
		return
	}
	// Игрок уже загружен, так что текущую сцену берем из него
	sceneID := req.SceneID
	if sceneID == "" && player.CurrentSceneID != nil {
		sceneID = *player.CurrentSceneID
	}

	saved, err := h.saves.Save(c.Request.Context(), player.ID, slot, sceneID, req.PreviewText)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	savesTotal.WithLabelValues("save").Inc()
	c.JSON(http.StatusOK, toSaveSlotResponse(saved))
}

// loadGame обрабатывает POST /saves/:slot/load.
// Возвращает id сцены и сразу отрендеренную сцену, чтобы клиенту не нужен был второй запрос.
func (h *GameHandler) loadGame(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	slot, err := parseSlot(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	sceneID, err := h.saves.Load(ctx, player.ID, slot)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	savesTotal.WithLabelValues("load").Inc()
	transitionsTotal.WithLabelValues("load").Inc()

	// Указатель уже сдвинут, рендерим сцену слота
	view, err := h.games.FetchScene(ctx, player.ID, sceneID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.logger.Debug("Game loaded", zap.String("playerID", player.ID.String()), zap.Int("slot", slot))
	c.JSON(http.StatusOK, LoadGameResponse{SceneID: sceneID, Scene: view})
}

// deleteSave is idempotent: a missing slot is still 204.
func (h *GameHandler) deleteSave(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	slot, err := parseSlot(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if err := h.saves.Delete(c.Request.Context(), player.ID, slot); err != nil {
		h.handleServiceError(c, err)
		return
	}
	savesTotal.WithLabelValues("delete").Inc()
	c.Status(http.StatusNoContent)
}
