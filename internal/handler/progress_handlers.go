package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// previewOption обрабатывает GET /options/:optionId/preview.
// Ничего не меняет, поэтому игрок не нужен.
func (h *GameHandler) previewOption(c *gin.Context) {
	result, err := h.games.PreviewOption(c.Request.Context(), c.Param("optionId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// selectOption applies an option. The Idempotency-Key header makes retries safe.
func (h *GameHandler) selectOption(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	optionID := c.Param("optionId")

	result, err := h.games.SelectOption(c.Request.Context(), player.ID, optionID, idempotencyKey(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// Повтор по тому же ключу не считается новым выбором в метриках
	if result.Replayed {
		optionsSelectedTotal.WithLabelValues("replayed").Inc()
	} else {
		optionsSelectedTotal.WithLabelValues("applied").Inc()
		recordEffects(result.Effects)
	}
	h.logger.Debug("Option selected",
		zap.String("playerID", player.ID.String()),
		zap.String("optionID", optionID),
		zap.Bool("replayed", result.Replayed))
	c.JSON(http.StatusOK, result)
}

// advance обрабатывает POST /progress/advance: переход по default-next текущей сцены.
func (h *GameHandler) advance(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	result, err := h.games.Advance(c.Request.Context(), player.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	transitionsTotal.WithLabelValues("advance").Inc()
	c.JSON(http.StatusOK, result)
}

// completeMinigame обрабатывает POST /minigames/complete.
func (h *GameHandler) completeMinigame(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	// won обязателен, поэтому в запросе он указатель
	var req completeMinigameRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.games.CompleteMinigame(c.Request.Context(), player.ID, req.SceneID, req.GameID, *req.Won)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	kind := "minigame_lose"
	if *req.Won {
		kind = "minigame_win"
	}
	transitionsTotal.WithLabelValues(kind).Inc()
	c.JSON(http.StatusOK, result)
}

// listAffinities обрабатывает GET /affinities.
func (h *GameHandler) listAffinities(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	records, err := h.games.ListAffinities(c.Request.Context(), player.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]AffinityResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, AffinityResponse{CharacterID: r.TargetCharacterID, Score: r.Score})
	}
	c.JSON(http.StatusOK, resp)
}

// getAffinity обрабатывает GET /affinities/:characterId.
// Для персонажа без записи возвращается 0.
func (h *GameHandler) getAffinity(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	characterID := c.Param("characterId")
	score, err := h.games.FetchAffinity(c.Request.Context(), player.ID, characterID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AffinityResponse{CharacterID: characterID, Score: score})
}
