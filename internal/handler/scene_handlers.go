package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listScenes обрабатывает GET /scenes: каталог всех сцен для отладки и редактора.
func (h *GameHandler) listScenes(c *gin.Context) {
	c.JSON(http.StatusOK, h.games.ListScenes(c.Request.Context()))
}

// getCurrentScene обрабатывает GET /scenes/current.
func (h *GameHandler) getCurrentScene(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	// Сцена рендерится под имя игрока
	view, err := h.games.FetchCurrentScene(c.Request.Context(), player.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	scenesRenderedTotal.Inc()
	c.JSON(http.StatusOK, view)
}

// getScene обрабатывает GET /scenes/:sceneId.
// Просмотр любой сцены не двигает указатель игрока.
func (h *GameHandler) getScene(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	view, err := h.games.FetchScene(c.Request.Context(), player.ID, c.Param("sceneId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	scenesRenderedTotal.Inc()
	c.JSON(http.StatusOK, view)
}
