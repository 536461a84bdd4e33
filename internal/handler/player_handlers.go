package handler

import (
	"net/http"

	"vn-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// createPlayer обрабатывает POST /players/me.
// Игрок привязывается к аккаунту из токена и ставится на стартовую сцену.
func (h *GameHandler) createPlayer(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		h.handleServiceError(c, models.ErrUnauthorized)
		return
	}
	// Имя проверяется в сервисе (NFC, trim, длина)
	var req createPlayerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	player, err := h.players.CreatePlayer(c.Request.Context(), accountID, req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.logger.Info("Player created", zap.String("playerID", player.ID.String()))
	c.JSON(http.StatusCreated, toPlayerResponse(player))
}

// getMe обрабатывает GET /players/me.
func (h *GameHandler) getMe(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPlayerResponse(player))
}

// renamePlayer обрабатывает PATCH /players/me.
func (h *GameHandler) renamePlayer(c *gin.Context) {
	player, ok := h.currentPlayer(c)
	if !ok {
		return
	}
	var req renamePlayerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	updated, err := h.players.Rename(c.Request.Context(), player.ID, req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlayerResponse(updated))
}
