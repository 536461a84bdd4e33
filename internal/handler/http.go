// Package handler exposes the narrative engine over HTTP with gin.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vn-server/internal/models"
	"vn-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client key for option selection.
const IdempotencyKeyHeader = "Idempotency-Key"

// GameHandler обрабатывает HTTP запросы игрового API.
type GameHandler struct {
	games   service.GameService
	saves   service.SaveService
	players service.PlayerService
	logger  *zap.Logger
}

// NewGameHandler создает новый GameHandler.
func NewGameHandler(games service.GameService, saves service.SaveService, players service.PlayerService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		games:   games,
		saves:   saves,
		players: players,
		logger:  logger.Named("GameHandler"),
	}
}

// RegisterRoutes mounts every gameplay route under rg. auth must put the account id
// on the context. limiter guards the state-changing routes.
func (h *GameHandler) RegisterRoutes(rg gin.IRouter, auth gin.HandlerFunc, limiter gin.HandlerFunc) {
	api := rg.Group("", auth)

	// --- Игрок ---
	players := api.Group("/players")
	{
		players.POST("/me", h.createPlayer)
		players.GET("/me", h.getMe)
		players.PATCH("/me", h.renamePlayer)
	}

	// --- Сцены (только чтение) ---
	scenes := api.Group("/scenes")
	{
		scenes.GET("", h.listScenes)
		scenes.GET("/current", h.getCurrentScene)
		scenes.GET("/:sceneId", h.getScene)
	}

	// --- Выборы и переходы ---
	options := api.Group("/options")
	{
		options.GET("/:optionId/preview", h.previewOption)
		options.POST("/:optionId/select", limiter, h.selectOption)
	}

	api.POST("/progress/advance", limiter, h.advance)
	api.POST("/minigames/complete", limiter, h.completeMinigame)

	// --- Симпатия ---
	affinities := api.Group("/affinities")
	{
		affinities.GET("", h.listAffinities)
		affinities.GET("/:characterId", h.getAffinity)
	}

	// --- Слоты сохранений ---
	// Удаление идемпотентно и не лимитируется
	saves := api.Group("/saves")
	{
		saves.GET("", h.listSaves)
		saves.PUT("/:slot", limiter, h.saveGame)
		saves.POST("/:slot/load", limiter, h.loadGame)
		saves.DELETE("/:slot", h.deleteSave)
	}
}

// getAccountID достает id аккаунта, который положил auth middleware.
func getAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(models.AccountIDGinKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// currentPlayer resolves the authenticated account to its player.
// On failure the response is already written.
func (h *GameHandler) currentPlayer(c *gin.Context) (*models.Player, bool) {
	accountID, ok := getAccountID(c)
	if !ok {
		h.handleServiceError(c, models.ErrUnauthorized)
		return nil, false
	}
	player, err := h.players.GetPlayerByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return player, true
}

// parseSlot читает номер слота из пути. Слоты нумеруются с 1.
func parseSlot(c *gin.Context) (int, error) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || slot < 1 {
		return 0, models.ErrInvalidInput
	}
	return slot, nil
}

// handleServiceError преобразует ошибки сервиса в HTTP ответы.
// Все ветки сравниваются через errors.Is, поэтому обернутые ошибки тоже распознаются.
func (h *GameHandler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Message: "Unauthorized"}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrIdempotencyKeyRequired):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	// Запрос корректен, но противоречит текущему состоянию игрока
	case errors.Is(err, models.ErrPlayerExists),
		errors.Is(err, models.ErrIdempotencyConflict),
		errors.Is(err, models.ErrTerminalScene),
		errors.Is(err, models.ErrChoiceRequired),
		errors.Is(err, models.ErrMinigameRequired),
		errors.Is(err, models.ErrNoCurrentScene),
		errors.Is(err, models.ErrNotMinigameScene),
		errors.Is(err, models.ErrMinigameMismatch):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: err.Error()}
	// Детали внутренних ошибок клиенту не отдаем
	default:
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}

	logFields := []zap.Field{
		zap.Int("status", statusCode),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	// 5xx пишем как Error и прикрепляем к gin-контексту для логгера запросов
	if statusCode >= http.StatusInternalServerError {
		h.logger.Error("Request failed", logFields...)
		_ = c.Error(err)
	} else {
		h.logger.Warn("Request rejected", logFields...)
	}
	c.AbortWithStatusJSON(statusCode, apiErr)
}

// bindJSON разбирает тело запроса и проверяет binding-теги.
// При ошибке ответ 400 уже записан.
func (h *GameHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Debug("Invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
		return false
	}
	return true
}

// idempotencyKey возвращает ключ идемпотентности из заголовка, пустой если его нет.
func idempotencyKey(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
}
