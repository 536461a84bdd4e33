package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Длина имени в рунах: корейское имя считается по слогам, а не по байтам
const maxPlayerNameRunes = 20

// PlayerService manages the in-game identity of accounts.
//
//go:generate mockery --name PlayerService --output ./mocks --outpkg mocks --case=underscore
type PlayerService interface {
	// CreatePlayer places a new player at the start scene.
	CreatePlayer(ctx context.Context, accountID uuid.UUID, name string) (*models.Player, error)
	GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error)
	// GetPlayerByAccount returns models.ErrPlayerNotFound until CreatePlayer was called.
	GetPlayerByAccount(ctx context.Context, accountID uuid.UUID) (*models.Player, error)
	Rename(ctx context.Context, playerID uuid.UUID, name string) (*models.Player, error)
}

// playerServiceImpl реализует PlayerService.
type playerServiceImpl struct {
	players interfaces.PlayerRepository
	db      interfaces.DBTX
	opts    Options
	logger  *zap.Logger
}

// NewPlayerService creates the player service.
func NewPlayerService(players interfaces.PlayerRepository, db interfaces.DBTX, opts Options, logger *zap.Logger) PlayerService {
	return &playerServiceImpl{
		players: players,
		db:      db,
		opts:    opts,
		logger:  logger.Named("PlayerService"),
	}
}

// normalizeName trims and NFC-normalizes a display name.
func normalizeName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxPlayerNameRunes {
		return "", fmt.Errorf("%w: name longer than %d characters", models.ErrInvalidInput, maxPlayerNameRunes)
	}
	return name, nil
}

func (s *playerServiceImpl) CreatePlayer(ctx context.Context, accountID uuid.UUID, name string) (*models.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if accountID == uuid.Nil {
		return nil, fmt.Errorf("%w: account id is required", models.ErrInvalidInput)
	}

	player := &models.Player{AccountID: &accountID, Name: name}
	// Новый игрок сразу стоит на стартовой сцене
	if s.opts.StartSceneID != "" {
		start := s.opts.StartSceneID
		player.CurrentSceneID = &start
	}
	// Второй игрок на тот же аккаунт дает ErrPlayerExists из репозитория
	if err := s.players.Create(ctx, s.db, player); err != nil {
		return nil, err
	}
	s.logger.Info("Player created",
		zap.String("playerID", player.ID.String()),
		zap.String("accountID", accountID.String()),
		zap.String("startSceneID", s.opts.StartSceneID))
	return player, nil
}

func (s *playerServiceImpl) GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	return s.players.GetByID(ctx, s.db, playerID)
}

func (s *playerServiceImpl) GetPlayerByAccount(ctx context.Context, accountID uuid.UUID) (*models.Player, error) {
	return s.players.GetByAccountID(ctx, s.db, accountID)
}

func (s *playerServiceImpl) Rename(ctx context.Context, playerID uuid.UUID, name string) (*models.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.players.UpdateName(ctx, s.db, playerID, name); err != nil {
		return nil, err
	}
	// Перечитываем, чтобы вернуть актуальный updated_at
	return s.players.GetByID(ctx, s.db, playerID)
}
