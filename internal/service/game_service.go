package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"
	"vn-server/internal/story"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GameService drives a player through the story graph.
//
//go:generate mockery --name GameService --output ./mocks --outpkg mocks --case=underscore
type GameService interface {
	// FetchScene renders a scene for the player. Pure read.
	FetchScene(ctx context.Context, playerID uuid.UUID, sceneID string) (*models.SceneView, error)
	// FetchCurrentScene renders the scene the player is at.
	FetchCurrentScene(ctx context.Context, playerID uuid.UUID) (*models.SceneView, error)
	// FetchAffinity returns 0 for characters never affected.
	FetchAffinity(ctx context.Context, playerID uuid.UUID, characterID string) (int, error)
	ListAffinities(ctx context.Context, playerID uuid.UUID) ([]models.Affinity, error)
	// PreviewOption resolves an option without applying anything.
	PreviewOption(ctx context.Context, optionID string) (*models.TransitionResult, error)
	// SelectOption applies the option's effects and moves the player to its next scene
	// in one transaction. A non-empty idempotencyKey makes the call at-most-once per player.
	SelectOption(ctx context.Context, playerID uuid.UUID, optionID, idempotencyKey string) (*models.TransitionResult, error)
	// Advance follows the default-next pointer of the player's current scene.
	Advance(ctx context.Context, playerID uuid.UUID) (*models.TransitionResult, error)
	// CompleteMinigame moves the player to the win or lose scene of the minigame on the
	// player's current scene. A non-empty sceneID must name that scene.
	CompleteMinigame(ctx context.Context, playerID uuid.UUID, sceneID, gameID string, won bool) (*models.TransitionResult, error)
	ListScenes(ctx context.Context) []models.SceneSummary
}

// gameServiceImpl реализует GameService.
// graph неизменяем, поэтому сервис безопасен для параллельных запросов.
type gameServiceImpl struct {
	graph      *story.Graph
	renderer   *story.Renderer
	ledger     *AffinityLedger
	players    interfaces.PlayerRepository
	selections interfaces.SelectionRepository
	db         interfaces.DBTX
	tx         interfaces.Transactor
	events     eventSink
	opts       Options
	logger     *zap.Logger
}

// NewGameService creates the gameplay service. publisher may be nil.
func NewGameService(
	graph *story.Graph,
	renderer *story.Renderer,
	ledger *AffinityLedger,
	players interfaces.PlayerRepository,
	selections interfaces.SelectionRepository,
	db interfaces.DBTX,
	tx interfaces.Transactor,
	publisher interfaces.EventPublisher,
	opts Options,
	logger *zap.Logger,
) GameService {
	named := logger.Named("GameService")
	return &gameServiceImpl{
		graph:      graph,
		renderer:   renderer,
		ledger:     ledger,
		players:    players,
		selections: selections,
		db:         db,
		tx:         tx,
		events:     eventSink{publisher: publisher, logger: named, now: time.Now},
		opts:       opts,
		logger:     named,
	}
}

func (s *gameServiceImpl) FetchScene(ctx context.Context, playerID uuid.UUID, sceneID string) (*models.SceneView, error) {
	logFields := []zap.Field{zap.String("playerID", playerID.String()), zap.String("sceneID", sceneID)}

	player, err := s.players.GetByID(ctx, s.db, playerID)
	if err != nil {
		s.logger.Warn("Cannot render scene for player", append(logFields, zap.Error(err))...)
		return nil, err
	}
	// Токены имени героя заменяются на имя игрока
	view, err := s.renderer.RenderScene(s.graph, sceneID, player.Name)
	if err != nil {
		s.logger.Warn("Cannot render scene", append(logFields, zap.Error(err))...)
		return nil, err
	}
	s.logger.Debug("Scene rendered", append(logFields, zap.Int("lines", len(view.Lines)), zap.Int("options", len(view.Options)))...)
	return view, nil
}

func (s *gameServiceImpl) FetchCurrentScene(ctx context.Context, playerID uuid.UUID) (*models.SceneView, error) {
	player, err := s.players.GetByID(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}
	if player.CurrentSceneID == nil || *player.CurrentSceneID == "" {
		return nil, models.ErrNoCurrentScene
	}
	return s.renderer.RenderScene(s.graph, *player.CurrentSceneID, player.Name)
}

func (s *gameServiceImpl) FetchAffinity(ctx context.Context, playerID uuid.UUID, characterID string) (int, error) {
	if characterID == "" {
		return 0, fmt.Errorf("%w: character id is required", models.ErrInvalidInput)
	}
	// Для неизвестного игрока 404, а не 0
	if _, err := s.players.GetByID(ctx, s.db, playerID); err != nil {
		return 0, err
	}
	return s.ledger.GetScore(ctx, s.db, playerID, characterID)
}

func (s *gameServiceImpl) ListAffinities(ctx context.Context, playerID uuid.UUID) ([]models.Affinity, error) {
	if _, err := s.players.GetByID(ctx, s.db, playerID); err != nil {
		return nil, err
	}
	return s.ledger.List(ctx, s.db, playerID)
}

func (s *gameServiceImpl) PreviewOption(ctx context.Context, optionID string) (*models.TransitionResult, error) {
	tr, err := s.graph.ResolveOption(optionID)
	if err != nil {
		return nil, err
	}
	return &models.TransitionResult{
		FromSceneID: tr.FromSceneID,
		NextSceneID: tr.NextSceneID,
		OptionID:    tr.OptionID,
		Effects:     tr.Effects,
	}, nil
}

func (s *gameServiceImpl) SelectOption(ctx context.Context, playerID uuid.UUID, optionID, idempotencyKey string) (*models.TransitionResult, error) {
	key := normalizeKey(idempotencyKey)
	logFields := []zap.Field{
		zap.String("playerID", playerID.String()),
		zap.String("optionID", optionID),
		zap.Bool("idempotent", key != ""),
	}
	// Без ключа выбор at-least-once: повтор запроса прибавит очки еще раз
	if key == "" && s.opts.RequireIdempotencyKey {
		s.logger.Warn("Option selection without idempotency key rejected", logFields...)
		return nil, models.ErrIdempotencyKeyRequired
	}

	tr, err := s.graph.ResolveOption(optionID)
	if err != nil {
		s.logger.Warn("Unknown option selected", append(logFields, zap.Error(err))...)
		return nil, err
	}

	result := &models.TransitionResult{
		PlayerID:    playerID,
		FromSceneID: tr.FromSceneID,
		NextSceneID: tr.NextSceneID,
		OptionID:    tr.OptionID,
	}
	// Одна транзакция: очки, указатель сцены и запись ключа фиксируются вместе
	err = s.tx.WithTx(ctx, func(q interfaces.DBTX) error {
		if _, err := s.players.GetByIDForUpdate(ctx, q, playerID); err != nil {
			return err
		}

		if key != "" {
			// Повтор с тем же ключом возвращает записанный результат и ничего не применяет
			prev, err := s.selections.GetByKey(ctx, q, playerID, key)
			switch {
			case err == nil:
				if prev.OptionID != optionID {
					return fmt.Errorf("%w: key was used for option %s", models.ErrIdempotencyConflict, prev.OptionID)
				}
				result.NextSceneID = prev.NextSceneID
				result.Replayed = true
				return nil
			case !errors.Is(err, models.ErrNotFound):
				return err
			}
		}

		if _, err := s.ledger.ApplyEffects(ctx, q, playerID, tr.Effects); err != nil {
			return err
		}
		if err := s.players.UpdateCurrentScene(ctx, q, playerID, tr.NextSceneID); err != nil {
			return err
		}
		if key != "" {
			if err := s.selections.Create(ctx, q, &models.OptionSelection{
				PlayerID:       playerID,
				IdempotencyKey: key,
				OptionID:       optionID,
				NextSceneID:    tr.NextSceneID,
			}); err != nil {
				return err
			}
		}
		result.Effects = tr.Effects
		return nil
	})
	if err != nil {
		s.logger.Warn("Option selection failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	// Событие публикуется только после коммита и только для нового выбора
	if result.Replayed {
		s.logger.Info("Option selection replayed", logFields...)
		return result, nil
	}
	s.logger.Info("Option selected", append(logFields, zap.String("nextSceneID", result.NextSceneID), zap.Int("effects", len(result.Effects)))...)
	s.events.publish(ctx, interfaces.GameplayEvent{
		Type:        interfaces.EventOptionSelected,
		PlayerID:    playerID,
		SceneID:     result.NextSceneID,
		FromSceneID: result.FromSceneID,
		OptionID:    optionID,
		Deltas:      tr.Deltas(),
	})
	return result, nil
}

func (s *gameServiceImpl) Advance(ctx context.Context, playerID uuid.UUID) (*models.TransitionResult, error) {
	return s.commitMove(ctx, playerID, "advance", func(player *models.Player) (string, error) {
		if player.CurrentSceneID == nil || *player.CurrentSceneID == "" {
			return "", models.ErrNoCurrentScene
		}
		return s.graph.DefaultNext(*player.CurrentSceneID)
	})
}

func (s *gameServiceImpl) CompleteMinigame(ctx context.Context, playerID uuid.UUID, sceneID, gameID string, won bool) (*models.TransitionResult, error) {
	return s.commitMove(ctx, playerID, "minigame", func(player *models.Player) (string, error) {
		if player.CurrentSceneID == nil || *player.CurrentSceneID == "" {
			return "", models.ErrNoCurrentScene
		}
		current := *player.CurrentSceneID
		// Результат засчитывается только за мини-игру сцены, на которой стоит игрок.
		if sceneID != "" && sceneID != current {
			return "", fmt.Errorf("%w: minigame of scene %q completed while player is at %q", models.ErrInvalidInput, sceneID, current)
		}
		return s.graph.MinigameOutcome(current, gameID, won)
	})
}

// commitMove locks the player, asks next for the destination and stores it as the current scene.
func (s *gameServiceImpl) commitMove(ctx context.Context, playerID uuid.UUID, reason string, next func(player *models.Player) (string, error)) (*models.TransitionResult, error) {
	logFields := []zap.Field{zap.String("playerID", playerID.String()), zap.String("reason", reason)}
	result := &models.TransitionResult{PlayerID: playerID}

	err := s.tx.WithTx(ctx, func(q interfaces.DBTX) error {
		player, err := s.players.GetByIDForUpdate(ctx, q, playerID)
		if err != nil {
			return err
		}
		if player.CurrentSceneID != nil {
			result.FromSceneID = *player.CurrentSceneID
		}
		nextSceneID, err := next(player)
		if err != nil {
			return err
		}
		result.NextSceneID = nextSceneID
		return s.players.UpdateCurrentScene(ctx, q, playerID, nextSceneID)
	})
	if err != nil {
		s.logger.Warn("Scene move failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("Scene advanced", append(logFields, zap.String("from", result.FromSceneID), zap.String("to", result.NextSceneID))...)
	s.events.publish(ctx, interfaces.GameplayEvent{
		Type:        interfaces.EventSceneAdvanced,
		PlayerID:    playerID,
		SceneID:     result.NextSceneID,
		FromSceneID: result.FromSceneID,
	})
	return result, nil
}

func (s *gameServiceImpl) ListScenes(_ context.Context) []models.SceneSummary {
	return s.graph.ListScenes()
}
