package service

import (
	"context"
	"errors"
	"testing"

	"vn-server/internal/interfaces"
	"vn-server/internal/interfaces/mocks"
	"vn-server/internal/models"
	"vn-server/internal/story"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gameDeps struct {
	players    *mocks.PlayerRepository
	selections *mocks.SelectionRepository
	tx         *mocks.Transactor
	publisher  *mocks.EventPublisher
	affinity   *memAffinityRepo
	ledger     *AffinityLedger
}

func newTestGameService(t *testing.T, opts Options) (GameService, *gameDeps) {
	t.Helper()
	deps := &gameDeps{
		players:    mocks.NewPlayerRepository(t),
		selections: mocks.NewSelectionRepository(t),
		tx:         mocks.NewTransactor(t),
		publisher:  mocks.NewEventPublisher(t),
		affinity:   newMemAffinityRepo(),
	}
	logger := zap.NewNop()
	deps.ledger = NewAffinityLedger(deps.affinity, logger)
	svc := NewGameService(
		testGraph(),
		story.NewRenderer("hero", []string{"도훈", "이도훈"}),
		deps.ledger,
		deps.players,
		deps.selections,
		nil,
		deps.tx,
		deps.publisher,
		opts,
		logger,
	)
	svc.(*gameServiceImpl).events.now = fixedNow
	return svc, deps
}

func isEvent(eventType interfaces.GameplayEventType) any {
	return mock.MatchedBy(func(e interfaces.GameplayEvent) bool { return e.Type == eventType })
}

func TestGameService_FetchScene(t *testing.T) {
	ctx := context.Background()
	playerID := uuid.New()
	player := &models.Player{ID: playerID, Name: "현수"}

	t.Run("Success personalizes lines", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		deps.players.On("GetByID", ctx, mock.Anything, playerID).Return(player, nil).Once()

		view, err := svc.FetchScene(ctx, playerID, "chapter1_scene2")
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, "현수", view.Lines[0].SpeakerName)
		assert.Equal(t, "현수 님, 축하합니다", view.Lines[0].Text)
		assert.Empty(t, view.Options)
		require.NotNil(t, view.DefaultNextSceneID)
		assert.Equal(t, "chapter1_scene3", *view.DefaultNextSceneID)
	})

	t.Run("Player not found", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		deps.players.On("GetByID", ctx, mock.Anything, playerID).Return(nil, models.ErrPlayerNotFound).Once()

		_, err := svc.FetchScene(ctx, playerID, "chapter1_scene2")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Scene not found", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		deps.players.On("GetByID", ctx, mock.Anything, playerID).Return(player, nil).Once()

		_, err := svc.FetchScene(ctx, playerID, "missing")
		assert.ErrorIs(t, err, models.ErrSceneNotFound)
	})

	t.Run("Current scene", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		deps.players.On("GetByID", ctx, mock.Anything, playerID).
			Return(&models.Player{ID: playerID, Name: "현수", CurrentSceneID: strPtr("chapter2_scene2")}, nil).Once()

		view, err := svc.FetchCurrentScene(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, "chapter2_scene2", view.SceneID)
		assert.Len(t, view.Options, 2)
	})

	t.Run("No current scene", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		deps.players.On("GetByID", ctx, mock.Anything, playerID).Return(player, nil).Once()

		_, err := svc.FetchCurrentScene(ctx, playerID)
		assert.ErrorIs(t, err, models.ErrNoCurrentScene)
	})
}

func TestGameService_FetchAffinity(t *testing.T) {
	ctx := context.Background()
	playerID := uuid.New()

	t.Run("Absent record reads as zero", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		deps.players.On("GetByID", ctx, mock.Anything, playerID).Return(&models.Player{ID: playerID}, nil).Once()

		score, err := svc.FetchAffinity(ctx, playerID, "dohee")
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})

	t.Run("Empty character", func(t *testing.T) {
		svc, _ := newTestGameService(t, Options{})
		_, err := svc.FetchAffinity(ctx, playerID, "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestGameService_SelectOption(t *testing.T) {
	ctx := context.Background()
	playerID := uuid.New()
	player := &models.Player{ID: playerID, Name: "현수", CurrentSceneID: strPtr("chapter2_scene2")}

	t.Run("Applies effects and commits next scene", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Once()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter2_scene2_dohee").Return(nil).Once()
		deps.publisher.On("PublishGameplayEvent", ctx, mock.MatchedBy(func(e interfaces.GameplayEvent) bool {
			return e.Type == interfaces.EventOptionSelected &&
				e.OptionID == "opt_dohee_soup" &&
				e.Deltas["dohee"] == 10 &&
				e.OccurredAt.Equal(fixedNow())
		})).Return(nil).Once()

		result, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "")
		require.NoError(t, err)
		assert.Equal(t, "chapter2_scene2_dohee", result.NextSceneID)
		assert.Equal(t, "chapter2_scene2", result.FromSceneID)
		assert.False(t, result.Replayed)
		assert.Equal(t, []models.AffinityEffect{{TargetCharacterID: "dohee", Delta: 10}}, result.Effects)

		score, err := deps.ledger.GetScore(ctx, nil, playerID, "dohee")
		require.NoError(t, err)
		assert.Equal(t, 10, score)
	})

	t.Run("Selecting twice without key doubles the deltas", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Twice()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter2_scene2_dohee").Return(nil).Twice()
		deps.publisher.On("PublishGameplayEvent", ctx, isEvent(interfaces.EventOptionSelected)).Return(nil).Twice()

		for i := 0; i < 2; i++ {
			_, err := svc.SelectOption(ctx, playerID, "opt_rivals", "")
			require.NoError(t, err)
		}

		snapshot, err := deps.ledger.Snapshot(ctx, nil, playerID)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"sera": 10, "jisoo": -10}, snapshot)

		dohee, err := deps.ledger.GetScore(ctx, nil, playerID, "dohee")
		require.NoError(t, err)
		assert.Equal(t, 0, dohee)
	})

	t.Run("Idempotency key replays without reapplying", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Twice()
		deps.selections.On("GetByKey", ctx, mock.Anything, playerID, "req-1").Return(nil, models.ErrNotFound).Once()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter2_scene2_dohee").Return(nil).Once()
		deps.selections.On("Create", ctx, mock.Anything, mock.MatchedBy(func(sel *models.OptionSelection) bool {
			return sel.IdempotencyKey == "req-1" && sel.OptionID == "opt_dohee_soup" && sel.NextSceneID == "chapter2_scene2_dohee"
		})).Return(nil).Once()
		deps.publisher.On("PublishGameplayEvent", ctx, isEvent(interfaces.EventOptionSelected)).Return(nil).Once()
		deps.selections.On("GetByKey", ctx, mock.Anything, playerID, "req-1").Return(&models.OptionSelection{
			PlayerID: playerID, IdempotencyKey: "req-1", OptionID: "opt_dohee_soup", NextSceneID: "chapter2_scene2_dohee",
		}, nil).Once()

		first, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "req-1")
		require.NoError(t, err)
		assert.False(t, first.Replayed)

		second, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", " req-1 ")
		require.NoError(t, err)
		assert.True(t, second.Replayed)
		assert.Equal(t, "chapter2_scene2_dohee", second.NextSceneID)
		assert.Empty(t, second.Effects)

		score, err := deps.ledger.GetScore(ctx, nil, playerID, "dohee")
		require.NoError(t, err)
		assert.Equal(t, 10, score)
	})

	t.Run("Key reused for another option", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Once()
		deps.selections.On("GetByKey", ctx, mock.Anything, playerID, "req-1").Return(&models.OptionSelection{OptionID: "opt_rivals"}, nil).Once()

		_, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "req-1")
		assert.ErrorIs(t, err, models.ErrIdempotencyConflict)
		deps.players.AssertNotCalled(t, "UpdateCurrentScene", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Key required by policy", func(t *testing.T) {
		svc, _ := newTestGameService(t, Options{RequireIdempotencyKey: true})
		_, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "  ")
		assert.ErrorIs(t, err, models.ErrIdempotencyKeyRequired)
	})

	t.Run("Unknown option", func(t *testing.T) {
		svc, _ := newTestGameService(t, Options{})
		_, err := svc.SelectOption(ctx, playerID, "opt_missing", "")
		assert.ErrorIs(t, err, models.ErrOptionNotFound)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Unknown player applies nothing", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(nil, models.ErrPlayerNotFound).Once()

		_, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "")
		assert.ErrorIs(t, err, models.ErrPlayerNotFound)
		snapshot, _ := deps.ledger.Snapshot(ctx, nil, playerID)
		assert.Empty(t, snapshot)
	})

	t.Run("Scene update failure surfaces", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		dbErr := errors.New("connection reset")
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Once()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter2_scene2_dohee").Return(dbErr).Once()

		_, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "")
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Publisher failure does not fail the selection", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Once()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter2_scene2_dohee").Return(nil).Once()
		deps.publisher.On("PublishGameplayEvent", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		result, err := svc.SelectOption(ctx, playerID, "opt_dohee_soup", "")
		require.NoError(t, err)
		assert.Equal(t, "chapter2_scene2_dohee", result.NextSceneID)
	})
}

func TestGameService_PreviewOption(t *testing.T) {
	svc, _ := newTestGameService(t, Options{})

	result, err := svc.PreviewOption(context.Background(), "opt_rivals")
	require.NoError(t, err)
	assert.Equal(t, "chapter2_scene2_dohee", result.NextSceneID)
	assert.Equal(t, []models.AffinityEffect{
		{TargetCharacterID: "sera", Delta: 5},
		{TargetCharacterID: "jisoo", Delta: -5},
	}, result.Effects)
}

func TestGameService_Advance(t *testing.T) {
	ctx := context.Background()
	playerID := uuid.New()
	at := func(sceneID string) *models.Player {
		return &models.Player{ID: playerID, Name: "현수", CurrentSceneID: strPtr(sceneID)}
	}

	t.Run("Default transition", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(at("chapter1_scene2"), nil).Once()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter1_scene3").Return(nil).Once()
		deps.publisher.On("PublishGameplayEvent", ctx, isEvent(interfaces.EventSceneAdvanced)).Return(nil).Once()

		result, err := svc.Advance(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, "chapter1_scene2", result.FromSceneID)
		assert.Equal(t, "chapter1_scene3", result.NextSceneID)
	})

	t.Run("Terminal scene", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(at("chapter1_scene3"), nil).Once()

		_, err := svc.Advance(ctx, playerID)
		assert.ErrorIs(t, err, models.ErrTerminalScene)
	})

	t.Run("Choice required", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(at("chapter2_scene2"), nil).Once()

		_, err := svc.Advance(ctx, playerID)
		assert.ErrorIs(t, err, models.ErrChoiceRequired)
	})

	// Advance не может пропустить мини-игру: из сцены выходят только через win или lose.
	t.Run("Minigame required", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(at("chapter2_scene1"), nil).Once()

		_, err := svc.Advance(ctx, playerID)
		assert.ErrorIs(t, err, models.ErrMinigameRequired)
		deps.players.AssertNotCalled(t, "UpdateCurrentScene", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No current scene", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(&models.Player{ID: playerID}, nil).Once()

		_, err := svc.Advance(ctx, playerID)
		assert.ErrorIs(t, err, models.ErrNoCurrentScene)
	})
}

func TestGameService_CompleteMinigame(t *testing.T) {
	ctx := context.Background()
	playerID := uuid.New()
	player := &models.Player{ID: playerID, CurrentSceneID: strPtr("chapter2_scene1")}

	cases := []struct {
		name string
		won  bool
		want string
	}{
		{"Win", true, "chapter2_scene2"},
		{"Lose", false, "chapter1_scene3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestGameService(t, Options{})
			passThroughTx(deps.tx)
			deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Once()
			deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, tc.want).Return(nil).Once()
			deps.publisher.On("PublishGameplayEvent", ctx, isEvent(interfaces.EventSceneAdvanced)).Return(nil).Once()

			result, err := svc.CompleteMinigame(ctx, playerID, "", "refactor_game", tc.won)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.NextSceneID)
		})
	}

	t.Run("Explicit scene matching the current one", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(player, nil).Once()
		deps.players.On("UpdateCurrentScene", ctx, mock.Anything, playerID, "chapter2_scene2").Return(nil).Once()
		deps.publisher.On("PublishGameplayEvent", ctx, isEvent(interfaces.EventSceneAdvanced)).Return(nil).Once()

		result, err := svc.CompleteMinigame(ctx, playerID, "chapter2_scene1", "refactor_game", true)
		require.NoError(t, err)
		assert.Equal(t, "chapter2_scene1", result.FromSceneID)
	})

	t.Run("Scene without minigame", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).
			Return(&models.Player{ID: playerID, CurrentSceneID: strPtr("chapter1_scene2")}, nil).Once()

		_, err := svc.CompleteMinigame(ctx, playerID, "", "", true)
		assert.ErrorIs(t, err, models.ErrNotMinigameScene)
	})

	// Игрок на концовке не должен попасть в ветку победы чужой сцены.
	t.Run("Minigame of another scene from an ending", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).
			Return(&models.Player{ID: playerID, CurrentSceneID: strPtr("chapter1_scene3")}, nil).Once()

		result, err := svc.CompleteMinigame(ctx, playerID, "chapter2_scene1", "refactor_game", true)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Nil(t, result)
		deps.players.AssertNotCalled(t, "UpdateCurrentScene", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		deps.publisher.AssertNotCalled(t, "PublishGameplayEvent", mock.Anything, mock.Anything)
	})

	t.Run("No current scene", func(t *testing.T) {
		svc, deps := newTestGameService(t, Options{})
		passThroughTx(deps.tx)
		deps.players.On("GetByIDForUpdate", ctx, mock.Anything, playerID).Return(&models.Player{ID: playerID}, nil).Once()

		_, err := svc.CompleteMinigame(ctx, playerID, "chapter2_scene1", "", true)
		assert.ErrorIs(t, err, models.ErrNoCurrentScene)
	})
}

func TestGameService_ListScenes(t *testing.T) {
	svc, _ := newTestGameService(t, Options{})
	scenes := svc.ListScenes(context.Background())
	require.Len(t, scenes, 5)
	assert.Equal(t, "chapter1_scene2", scenes[0].ID)
}
