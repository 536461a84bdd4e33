package service

import (
	"context"
	"strings"
	"testing"

	"vn-server/internal/interfaces/mocks"
	"vn-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

func TestPlayerService(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("Create places player at start scene", func(t *testing.T) {
		players := mocks.NewPlayerRepository(t)
		svc := NewPlayerService(players, nil, Options{StartSceneID: "chapter1_scene1"}, zap.NewNop())
		players.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *models.Player) bool {
			return p.Name == "현수" && p.CurrentSceneID != nil && *p.CurrentSceneID == "chapter1_scene1" &&
				p.AccountID != nil && *p.AccountID == accountID
		})).Return(nil).Once()

		player, err := svc.CreatePlayer(ctx, accountID, norm.NFD.String(" 현수 "))
		require.NoError(t, err)
		assert.Equal(t, "현수", player.Name)
	})

	t.Run("Create rejects bad names", func(t *testing.T) {
		svc := NewPlayerService(mocks.NewPlayerRepository(t), nil, Options{}, zap.NewNop())
		_, err := svc.CreatePlayer(ctx, accountID, "   ")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		_, err = svc.CreatePlayer(ctx, accountID, strings.Repeat("가", maxPlayerNameRunes+1))
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Create duplicate account", func(t *testing.T) {
		players := mocks.NewPlayerRepository(t)
		svc := NewPlayerService(players, nil, Options{}, zap.NewNop())
		players.On("Create", ctx, mock.Anything, mock.Anything).Return(models.ErrPlayerExists).Once()

		_, err := svc.CreatePlayer(ctx, accountID, "현수")
		assert.ErrorIs(t, err, models.ErrPlayerExists)
	})

	t.Run("Rename", func(t *testing.T) {
		players := mocks.NewPlayerRepository(t)
		svc := NewPlayerService(players, nil, Options{}, zap.NewNop())
		id := uuid.New()
		players.On("UpdateName", ctx, mock.Anything, id, "세라").Return(nil).Once()
		players.On("GetByID", ctx, mock.Anything, id).Return(&models.Player{ID: id, Name: "세라"}, nil).Once()

		player, err := svc.Rename(ctx, id, "세라")
		require.NoError(t, err)
		assert.Equal(t, "세라", player.Name)
	})
}
