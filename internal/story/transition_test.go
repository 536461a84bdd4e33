package story

import (
	"testing"

	"vn-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOption(t *testing.T) {
	g := mustBuild(testContent())

	t.Run("Effects in stored order", func(t *testing.T) {
		tr, err := g.ResolveOption("opt_dohee_soup")
		require.NoError(t, err)
		assert.Equal(t, "chapter1_scene3", tr.FromSceneID)
		assert.Equal(t, "ending_good", tr.NextSceneID)
		assert.Equal(t, []models.AffinityEffect{
			{TargetCharacterID: "dohee", Delta: 10},
			{TargetCharacterID: "jisoo", Delta: -3},
		}, tr.Effects)
		assert.Equal(t, map[string]int{"dohee": 10, "jisoo": -3}, tr.Deltas())
	})

	t.Run("Option without scores", func(t *testing.T) {
		tr, err := g.ResolveOption("opt_game")
		require.NoError(t, err)
		assert.Empty(t, tr.Effects)
		assert.Equal(t, "chapter2_scene1", tr.NextSceneID)
	})

	t.Run("Unknown option", func(t *testing.T) {
		_, err := g.ResolveOption("opt_missing")
		assert.ErrorIs(t, err, models.ErrOptionNotFound)
	})
}

func TestDefaultNext(t *testing.T) {
	g := mustBuild(testContent())

	next, err := g.DefaultNext("chapter1_scene2")
	require.NoError(t, err)
	assert.Equal(t, "chapter1_scene3", next)

	_, err = g.DefaultNext("chapter1_scene3")
	assert.ErrorIs(t, err, models.ErrChoiceRequired)

	_, err = g.DefaultNext("ending_good")
	assert.ErrorIs(t, err, models.ErrTerminalScene)

	_, err = g.DefaultNext("chapter2_scene1")
	assert.ErrorIs(t, err, models.ErrMinigameRequired)

	terminal, err := g.IsTerminal("chapter2_scene1")
	require.NoError(t, err)
	assert.False(t, terminal)

	_, err = g.DefaultNext("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTerminalScenes(t *testing.T) {
	g := mustBuild(testContent())
	for _, summary := range g.ListScenes() {
		terminal, err := g.IsTerminal(summary.ID)
		require.NoError(t, err)
		if !terminal {
			continue
		}
		_, err = g.DefaultNext(summary.ID)
		assert.ErrorIs(t, err, models.ErrTerminalScene, summary.ID)
		opts, err := g.OptionsForScene(summary.ID)
		require.NoError(t, err)
		assert.Empty(t, opts, summary.ID)
	}
}

func TestMinigameOutcome(t *testing.T) {
	g := mustBuild(testContent())

	win, err := g.MinigameOutcome("chapter2_scene1", "refactor_game", true)
	require.NoError(t, err)
	assert.Equal(t, "ending_good", win)

	lose, err := g.MinigameOutcome("chapter2_scene1", "", false)
	require.NoError(t, err)
	assert.Equal(t, "ending_bad", lose)

	_, err = g.MinigameOutcome("chapter2_scene1", "other_game", true)
	assert.ErrorIs(t, err, models.ErrMinigameMismatch)

	_, err = g.MinigameOutcome("chapter1_scene2", "", true)
	assert.ErrorIs(t, err, models.ErrNotMinigameScene)
}
