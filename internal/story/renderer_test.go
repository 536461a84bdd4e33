package story

import (
	"testing"

	"vn-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestRendererPersonalize(t *testing.T) {
	r := NewRenderer("hero", []string{"도훈", "이도훈"})

	t.Run("Full and short name tokens", func(t *testing.T) {
		assert.Equal(t, "현수 님, 축하합니다", r.Personalize("이도훈 님, 축하합니다", "현수"))
		assert.Equal(t, "현수 오빠가?", r.Personalize("도훈 오빠가?", "현수"))
		assert.Equal(t, "현수와 현수", r.Personalize("이도훈와 도훈", "현수"))
	})

	t.Run("Replacement containing a token is not replaced again", func(t *testing.T) {
		assert.Equal(t, "김도훈 님", r.Personalize("이도훈 님", "김도훈"))
	})

	t.Run("Decomposed input is normalized", func(t *testing.T) {
		decomposed := norm.NFD.String("이도훈 님")
		assert.Equal(t, "현수 님", r.Personalize(decomposed, "현수"))
	})

	t.Run("Empty name leaves text", func(t *testing.T) {
		assert.Equal(t, "이도훈 님", r.Personalize("이도훈 님", ""))
	})
}

func TestRendererRenderScene(t *testing.T) {
	g := mustBuild(testContent())
	r := NewRenderer("hero", []string{"이도훈", "도훈"})

	t.Run("Lines ordered and personalized", func(t *testing.T) {
		view, err := r.RenderScene(g, "chapter1_scene2", "현수")
		require.NoError(t, err)

		require.Len(t, view.Lines, 2)
		assert.Equal(t, "현수", view.Lines[0].SpeakerName)
		assert.Equal(t, models.LineKindThought, view.Lines[0].Kind)
		assert.Equal(t, "지수", view.Lines[1].SpeakerName)
		assert.Equal(t, "여기요, 현수 님?", view.Lines[1].Text)
		assert.Empty(t, view.Options)
		require.NotNil(t, view.DefaultNextSceneID)
		assert.Equal(t, "chapter1_scene3", *view.DefaultNextSceneID)
		assert.False(t, view.IsEnding)
	})

	t.Run("Options exposed without scores", func(t *testing.T) {
		view, err := r.RenderScene(g, "chapter1_scene3", "현수")
		require.NoError(t, err)
		require.Len(t, view.Options, 2)
		assert.Equal(t, models.OptionView{ID: "opt_dohee_soup", Text: "죽을 배달시켜 준다", NextSceneID: "ending_good"}, view.Options[0])
		assert.Equal(t, "", view.Lines[0].SpeakerName)
	})

	t.Run("Ending flagged", func(t *testing.T) {
		view, err := r.RenderScene(g, "ending_bad", "현수")
		require.NoError(t, err)
		assert.True(t, view.IsEnding)
	})

	t.Run("Unknown scene", func(t *testing.T) {
		_, err := r.RenderScene(g, "missing", "현수")
		assert.ErrorIs(t, err, models.ErrSceneNotFound)
	})

	t.Run("Render is repeatable", func(t *testing.T) {
		first, err := r.RenderScene(g, "chapter1_scene2", "현수")
		require.NoError(t, err)
		second, err := r.RenderScene(g, "chapter1_scene2", "현수")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Unregistered speaker falls back to id", func(t *testing.T) {
		assert.Equal(t, "manager", r.SpeakerName(g, strPtr("manager"), "현수"))
		assert.Equal(t, "", r.SpeakerName(g, nil, "현수"))
	})
}
