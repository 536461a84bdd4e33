package story

import (
	"sort"
	"strings"
	"unicode/utf8"

	"vn-server/internal/models"

	"golang.org/x/text/unicode/norm"
)

// Renderer personalizes scenes for a player. It holds no per-request state.
type Renderer struct {
	protagonistID string
	tokens        []string
}

// NewRenderer builds a renderer for the reserved protagonist speaker id and the
// protagonist name tokens that are replaced with the player's name.
// Tokens are tried longest first so "이도훈" is replaced before "도훈".
func NewRenderer(protagonistID string, nameTokens []string) *Renderer {
	tokens := make([]string, 0, len(nameTokens))
	for _, t := range nameTokens {
		t = norm.NFC.String(strings.TrimSpace(t))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return utf8.RuneCountInString(tokens[i]) > utf8.RuneCountInString(tokens[j])
	})
	return &Renderer{protagonistID: protagonistID, tokens: tokens}
}

// Personalize replaces every protagonist name token in text with playerName.
func (r *Renderer) Personalize(text, playerName string) string {
	text = norm.NFC.String(text)
	if playerName == "" || len(r.tokens) == 0 {
		return text
	}
	playerName = norm.NFC.String(playerName)
	// A replaced name must not be matched again by a shorter token, so the text
	// is split on the longest token first and each piece is handled recursively.
	return replaceTokens(text, r.tokens, playerName)
}

func replaceTokens(text string, tokens []string, replacement string) string {
	if len(tokens) == 0 || text == "" {
		return text
	}
	parts := strings.Split(text, tokens[0])
	for i := range parts {
		parts[i] = replaceTokens(parts[i], tokens[1:], replacement)
	}
	return strings.Join(parts, replacement)
}

// SpeakerName resolves the display name of a line's speaker.
func (r *Renderer) SpeakerName(g *Graph, speakerID *string, playerName string) string {
	if speakerID == nil || *speakerID == "" {
		return ""
	}
	if *speakerID == r.protagonistID {
		return norm.NFC.String(playerName)
	}
	if g != nil {
		if name, ok := g.CharacterName(*speakerID); ok && name != "" {
			return name
		}
	}
	return *speakerID
}

// RenderLine personalizes one script line.
func (r *Renderer) RenderLine(g *Graph, line models.Script, playerName string) models.RenderedLine {
	return models.RenderedLine{
		ID:           line.ID,
		Index:        line.Index,
		Kind:         line.Kind,
		SpeakerID:    line.SpeakerID,
		SpeakerName:  r.SpeakerName(g, line.SpeakerID, playerName),
		Text:         r.Personalize(line.Content, playerName),
		Presentation: line.Presentation,
		Minigame:     line.Minigame,
	}
}

// RenderScene produces the ordered lines and options of a scene for one player.
// It is a pure function of the graph and the name.
func (r *Renderer) RenderScene(g *Graph, sceneID, playerName string) (*models.SceneView, error) {
	scene, err := g.GetScene(sceneID)
	if err != nil {
		return nil, err
	}

	view := &models.SceneView{
		SceneID:            scene.ID,
		ChapterID:          scene.ChapterID,
		Seq:                scene.Seq,
		Title:              scene.Title,
		Lines:              make([]models.RenderedLine, 0, len(scene.Scripts)),
		Options:            make([]models.OptionView, 0, len(scene.Options)),
		DefaultNextSceneID: scene.DefaultNextSceneID,
		IsEnding:           scene.IsTerminal(),
	}
	for _, line := range scene.Scripts {
		view.Lines = append(view.Lines, r.RenderLine(g, line, playerName))
	}
	for _, opt := range scene.Options {
		view.Options = append(view.Options, models.OptionView{
			ID:          opt.ID,
			Text:        r.Personalize(opt.Text, playerName),
			NextSceneID: opt.NextSceneID,
		})
	}
	return view, nil
}
