package models

import (
	"fmt"
	"strings"
)

// Scene is a node of the story graph. Scene ids are authored keys ("chapter1_scene3"), never generated.
type Scene struct {
	ID                 string  `json:"id" db:"id"`
	ChapterID          string  `json:"chapterId" db:"chapter_id"`
	Seq                int     `json:"seq" db:"seq"`
	Title              string  `json:"title" db:"title"`
	DefaultNextSceneID *string `json:"defaultNextSceneId,omitempty" db:"default_next_scene_id"`

	// Scripts are kept sorted by Index once the scene is part of a built graph.
	Scripts []Script `json:"scripts" db:"-"`
	// Options keep authoring order.
	Options []Option `json:"options" db:"-"`
}

// HasOptions reports whether the scene ends in a player-facing choice.
func (s *Scene) HasOptions() bool {
	return len(s.Options) > 0
}

// HasMinigame reports whether the scene carries a minigame line. Such a scene is left
// only through the minigame's win or lose scene.
func (s *Scene) HasMinigame() bool {
	for i := range s.Scripts {
		if s.Scripts[i].Kind == LineKindMinigame {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the scene (an ending).
func (s *Scene) IsTerminal() bool {
	if s.HasOptions() || s.HasMinigame() {
		return false
	}
	return s.DefaultNextSceneID == nil || *s.DefaultNextSceneID == ""
}

// LineKind selects how a script line is presented.
type LineKind string

const (
	LineKindDialogue   LineKind = "dialogue"   // plain spoken line
	LineKindThought    LineKind = "thought"    // protagonist's inner voice
	LineKindNarration  LineKind = "narration"  // narrator text
	LineKindMessage    LineKind = "message"    // messenger-app message
	LineKindSystem     LineKind = "system"     // system notice
	LineKindTransition LineKind = "transition" // scene transition marker
	LineKindMinigame   LineKind = "minigame"   // embedded minigame marker, carries MinigameConfig
)

// legacyLineKinds maps the older authoring tags still found in chapter files.
var legacyLineKinds = map[string]LineKind{
	"TEXT":      LineKindDialogue,
	"THINK":     LineKindThought,
	"NARRATION": LineKindNarration,
	"KAKAO":     LineKindMessage,
	"카톡":        LineKindMessage,
	"시스템":       LineKindSystem,
	"전환":        LineKindTransition,
	"GAME":      LineKindMinigame,
}

// AllLineKinds lists every known kind.
var AllLineKinds = []LineKind{
	LineKindDialogue,
	LineKindThought,
	LineKindNarration,
	LineKindMessage,
	LineKindSystem,
	LineKindTransition,
	LineKindMinigame,
}

// Valid reports whether k is one of the known kinds.
func (k LineKind) Valid() bool {
	for _, known := range AllLineKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseLineKind accepts a canonical kind name or a legacy authoring tag.
// An empty tag defaults to dialogue, the way untyped lines were authored.
func ParseLineKind(raw string) (LineKind, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LineKindDialogue, nil
	}
	if kind := LineKind(strings.ToLower(trimmed)); kind.Valid() {
		return kind, nil
	}
	if kind, ok := legacyLineKinds[strings.ToUpper(trimmed)]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: unknown line kind %q", ErrInvalidInput, raw)
}

// MinigameConfig is the structured payload of a minigame line.
type MinigameConfig struct {
	GameID      string `json:"gameId"`
	GameName    string `json:"gameName,omitempty"`
	WinSceneID  string `json:"winSceneId"`
	LoseSceneID string `json:"loseSceneId"`
}

// Presentation holds the optional staging keys of a line. Empty strings mean "unchanged".
type Presentation struct {
	Background  string `json:"background,omitempty"`
	Bgm         string `json:"bgm,omitempty"`
	SoundEffect string `json:"soundEffect,omitempty"`
	Overlay     string `json:"overlay,omitempty"`
	// Portraits maps a stage position ("1", "2", "3" or "all") to a portrait key.
	Portraits map[string]string `json:"portraits,omitempty"`
}

// IsZero reports whether no presentation key is set.
func (p Presentation) IsZero() bool {
	return p.Background == "" && p.Bgm == "" && p.SoundEffect == "" && p.Overlay == "" && len(p.Portraits) == 0
}

// Script is one line of a scene.
type Script struct {
	ID           string          `json:"id" db:"id"`
	SceneID      string          `json:"sceneId" db:"scene_id"`
	Index        int             `json:"index" db:"line_index"`
	Kind         LineKind        `json:"kind" db:"kind"`
	SpeakerID    *string         `json:"speakerId,omitempty" db:"speaker_id"`
	Content      string          `json:"content" db:"content"`
	Presentation Presentation    `json:"presentation" db:"presentation"`
	Minigame     *MinigameConfig `json:"minigame,omitempty" db:"minigame"`
}

// Option is a player-facing choice attached to a scene.
type Option struct {
	ID          string        `json:"id" db:"id"`
	SceneID     string        `json:"sceneId" db:"scene_id"`
	Position    int           `json:"position" db:"position"`
	Text        string        `json:"text" db:"text"`
	NextSceneID string        `json:"nextSceneId" db:"next_scene_id"`
	Scores      []OptionScore `json:"scores" db:"-"`
}

// OptionScore is one affinity effect of choosing an option.
type OptionScore struct {
	OptionID          string `json:"optionId" db:"option_id"`
	Position          int    `json:"position" db:"position"`
	TargetCharacterID string `json:"targetCharacterId" db:"target_character_id"`
	Delta             int    `json:"delta" db:"delta"`
}

// Character is an optional display-name entry for a speaker id.
type Character struct {
	ID          string `json:"id" db:"id"`
	DisplayName string `json:"displayName" db:"display_name"`
}

// StoryContent is authored content before it is built into a graph.
type StoryContent struct {
	Scenes     []Scene     `json:"scenes"`
	Characters []Character `json:"characters"`
}
