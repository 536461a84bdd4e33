package models

import "github.com/google/uuid"

// RenderedLine is a script line with player-specific substitutions applied.
type RenderedLine struct {
	ID           string          `json:"id"`
	Index        int             `json:"index"`
	Kind         LineKind        `json:"kind"`
	SpeakerID    *string         `json:"speakerId,omitempty"`
	SpeakerName  string          `json:"speakerName,omitempty"`
	Text         string          `json:"text"`
	Presentation Presentation    `json:"presentation"`
	Minigame     *MinigameConfig `json:"minigame,omitempty"`
}

// OptionView is the player-facing part of an option. Scores stay hidden.
type OptionView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	NextSceneID string `json:"nextSceneId"`
}

// SceneView is a scene rendered for one player.
type SceneView struct {
	SceneID            string         `json:"sceneId"`
	ChapterID          string         `json:"chapterId"`
	Seq                int            `json:"seq"`
	Title              string         `json:"title"`
	Lines              []RenderedLine `json:"lines"`
	Options            []OptionView   `json:"options"`
	DefaultNextSceneID *string        `json:"defaultNextSceneId,omitempty"`
	IsEnding           bool           `json:"isEnding"`
}

// SceneSummary is a graph listing entry.
type SceneSummary struct {
	ID          string  `json:"id"`
	ChapterID   string  `json:"chapterId"`
	Seq         int     `json:"seq"`
	Title       string  `json:"title"`
	DefaultNext *string `json:"defaultNextSceneId,omitempty"`
	OptionCount int     `json:"optionCount"`
	IsEnding    bool    `json:"isEnding"`
}

// AffinityEffect is one applied score change.
type AffinityEffect struct {
	TargetCharacterID string `json:"targetCharacterId"`
	Delta             int    `json:"delta"`
}

// TransitionResult is what select/advance/minigame operations return.
type TransitionResult struct {
	PlayerID    uuid.UUID        `json:"playerId"`
	FromSceneID string           `json:"fromSceneId"`
	NextSceneID string           `json:"nextSceneId"`
	OptionID    string           `json:"optionId,omitempty"`
	Effects     []AffinityEffect `json:"effects,omitempty"`
	// Replayed is true when an earlier selection with the same idempotency key was returned.
	Replayed bool `json:"replayed"`
}
