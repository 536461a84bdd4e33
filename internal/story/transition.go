package story

import (
	"fmt"

	"vn-server/internal/models"
)

// Transition is the pure outcome of choosing an option: the effects in stored
// order and the scene to move to. Nothing is applied here.
type Transition struct {
	OptionID    string
	FromSceneID string
	NextSceneID string
	Effects     []models.AffinityEffect
}

// Deltas sums the effects per character.
func (t *Transition) Deltas() map[string]int {
	out := make(map[string]int, len(t.Effects))
	for _, e := range t.Effects {
		out[e.TargetCharacterID] += e.Delta
	}
	return out
}

// ResolveOption looks up an option and returns its transition.
func (g *Graph) ResolveOption(optionID string) (*Transition, error) {
	opt, err := g.GetOption(optionID)
	if err != nil {
		return nil, err
	}
	effects := make([]models.AffinityEffect, 0, len(opt.Scores))
	for _, score := range opt.Scores {
		effects = append(effects, models.AffinityEffect{
			TargetCharacterID: score.TargetCharacterID,
			Delta:             score.Delta,
		})
	}
	return &Transition{
		OptionID:    opt.ID,
		FromSceneID: opt.SceneID,
		NextSceneID: opt.NextSceneID,
		Effects:     effects,
	}, nil
}

// DefaultNext returns the scene a choice-less scene advances to.
// Endings yield models.ErrTerminalScene, branching scenes models.ErrChoiceRequired,
// minigame scenes models.ErrMinigameRequired.
func (g *Graph) DefaultNext(sceneID string) (string, error) {
	scene, err := g.GetScene(sceneID)
	if err != nil {
		return "", err
	}
	if scene.HasOptions() {
		return "", fmt.Errorf("%w: %s", models.ErrChoiceRequired, sceneID)
	}
	// Мини-игра важнее default-next: иначе Advance перепрыгнул бы и выигрыш, и проигрыш.
	if scene.HasMinigame() {
		return "", fmt.Errorf("%w: %s", models.ErrMinigameRequired, sceneID)
	}
	if scene.IsTerminal() {
		return "", fmt.Errorf("%w: %s", models.ErrTerminalScene, sceneID)
	}
	return *scene.DefaultNextSceneID, nil
}

// IsTerminal reports whether the scene is an ending.
func (g *Graph) IsTerminal(sceneID string) (bool, error) {
	scene, err := g.GetScene(sceneID)
	if err != nil {
		return false, err
	}
	return scene.IsTerminal(), nil
}

// Minigame returns the first minigame line configuration of a scene.
func (g *Graph) Minigame(sceneID string) (*models.MinigameConfig, error) {
	scene, err := g.GetScene(sceneID)
	if err != nil {
		return nil, err
	}
	for _, line := range scene.Scripts {
		if line.Kind == models.LineKindMinigame && line.Minigame != nil {
			return line.Minigame, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrNotMinigameScene, sceneID)
}

// MinigameOutcome resolves the scene to move to after the minigame of sceneID.
// An empty gameID matches the scene's minigame.
func (g *Graph) MinigameOutcome(sceneID, gameID string, won bool) (string, error) {
	cfg, err := g.Minigame(sceneID)
	if err != nil {
		return "", err
	}
	if gameID != "" && gameID != cfg.GameID {
		return "", fmt.Errorf("%w: scene %s runs %q, got %q", models.ErrMinigameMismatch, sceneID, cfg.GameID, gameID)
	}
	if won {
		return cfg.WinSceneID, nil
	}
	return cfg.LoseSceneID, nil
}
