// Package story holds the immutable story graph built from authored content:
// load-time validation, line personalization and transition resolution.
package story

import (
	"fmt"
	"sort"

	"vn-server/internal/models"
)

// BuildOptions controls graph validation.
type BuildOptions struct {
	// Strict turns warnings (options next to a default-next pointer) into errors.
	Strict bool
}

// Graph is the read-only story graph. Build it once, share it between requests.
// Scenes and options returned by Graph must not be modified by callers.
type Graph struct {
	scenes     map[string]*models.Scene
	options    map[string]*models.Option
	characters map[string]string
	ordered    []*models.Scene
	warnings   []Issue
}

// Build copies content into a graph and validates it. Any error-level issue makes
// Build return a *GraphIntegrityError listing every issue found.
func Build(content *models.StoryContent, opts BuildOptions) (*Graph, error) {
	if content == nil {
		content = &models.StoryContent{}
	}

	scenes := make([]models.Scene, len(content.Scenes))
	for i, src := range content.Scenes {
		scenes[i] = cloneScene(src)
	}

	issues := validate(scenes, opts)
	var errs, warns []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		} else {
			errs = append(errs, issue)
		}
	}
	if len(errs) > 0 {
		return nil, &GraphIntegrityError{Issues: errs}
	}

	g := &Graph{
		scenes:     make(map[string]*models.Scene, len(scenes)),
		options:    make(map[string]*models.Option),
		characters: make(map[string]string, len(content.Characters)),
		ordered:    make([]*models.Scene, 0, len(scenes)),
		warnings:   warns,
	}
	for _, c := range content.Characters {
		g.characters[c.ID] = c.DisplayName
	}
	for i := range scenes {
		scene := &scenes[i]
		g.scenes[scene.ID] = scene
		g.ordered = append(g.ordered, scene)
		for j := range scene.Options {
			g.options[scene.Options[j].ID] = &scene.Options[j]
		}
	}
	sort.SliceStable(g.ordered, func(i, j int) bool {
		a, b := g.ordered[i], g.ordered[j]
		if a.ChapterID != b.ChapterID {
			return a.ChapterID < b.ChapterID
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		return a.ID < b.ID
	})
	return g, nil
}

// cloneScene deep-copies a scene, sorts its lines by index and fills owner ids.
func cloneScene(src models.Scene) models.Scene {
	dst := src
	if src.DefaultNextSceneID != nil {
		next := *src.DefaultNextSceneID
		dst.DefaultNextSceneID = &next
	}

	dst.Scripts = make([]models.Script, len(src.Scripts))
	copy(dst.Scripts, src.Scripts)
	for i := range dst.Scripts {
		dst.Scripts[i].SceneID = src.ID
		if src.Scripts[i].Presentation.Portraits != nil {
			portraits := make(map[string]string, len(src.Scripts[i].Presentation.Portraits))
			for k, v := range src.Scripts[i].Presentation.Portraits {
				portraits[k] = v
			}
			dst.Scripts[i].Presentation.Portraits = portraits
		}
		if src.Scripts[i].Minigame != nil {
			cfg := *src.Scripts[i].Minigame
			dst.Scripts[i].Minigame = &cfg
		}
	}
	sort.SliceStable(dst.Scripts, func(i, j int) bool {
		return dst.Scripts[i].Index < dst.Scripts[j].Index
	})

	dst.Options = make([]models.Option, len(src.Options))
	for i, opt := range src.Options {
		opt.Position = i
		if opt.SceneID == "" {
			opt.SceneID = src.ID
		}
		scores := make([]models.OptionScore, len(opt.Scores))
		for k, score := range opt.Scores {
			score.OptionID = opt.ID
			score.Position = k
			scores[k] = score
		}
		opt.Scores = scores
		dst.Options[i] = opt
	}
	return dst
}

// GetScene returns models.ErrSceneNotFound for unknown ids.
func (g *Graph) GetScene(sceneID string) (*models.Scene, error) {
	scene, ok := g.scenes[sceneID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSceneNotFound, sceneID)
	}
	return scene, nil
}

// HasScene reports whether sceneID is part of the graph.
func (g *Graph) HasScene(sceneID string) bool {
	_, ok := g.scenes[sceneID]
	return ok
}

// OptionsForScene returns the options of a scene in authoring order.
func (g *Graph) OptionsForScene(sceneID string) ([]models.Option, error) {
	scene, err := g.GetScene(sceneID)
	if err != nil {
		return nil, err
	}
	return scene.Options, nil
}

// GetOption returns models.ErrOptionNotFound for unknown ids.
func (g *Graph) GetOption(optionID string) (*models.Option, error) {
	opt, ok := g.options[optionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrOptionNotFound, optionID)
	}
	return opt, nil
}

// CharacterName returns the display name registered for a speaker id.
func (g *Graph) CharacterName(characterID string) (string, bool) {
	name, ok := g.characters[characterID]
	return name, ok
}

// ListScenes returns scene summaries ordered by chapter, seq and id.
func (g *Graph) ListScenes() []models.SceneSummary {
	out := make([]models.SceneSummary, 0, len(g.ordered))
	for _, scene := range g.ordered {
		out = append(out, models.SceneSummary{
			ID:          scene.ID,
			ChapterID:   scene.ChapterID,
			Seq:         scene.Seq,
			Title:       scene.Title,
			DefaultNext: scene.DefaultNextSceneID,
			OptionCount: len(scene.Options),
			IsEnding:    scene.IsTerminal(),
		})
	}
	return out
}

// Len is the number of scenes.
func (g *Graph) Len() int { return len(g.scenes) }

// Warnings returns the non-fatal issues found while building.
func (g *Graph) Warnings() []Issue { return g.warnings }
