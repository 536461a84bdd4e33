package database

import (
	"context"
	"fmt"

	"vn-server/internal/interfaces"
	"vn-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

const (
	// Порядок выборки задает порядок строк и вариантов внутри сцены
	listScenesQuery = `
        SELECT id, chapter_id, seq, title, default_next_scene_id
        FROM scenes
        ORDER BY chapter_id, seq, id
    `
	listScriptsQuery = `
        SELECT id, scene_id, line_index, kind, speaker_id, content, presentation, minigame
        FROM scripts
        ORDER BY scene_id, line_index
    `
	listOptionsQuery = `
        SELECT id, scene_id, position, text, next_scene_id
        FROM options
        ORDER BY scene_id, position
    `
	listOptionScoresQuery = `
        SELECT option_id, position, target_character_id, delta
        FROM option_scores
        ORDER BY option_id, position
    `
	listCharactersQuery = `SELECT id, display_name FROM characters ORDER BY id`

	// scripts, options и option_scores удаляются каскадом вместе со сценами
	deleteAllScenesQuery     = `DELETE FROM scenes`
	deleteAllCharactersQuery = `DELETE FROM characters`

	insertSceneQuery = `
        INSERT INTO scenes (id, chapter_id, seq, title, default_next_scene_id)
        VALUES ($1, $2, $3, $4, $5)
    `
	insertScriptQuery = `
        INSERT INTO scripts (id, scene_id, line_index, kind, speaker_id, content, presentation, minigame)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	insertOptionQuery = `
        INSERT INTO options (id, scene_id, position, text, next_scene_id)
        VALUES ($1, $2, $3, $4, $5)
    `
	insertOptionScoreQuery = `
        INSERT INTO option_scores (option_id, position, target_character_id, delta)
        VALUES ($1, $2, $3, $4)
    `
	insertCharacterQuery = `INSERT INTO characters (id, display_name) VALUES ($1, $2)`
)

var _ interfaces.StoryContentRepository = (*pgStoryContentRepository)(nil)

// pgStoryContentRepository читает и заменяет таблицы авторского контента.
type pgStoryContentRepository struct {
	logger *zap.Logger
}

// NewPgStoryContentRepository creates a repository over the authored content tables.
func NewPgStoryContentRepository(logger *zap.Logger) interfaces.StoryContentRepository {
	return &pgStoryContentRepository{logger: logger.Named("PgStoryContentRepo")}
}

// LoadAll reads the content tables and assembles scenes with their lines, options and scores.
func (r *pgStoryContentRepository) LoadAll(ctx context.Context, querier interfaces.DBTX) (*models.StoryContent, error) {
	var (
		scenes     []models.Scene
		scripts    []models.Script
		options    []models.Option
		scores     []models.OptionScore
		characters []models.Character
	)
	// Пять плоских SELECT, дерево собирается в памяти
	for _, q := range []struct {
		name  string
		dst   any
		query string
	}{
		{"scenes", &scenes, listScenesQuery},
		{"scripts", &scripts, listScriptsQuery},
		{"options", &options, listOptionsQuery},
		{"option scores", &scores, listOptionScoresQuery},
		{"characters", &characters, listCharactersQuery},
	} {
		if err := pgxscan.Select(ctx, querier, q.dst, q.query); err != nil {
			r.logger.Error("Failed to load story content", zap.String("table", q.name), zap.Error(err))
			return nil, fmt.Errorf("load %s: %w", q.name, err)
		}
	}

	// Собираем дерево: сцена -> строки, сцена -> варианты -> очки
	scoresByOption := make(map[string][]models.OptionScore, len(options))
	for _, s := range scores {
		scoresByOption[s.OptionID] = append(scoresByOption[s.OptionID], s)
	}
	sceneIndex := make(map[string]int, len(scenes))
	for i := range scenes {
		sceneIndex[scenes[i].ID] = i
	}
	// Внешний ключ гарантирует, что сцена строки существует
	for _, line := range scripts {
		if i, ok := sceneIndex[line.SceneID]; ok {
			scenes[i].Scripts = append(scenes[i].Scripts, line)
		}
	}
	for _, opt := range options {
		opt.Scores = scoresByOption[opt.ID]
		if i, ok := sceneIndex[opt.SceneID]; ok {
			scenes[i].Options = append(scenes[i].Options, opt)
		}
	}

	r.logger.Info("Story content loaded",
		zap.Int("scenes", len(scenes)),
		zap.Int("scripts", len(scripts)),
		zap.Int("options", len(options)),
		zap.Int("characters", len(characters)),
	)
	return &models.StoryContent{Scenes: scenes, Characters: characters}, nil
}

// ReplaceAll must run inside a transaction so readers never observe a partial graph.
func (r *pgStoryContentRepository) ReplaceAll(ctx context.Context, querier interfaces.DBTX, content *models.StoryContent) error {
	if _, err := querier.Exec(ctx, deleteAllScenesQuery); err != nil {
		return fmt.Errorf("clear scenes: %w", err)
	}
	if _, err := querier.Exec(ctx, deleteAllCharactersQuery); err != nil {
		return fmt.Errorf("clear characters: %w", err)
	}

	for _, c := range content.Characters {
		if _, err := querier.Exec(ctx, insertCharacterQuery, c.ID, c.DisplayName); err != nil {
			return fmt.Errorf("insert character %s: %w", c.ID, err)
		}
	}
	// Scenes first: scripts and options reference them.
	for _, scene := range content.Scenes {
		if _, err := querier.Exec(ctx, insertSceneQuery, scene.ID, scene.ChapterID, scene.Seq, scene.Title, scene.DefaultNextSceneID); err != nil {
			return fmt.Errorf("insert scene %s: %w", scene.ID, err)
		}
	}

	// position варианта и очка берется из порядка в файле главы
	var lines, opts int
	for _, scene := range content.Scenes {
		for _, line := range scene.Scripts {
			_, err := querier.Exec(ctx, insertScriptQuery,
				line.ID, scene.ID, line.Index, line.Kind, line.SpeakerID, line.Content, line.Presentation, line.Minigame)
			if err != nil {
				return fmt.Errorf("insert script %s: %w", line.ID, err)
			}
			lines++
		}
		for pos, opt := range scene.Options {
			if _, err := querier.Exec(ctx, insertOptionQuery, opt.ID, scene.ID, pos, opt.Text, opt.NextSceneID); err != nil {
				return fmt.Errorf("insert option %s: %w", opt.ID, err)
			}
			for k, score := range opt.Scores {
				if _, err := querier.Exec(ctx, insertOptionScoreQuery, opt.ID, k, score.TargetCharacterID, score.Delta); err != nil {
					return fmt.Errorf("insert score of option %s: %w", opt.ID, err)
				}
			}
			opts++
		}
	}

	r.logger.Info("Story content replaced",
		zap.Int("scenes", len(content.Scenes)),
		zap.Int("scripts", lines),
		zap.Int("options", opts),
	)
	return nil
}
