package service

import (
	"context"
	"errors"
	"fmt"

	"vn-server/internal/interfaces"
	"vn-server/internal/story"

	"go.uber.org/zap"
)

// LoadStoryGraph читает опубликованный контент из хранилища и собирает неизменяемый граф сцен.
// Все ошибки целостности логируются по одной, предупреждения тоже, после чего
// проверяется, что стартовая сцена существует.
func LoadStoryGraph(
	ctx context.Context,
	repo interfaces.StoryContentRepository,
	db interfaces.DBTX,
	opts story.BuildOptions,
	startSceneID string,
	logger *zap.Logger,
) (*story.Graph, error) {
	log := logger.Named("StoryLoader")

	content, err := repo.LoadAll(ctx, db)
	if err != nil {
		log.Error("Failed to load story content", zap.Error(err))
		return nil, fmt.Errorf("failed to load story content: %w", err)
	}

	graph, err := story.Build(content, opts)
	if err != nil {
		var integrityErr *story.GraphIntegrityError
		if errors.As(err, &integrityErr) {
			for _, issue := range integrityErr.Issues {
				log.Error("Story content issue", zap.String("code", string(issue.Code)), zap.String("issue", issue.String()))
			}
		}
		return nil, fmt.Errorf("story graph rejected: %w", err)
	}
	// Предупреждения не блокируют запуск.
	for _, w := range graph.Warnings() {
		log.Warn("Story content warning", zap.String("code", string(w.Code)), zap.String("issue", w.String()))
	}

	if !graph.HasScene(startSceneID) {
		log.Error("Start scene is missing from the story graph", zap.String("startScene", startSceneID))
		return nil, fmt.Errorf("start scene %q is not in the story graph", startSceneID)
	}

	log.Info("Story graph loaded", zap.Int("scenes", graph.Len()), zap.Int("warnings", len(graph.Warnings())))
	return graph, nil
}
