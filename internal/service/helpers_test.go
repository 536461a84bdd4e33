package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"vn-server/internal/interfaces"
	"vn-server/internal/interfaces/mocks"
	"vn-server/internal/models"
	"vn-server/internal/story"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func testGraph() *story.Graph {
	g, err := story.Build(&models.StoryContent{
		Scenes: []models.Scene{
			{ID: "chapter1_scene2", ChapterID: "chapter1", Seq: 2, DefaultNextSceneID: strPtr("chapter1_scene3"),
				Scripts: []models.Script{{ID: "l1", Index: 1, Kind: models.LineKindDialogue, SpeakerID: strPtr("hero"), Content: "이도훈 님, 축하합니다"}}},
			{ID: "chapter1_scene3", ChapterID: "chapter1", Seq: 3},
			{ID: "chapter2_scene2", ChapterID: "chapter2", Seq: 2,
				Options: []models.Option{
					{ID: "opt_dohee_soup", Text: "죽을 배달시켜 준다", NextSceneID: "chapter2_scene2_dohee",
						Scores: []models.OptionScore{{TargetCharacterID: "dohee", Delta: 10}}},
					{ID: "opt_rivals", Text: "둘 다", NextSceneID: "chapter2_scene2_dohee",
						Scores: []models.OptionScore{{TargetCharacterID: "sera", Delta: 5}, {TargetCharacterID: "jisoo", Delta: -5}}},
				}},
			{ID: "chapter2_scene2_dohee", ChapterID: "chapter2", Seq: 3},
			{ID: "chapter2_scene1", ChapterID: "chapter2", Seq: 1,
				Scripts: []models.Script{{ID: "g1", Index: 19, Kind: models.LineKindMinigame,
					Minigame: &models.MinigameConfig{GameID: "refactor_game", WinSceneID: "chapter2_scene2", LoseSceneID: "chapter1_scene3"}}}},
		},
	}, story.BuildOptions{})
	if err != nil {
		panic(err)
	}
	return g
}

// passThroughTx makes the Transactor mock run the callback with a nil querier.
func passThroughTx(tx *mocks.Transactor) {
	tx.On("WithTx", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(interfaces.DBTX) error) error {
		return fn(nil)
	})
}

func fixedNow() time.Time { return time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC) }

// memAffinityRepo is an in-memory AffinityRepository.
type memAffinityRepo struct {
	mu     sync.Mutex
	scores map[uuid.UUID]map[string]int
}

func newMemAffinityRepo() *memAffinityRepo {
	return &memAffinityRepo{scores: make(map[uuid.UUID]map[string]int)}
}

var _ interfaces.AffinityRepository = (*memAffinityRepo)(nil)

func (m *memAffinityRepo) Get(_ context.Context, _ interfaces.DBTX, playerID uuid.UUID, characterID string) (*models.Affinity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	score, ok := m.scores[playerID][characterID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.Affinity{PlayerID: playerID, TargetCharacterID: characterID, Score: score}, nil
}

func (m *memAffinityRepo) ListByPlayer(_ context.Context, _ interfaces.DBTX, playerID uuid.UUID) ([]models.Affinity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Affinity, 0, len(m.scores[playerID]))
	for id, score := range m.scores[playerID] {
		out = append(out, models.Affinity{PlayerID: playerID, TargetCharacterID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetCharacterID < out[j].TargetCharacterID })
	return out, nil
}

func (m *memAffinityRepo) AddDelta(_ context.Context, _ interfaces.DBTX, playerID uuid.UUID, characterID string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scores[playerID] == nil {
		m.scores[playerID] = make(map[string]int)
	}
	m.scores[playerID][characterID] += delta
	return m.scores[playerID][characterID], nil
}

func (m *memAffinityRepo) ReplaceAll(_ context.Context, _ interfaces.DBTX, playerID uuid.UUID, scores map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	replaced := make(map[string]int, len(scores))
	for k, v := range scores {
		replaced[k] = v
	}
	m.scores[playerID] = replaced
	return nil
}
