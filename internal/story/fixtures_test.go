package story

import "vn-server/internal/models"

func strPtr(s string) *string { return &s }

// testContent is a small chapter: a linear chain, a branching scene, a minigame scene and two endings.
func testContent() *models.StoryContent {
	return &models.StoryContent{
		Characters: []models.Character{
			{ID: "dohee", DisplayName: "도희"},
			{ID: "jisoo", DisplayName: "지수"},
		},
		Scenes: []models.Scene{
			{
				ID: "chapter1_scene2", ChapterID: "chapter1", Seq: 2, Title: "지수와의 만남",
				DefaultNextSceneID: strPtr("chapter1_scene3"),
				Scripts: []models.Script{
					{ID: "c1s2_6", Index: 6, Kind: models.LineKindDialogue, SpeakerID: strPtr("jisoo"), Content: "여기요, 이도훈 님?"},
					{ID: "c1s2_1", Index: 1, Kind: models.LineKindThought, SpeakerID: strPtr("hero"), Content: "긴장해서 일찍 와버렸다."},
				},
			},
			{
				ID: "chapter1_scene3", ChapterID: "chapter1", Seq: 3, Title: "강의실",
				Scripts: []models.Script{
					{ID: "c1s3_1", Index: 1, Kind: models.LineKindNarration, Content: "강의실"},
				},
				Options: []models.Option{
					{
						ID: "opt_dohee_soup", Text: "죽을 배달시켜 준다", NextSceneID: "ending_good",
						Scores: []models.OptionScore{{TargetCharacterID: "dohee", Delta: 10}, {TargetCharacterID: "jisoo", Delta: -3}},
					},
					{ID: "opt_game", Text: "리팩토링한다", NextSceneID: "chapter2_scene1"},
				},
			},
			{
				ID: "chapter2_scene1", ChapterID: "chapter2", Seq: 1, Title: "새로운 파트너",
				Scripts: []models.Script{
					{ID: "c2s1_19", Index: 19, Kind: models.LineKindMinigame, Content: "미니게임",
						Minigame: &models.MinigameConfig{GameID: "refactor_game", WinSceneID: "ending_good", LoseSceneID: "ending_bad"}},
				},
			},
			{ID: "ending_good", ChapterID: "chapter2", Seq: 9, Title: "GOOD ENDING"},
			{ID: "ending_bad", ChapterID: "chapter2", Seq: 9, Title: "BAD ENDING"},
		},
	}
}

func mustBuild(content *models.StoryContent) *Graph {
	g, err := Build(content, BuildOptions{})
	if err != nil {
		panic(err)
	}
	return g
}
