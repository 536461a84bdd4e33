package story

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"vn-server/internal/models"
)

// chapterFile is the authored JSON layout of one chapter.
type chapterFile struct {
	Chapter    string            `json:"chapter"`
	Characters map[string]string `json:"characters"`
	Scenes     []sceneFile       `json:"scenes"`
}

// sceneFile: defaultNext рядом с options или мини-игрой validate отмечает предупреждением.
type sceneFile struct {
	ID          string       `json:"id"`
	Seq         int          `json:"seq"`
	Title       string       `json:"title"`
	DefaultNext *string      `json:"defaultNext"`
	Lines       []lineFile   `json:"lines"`
	Options     []optionFile `json:"options"`
}

type lineFile struct {
	ID         string                 `json:"id"`
	Index      *int                   `json:"index"`
	Kind       string                 `json:"kind"`
	Speaker    *string                `json:"speaker"`
	Text       string                 `json:"text"`
	Background string                 `json:"background"`
	Bgm        string                 `json:"bgm"`
	Sfx        string                 `json:"sfx"`
	Overlay    string                 `json:"overlay"`
	Portraits  map[string]string      `json:"portraits"`
	// Только для строк GAME/minigame
	Minigame   *models.MinigameConfig `json:"minigame"`
}

type optionFile struct {
	ID     string      `json:"id"`
	Text   string      `json:"text"`
	Next   string      `json:"next"`
	Scores []scoreFile `json:"scores"`
}

type scoreFile struct {
	Target string `json:"target"`
	Delta  int    `json:"delta"`
}

// ParseChapter decodes one chapter document. Unknown fields are rejected.
func ParseChapter(r io.Reader) (*models.StoryContent, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file chapterFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode chapter: %w", err)
	}
	if strings.TrimSpace(file.Chapter) == "" {
		return nil, fmt.Errorf("%w: chapter id is empty", models.ErrInvalidInput)
	}

	content := &models.StoryContent{
		Scenes:     make([]models.Scene, 0, len(file.Scenes)),
		Characters: make([]models.Character, 0, len(file.Characters)),
	}
	// Порядок map случайный, сортируем для стабильного результата
	for id, name := range file.Characters {
		content.Characters = append(content.Characters, models.Character{ID: id, DisplayName: name})
	}
	sort.Slice(content.Characters, func(i, j int) bool { return content.Characters[i].ID < content.Characters[j].ID })

	for _, sf := range file.Scenes {
		scene := models.Scene{
			ID:                 sf.ID,
			ChapterID:          file.Chapter,
			Seq:                sf.Seq,
			Title:              sf.Title,
			DefaultNextSceneID: sf.DefaultNext,
			Scripts:            make([]models.Script, 0, len(sf.Lines)),
			Options:            make([]models.Option, 0, len(sf.Options)),
		}
		for i, lf := range sf.Lines {
			line, err := lf.toScript(sf.ID, i)
			if err != nil {
				return nil, fmt.Errorf("scene %s line %d: %w", sf.ID, i, err)
			}
			scene.Scripts = append(scene.Scripts, line)
		}
		// Position варианта это его порядок в файле
		for i, of := range sf.Options {
			opt := models.Option{
				ID:          of.ID,
				SceneID:     sf.ID,
				Position:    i,
				Text:        of.Text,
				NextSceneID: of.Next,
				Scores:      make([]models.OptionScore, 0, len(of.Scores)),
			}
			for k, score := range of.Scores {
				opt.Scores = append(opt.Scores, models.OptionScore{
					OptionID:          of.ID,
					Position:          k,
					TargetCharacterID: score.Target,
					Delta:             score.Delta,
				})
			}
			scene.Options = append(scene.Options, opt)
		}
		content.Scenes = append(content.Scenes, scene)
	}
	return content, nil
}

// toScript converts a line. A missing index becomes the 1-based position and a
// missing id becomes "<sceneId>_<index>".
func (lf lineFile) toScript(sceneID string, position int) (models.Script, error) {
	kind, err := models.ParseLineKind(lf.Kind)
	if err != nil {
		return models.Script{}, err
	}
	index := position + 1
	if lf.Index != nil {
		index = *lf.Index
	}
	id := lf.ID
	if id == "" {
		id = fmt.Sprintf("%s_%d", sceneID, index)
	}
	return models.Script{
		ID:        id,
		SceneID:   sceneID,
		Index:     index,
		Kind:      kind,
		SpeakerID: lf.Speaker,
		Content:   lf.Text,
		Presentation: models.Presentation{
			Background:  lf.Background,
			Bgm:         lf.Bgm,
			SoundEffect: lf.Sfx,
			Overlay:     lf.Overlay,
			Portraits:   lf.Portraits,
		},
		Minigame: lf.Minigame,
	}, nil
}

// LoadFS reads every *.json file at the root of fsys in name order and merges
// them into one content set. Character names defined twice must agree.
func LoadFS(fsys fs.FS) (*models.StoryContent, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list content files: %w", err)
	}
	sort.Strings(names)

	merged := &models.StoryContent{}
	characters := make(map[string]string)
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		chapter, err := ParseChapter(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, c := range chapter.Characters {
			if prev, ok := characters[c.ID]; ok {
				if prev != c.DisplayName {
					return nil, fmt.Errorf("%w: %s: character %q is %q elsewhere", models.ErrInvalidInput, name, c.ID, prev)
				}
				continue
			}
			characters[c.ID] = c.DisplayName
			merged.Characters = append(merged.Characters, c)
		}
		merged.Scenes = append(merged.Scenes, chapter.Scenes...)
	}
	if len(merged.Scenes) == 0 {
		return nil, fmt.Errorf("%w: no scenes found", models.ErrInvalidInput)
	}
	return merged, nil
}
