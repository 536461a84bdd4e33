package story

import (
	"fmt"
	"strings"

	"vn-server/internal/models"
)

// Severity of a content issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IssueCode identifies the kind of content problem.
type IssueCode string

const (
	IssueEmptySceneID            IssueCode = "empty_scene_id"
	IssueDuplicateScene          IssueCode = "duplicate_scene"
	IssueDuplicateScript         IssueCode = "duplicate_script"
	IssueDuplicateLineIndex      IssueCode = "duplicate_line_index"
	IssueUnknownLineKind         IssueCode = "unknown_line_kind"
	IssueMissingMinigame         IssueCode = "missing_minigame_config"
	IssueUnexpectedMinigame      IssueCode = "unexpected_minigame_config"
	IssueDuplicateOption         IssueCode = "duplicate_option"
	IssueEmptyOptionID           IssueCode = "empty_option_id"
	IssueOptionSceneMismatch     IssueCode = "option_scene_mismatch"
	IssueEmptyScoreTarget        IssueCode = "empty_score_target"
	IssueDanglingDefaultNext     IssueCode = "dangling_default_next"
	IssueDanglingOptionNext      IssueCode = "dangling_option_next"
	IssueDanglingMinigameScene   IssueCode = "dangling_minigame_scene"
	IssueOptionsWithDefaultNext  IssueCode = "options_with_default_next"
	IssueMinigameWithDefaultNext IssueCode = "minigame_with_default_next"
)

// Issue is one content problem found while building the graph.
type Issue struct {
	Code     IssueCode
	Severity Severity
	SceneID  string
	OptionID string
	ScriptID string
	Detail   string
}

func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s scene=%q", i.Severity, i.Code, i.SceneID)
	if i.OptionID != "" {
		fmt.Fprintf(&b, " option=%q", i.OptionID)
	}
	if i.ScriptID != "" {
		fmt.Fprintf(&b, " script=%q", i.ScriptID)
	}
	if i.Detail != "" {
		b.WriteString(": ")
		b.WriteString(i.Detail)
	}
	return b.String()
}

// GraphIntegrityError lists every error-level issue that prevented a graph from being built.
type GraphIntegrityError struct {
	Issues []Issue
}

func (e *GraphIntegrityError) Error() string {
	const shown = 5
	parts := make([]string, 0, shown)
	for i, issue := range e.Issues {
		if i == shown {
			parts = append(parts, fmt.Sprintf("... and %d more", len(e.Issues)-shown))
			break
		}
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("story graph integrity: %d issue(s): %s", len(e.Issues), strings.Join(parts, "; "))
}

// validate checks ids, line ordering, line payloads and that every edge resolves.
// Scripts must already be sorted by index.
func validate(scenes []models.Scene, opts BuildOptions) []Issue {
	var issues []Issue
	add := func(issue Issue) {
		if issue.Severity == "" {
			issue.Severity = SeverityError
		}
		issues = append(issues, issue)
	}

	// Первый проход собирает id сцен, второй проверяет ссылки на них
	known := make(map[string]bool, len(scenes))
	for _, scene := range scenes {
		if scene.ID == "" {
			add(Issue{Code: IssueEmptySceneID, Detail: fmt.Sprintf("scene titled %q has no id", scene.Title)})
			continue
		}
		if known[scene.ID] {
			add(Issue{Code: IssueDuplicateScene, SceneID: scene.ID})
		}
		known[scene.ID] = true
	}

	// id -> сцена, где он встретился впервые
	scriptIDs := make(map[string]string)
	optionIDs := make(map[string]string)
	for _, scene := range scenes {
		if scene.ID == "" {
			continue
		}

		for i, line := range scene.Scripts {
			if prev, dup := scriptIDs[line.ID]; dup {
				add(Issue{Code: IssueDuplicateScript, SceneID: scene.ID, ScriptID: line.ID, Detail: "also used in " + prev})
			} else if line.ID != "" {
				scriptIDs[line.ID] = scene.ID
			}
			// Строки уже отсортированы, дубликаты индекса стоят рядом
			if i > 0 && scene.Scripts[i-1].Index == line.Index {
				add(Issue{Code: IssueDuplicateLineIndex, SceneID: scene.ID, ScriptID: line.ID, Detail: fmt.Sprintf("index %d", line.Index)})
			}
			if !line.Kind.Valid() {
				add(Issue{Code: IssueUnknownLineKind, SceneID: scene.ID, ScriptID: line.ID, Detail: string(line.Kind)})
				continue
			}
			// Конфиг мини-игры есть ровно у строк вида minigame
			if line.Kind == models.LineKindMinigame {
				if line.Minigame == nil {
					add(Issue{Code: IssueMissingMinigame, SceneID: scene.ID, ScriptID: line.ID})
					continue
				}
				for _, target := range []string{line.Minigame.WinSceneID, line.Minigame.LoseSceneID} {
					if !known[target] {
						add(Issue{Code: IssueDanglingMinigameScene, SceneID: scene.ID, ScriptID: line.ID, Detail: fmt.Sprintf("outcome scene %q does not exist", target)})
					}
				}
			} else if line.Minigame != nil {
				add(Issue{Code: IssueUnexpectedMinigame, SceneID: scene.ID, ScriptID: line.ID, Detail: "line kind " + string(line.Kind)})
			}
		}

		if scene.DefaultNextSceneID != nil && *scene.DefaultNextSceneID != "" && !known[*scene.DefaultNextSceneID] {
			add(Issue{Code: IssueDanglingDefaultNext, SceneID: scene.ID, Detail: fmt.Sprintf("scene %q does not exist", *scene.DefaultNextSceneID)})
		}

		for _, opt := range scene.Options {
			if opt.ID == "" {
				add(Issue{Code: IssueEmptyOptionID, SceneID: scene.ID, Detail: fmt.Sprintf("option %q", opt.Text)})
				continue
			}
			if prev, dup := optionIDs[opt.ID]; dup {
				add(Issue{Code: IssueDuplicateOption, SceneID: scene.ID, OptionID: opt.ID, Detail: "also used in " + prev})
			} else {
				optionIDs[opt.ID] = scene.ID
			}
			if opt.SceneID != scene.ID {
				add(Issue{Code: IssueOptionSceneMismatch, SceneID: scene.ID, OptionID: opt.ID, Detail: "owned by " + opt.SceneID})
			}
			if !known[opt.NextSceneID] {
				add(Issue{Code: IssueDanglingOptionNext, SceneID: scene.ID, OptionID: opt.ID, Detail: fmt.Sprintf("scene %q does not exist", opt.NextSceneID)})
			}
			for _, score := range opt.Scores {
				if strings.TrimSpace(score.TargetCharacterID) == "" {
					add(Issue{Code: IssueEmptyScoreTarget, SceneID: scene.ID, OptionID: opt.ID})
				}
			}
		}

		// default-next сцены с выбором или мини-игрой никогда не используется.
		// Обычно это ошибка автора контента, поэтому в strict-режиме она фатальна.
		severity := SeverityWarning
		if opts.Strict {
			severity = SeverityError
		}
		if scene.DefaultNextSceneID != nil && *scene.DefaultNextSceneID != "" {
			switch {
			case scene.HasOptions():
				add(Issue{Code: IssueOptionsWithDefaultNext, Severity: severity, SceneID: scene.ID, Detail: "default next scene is never used"})
			case scene.HasMinigame():
				add(Issue{Code: IssueMinigameWithDefaultNext, Severity: severity, SceneID: scene.ID, Detail: "default next scene is never used, the minigame decides"})
			}
		}
	}
	return issues
}
