// Package editor holds the quest editor's draft state and view model.
//
// The editor does not draw anything itself. The host surface receives a Data
// value on every render and reports user actions back through Save and
// ToggleVisibility.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"simplerquests/internal/quest"
	"simplerquests/internal/settings"
)

// Localizer resolves label keys.
type Localizer interface {
	Localize(key string) string
}

// Settings resolves global settings by name.
type Settings interface {
	Get(name string) (string, bool)
}

// Surface is the host window the editor is shown in.
type Surface interface {
	Render(Data) error
	Close() error
}

// Tracker is a dependent view re-rendered after a save.
type Tracker interface {
	Render() error
}

type Deps struct {
	Store     quest.Repository
	Localizer Localizer
	Settings  Settings
	Surface   Surface
	Tracker   Tracker
	Logger    *zap.Logger
}

// Option is one entry of the view style select.
type Option struct {
	Value quest.ViewStyle `json:"value"`
	Label string          `json:"label"`
}

// Labels are the localized static strings of the form.
type Labels struct {
	QuestTitle     string `json:"questTitle"`
	Objectives     string `json:"objectives"`
	ObjectivesHint string `json:"objectivesHint"`
	DisplayMode    string `json:"displayMode"`
	Visible        string `json:"visible"`
	Hidden         string `json:"hidden"`
	Save           string `json:"save"`
}

// Data is the view model handed to the surface.
type Data struct {
	Title                string          `json:"title"`
	QuestID              string          `json:"questId,omitempty"`
	QuestTitle           string          `json:"questTitle"`
	Objectives           string          `json:"objectives"`
	Visible              bool            `json:"visible"`
	ViewStyle            quest.ViewStyle `json:"viewStyle"`
	ViewStyleHint        string          `json:"viewStyleHint"`
	ViewStyleOptions     []Option        `json:"viewStyleOptions"`
	ShowObjectiveOptions bool            `json:"showObjectiveOptions"`
	Labels               Labels          `json:"labels"`
}

type Editor struct {
	mu    sync.Mutex
	deps  Deps
	quest quest.Quest
}

// New opens an editor on questID, or on a fresh quest when questID is empty.
func New(ctx context.Context, deps Deps, questID string) (*Editor, error) {
	if deps.Store == nil {
		return nil, errors.New("editor: store is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	e := &Editor{deps: deps, quest: quest.Quest{Objectives: []quest.Objective{}}}

	questID = strings.TrimSpace(questID)
	if questID != "" {
		q, err := deps.Store.Get(ctx, questID)
		if err != nil {
			return nil, fmt.Errorf("load quest %s: %w", questID, err)
		}
		e.quest = q
	}
	return e, nil
}

// Quest returns a copy of the current draft.
func (e *Editor) Quest() quest.Quest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quest.Clone()
}

func (e *Editor) localize(key string) string {
	if e.deps.Localizer == nil || key == "" {
		return key
	}
	return e.deps.Localizer.Localize(key)
}

func (e *Editor) defaultViewStyle() quest.ViewStyle {
	if e.deps.Settings == nil {
		return quest.ViewAll
	}
	v, ok := e.deps.Settings.Get(settings.QuestViewStyle)
	if !ok {
		return quest.ViewAll
	}
	s, ok := quest.ParseViewStyle(v)
	if !ok || s == quest.ViewUnset {
		return quest.ViewAll
	}
	return s
}

// Data builds the view model for the current draft.
func (e *Editor) Data() Data {
	e.mu.Lock()
	q := e.quest.Clone()
	e.mu.Unlock()

	style := q.ViewStyle.Or(e.defaultViewStyle())

	opts := make([]Option, 0, len(quest.ViewStyles))
	for _, s := range quest.ViewStyles {
		opts = append(opts, Option{Value: s, Label: e.localize(s.LabelKey())})
	}

	return Data{
		Title:                e.localize("SimplerQuests.Editor.Title"),
		QuestID:              q.ID,
		QuestTitle:           q.Title,
		Objectives:           quest.RenderObjectives(q.Objectives),
		Visible:              q.Visible,
		ViewStyle:            style,
		ViewStyleHint:        e.localize(style.LabelKey()),
		ViewStyleOptions:     opts,
		ShowObjectiveOptions: true,
		Labels: Labels{
			QuestTitle:     e.localize("SimplerQuests.Editor.QuestTitle"),
			Objectives:     e.localize("SimplerQuests.Editor.Objectives"),
			ObjectivesHint: e.localize("SimplerQuests.Editor.ObjectivesHint"),
			DisplayMode:    e.localize("SimplerQuests.Editor.DisplayMode"),
			Visible:        e.localize("SimplerQuests.Editor.Visible"),
			Hidden:         e.localize("SimplerQuests.Editor.Hidden"),
			Save:           e.localize("SimplerQuests.Editor.Save"),
		},
	}
}

// Open renders the surface for the first time.
func (e *Editor) Open() error {
	return e.render()
}

func (e *Editor) render() error {
	if e.deps.Surface == nil {
		return nil
	}
	return e.deps.Surface.Render(e.Data())
}

// ToggleVisibility flips the draft's visibility and re-renders.
// The change is persisted on the next Save.
func (e *Editor) ToggleVisibility(ctx context.Context) error {
	_ = ctx

	e.mu.Lock()
	e.quest.Visible = !e.quest.Visible
	id, visible := e.quest.ID, e.quest.Visible
	e.mu.Unlock()

	e.deps.Logger.Debug("quest_visibility_toggled", zap.String("quest_id", id), zap.Bool("visible", visible))
	return e.render()
}

// Save reconciles the submitted fields with the draft and stores the result.
// Visibility always comes from the draft; the form's value is ignored.
// On a store error the surface stays open.
func (e *Editor) Save(ctx context.Context, in Edit) (quest.Quest, error) {
	style, ok := quest.ParseViewStyle(string(in.ViewStyle))
	if !ok {
		e.deps.Logger.Warn("quest_view_style_ignored", zap.String("view_style", string(in.ViewStyle)))
		style = quest.ViewUnset
	}

	e.mu.Lock()
	draft := e.quest.Clone()
	e.mu.Unlock()

	var base *quest.Quest
	if draft.ID != "" {
		base = &draft
	}
	next := quest.Reconcile(base, quest.Edit{
		Title:         in.Title,
		ObjectiveText: in.ObjectiveText,
		ViewStyle:     style,
		Visible:       draft.Visible,
	})

	stored, err := e.deps.Store.InsertOrUpdate(ctx, next)
	if err != nil {
		return quest.Quest{}, fmt.Errorf("save quest: %w", err)
	}

	e.mu.Lock()
	e.quest = stored.Clone()
	e.mu.Unlock()

	e.deps.Logger.Info("quest_saved",
		zap.String("quest_id", stored.ID),
		zap.String("title", stored.Title),
		zap.Int("objectives", len(stored.Objectives)),
	)

	if e.deps.Tracker != nil {
		if err := e.deps.Tracker.Render(); err != nil {
			e.deps.Logger.Warn("tracker_render_failed", zap.Error(err))
		}
	}
	if e.deps.Surface != nil {
		if err := e.deps.Surface.Close(); err != nil {
			return stored, fmt.Errorf("close editor: %w", err)
		}
	}
	return stored, nil
}

// Edit is the form submission.
type Edit = quest.Edit
