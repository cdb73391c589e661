// Package render turns editor and tracker view models into HTML.
package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"reflect"
	"strings"

	"github.com/a-h/templ"

	"simplerquests/internal/editor"
	"simplerquests/internal/quest"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(
	template.New("simplerquests").
		Funcs(Funcs()).
		ParseFS(templatesFS, "templates/*.html"),
)

// Funcs returns the template helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"simplerQuestIsActiveQuest": IsActiveQuest,
		"simplerQuestsEquals":       Equals,
	}
}

// IsActiveQuest reports whether list contains value.
// list may be a slice, an array, or a string (substring match).
func IsActiveQuest(list, value any) bool {
	if list == nil {
		return false
	}
	if s, ok := list.(string); ok {
		v, ok := value.(string)
		return ok && strings.Contains(s, v)
	}

	rv := reflect.ValueOf(list)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if Equals(rv.Index(i).Interface(), value) {
				return true
			}
		}
	}
	return false
}

// Equals is strict equality: same dynamic type and same value.
// Values of non-comparable types are never equal.
func Equals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// EditorPage is the editor form plus where it posts to.
type EditorPage struct {
	editor.Data
	Action string
}

// TrackerQuest is one quest as the tracker shows it.
type TrackerQuest struct {
	ID         string
	Title      string
	ViewStyle  quest.ViewStyle
	Objectives []quest.Objective
}

// TrackerView is the tracker body view model.
type TrackerView struct {
	Title  string
	Empty  string
	Notice string
	Quests []TrackerQuest
	Active []string
}

// Localizer resolves label keys.
type Localizer interface {
	Localize(key string) string
}

// NewTrackerView filters quests for display. Hidden quests and secret
// objectives are only included for the GM.
func NewTrackerView(quests []quest.Quest, fallback quest.ViewStyle, gm bool, active []string, loc Localizer) TrackerView {
	v := TrackerView{
		Title:  localize(loc, "SimplerQuests.Tracker.Title"),
		Empty:  localize(loc, "SimplerQuests.Tracker.Empty"),
		Quests: []TrackerQuest{},
		Active: active,
	}
	for _, q := range quests {
		if !q.Visible && !gm {
			continue
		}
		style := q.ViewStyle.Or(fallback)
		v.Quests = append(v.Quests, TrackerQuest{
			ID:         q.ID,
			Title:      q.Title,
			ViewStyle:  style,
			Objectives: q.Shown(style, gm),
		})
	}
	return v
}

func localize(loc Localizer, key string) string {
	if loc == nil {
		return key
	}
	return loc.Localize(key)
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Editor renders the editor page.
func Editor(p EditorPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return execute(w, "editor.html", p)
	})
}

// Tracker renders the tracker body.
func Tracker(v TrackerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return execute(w, "tracker-body.html", v)
	})
}
