package quest

import (
	"time"
)

// ViewStyle controls which objectives the tracker shows for a quest
type ViewStyle string

const (
	ViewUnset    ViewStyle = ""
	ViewAll      ViewStyle = "all"
	ViewNext     ViewStyle = "next"
	ViewComplete ViewStyle = "complete"
)

// ViewStyles lists the selectable styles in display order.
var ViewStyles = []ViewStyle{ViewAll, ViewNext, ViewComplete}

// ParseViewStyle accepts a select token. The empty token is valid and means unset.
func ParseViewStyle(s string) (ViewStyle, bool) {
	switch ViewStyle(s) {
	case ViewUnset, ViewAll, ViewNext, ViewComplete:
		return ViewStyle(s), true
	default:
		return ViewUnset, false
	}
}

// LabelKey is the localization key for the style's label.
func (v ViewStyle) LabelKey() string {
	switch v {
	case ViewAll:
		return "SimplerQuests.Settings.ViewStyle.All"
	case ViewNext:
		return "SimplerQuests.Settings.ViewStyle.Next"
	case ViewComplete:
		return "SimplerQuests.Settings.ViewStyle.Complete"
	default:
		return ""
	}
}

// Or returns v, or fallback when v is unset.
func (v ViewStyle) Or(fallback ViewStyle) ViewStyle {
	if v == ViewUnset {
		return fallback
	}
	return v
}

// Quest is a titled, ordered list of objectives
type Quest struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Objectives []Objective `json:"objectives"`
	ViewStyle  ViewStyle   `json:"viewStyle,omitempty"`
	Visible    bool        `json:"visible"`

	// Maintained by the store
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Edit carries the fields the editor form submits.
type Edit struct {
	Title         string    `json:"title"`
	ObjectiveText string    `json:"objectives"`
	ViewStyle     ViewStyle `json:"viewStyle,omitempty"`
	Visible       bool      `json:"visible"`
}

// Reconcile builds a new quest from base and the edited fields.
// The base is never modified. A nil base yields a quest without an ID;
// the store assigns one on insert.
func Reconcile(base *Quest, e Edit) Quest {
	q := Quest{
		Title:      e.Title,
		Objectives: ParseMulti(e.ObjectiveText),
		ViewStyle:  e.ViewStyle,
		Visible:    e.Visible,
	}
	if base != nil {
		q.ID = base.ID
		q.Order = base.Order
		q.CreatedAt = base.CreatedAt
		q.UpdatedAt = base.UpdatedAt
	}
	return q
}

// Clone returns a deep copy so callers can edit without touching shared state.
func (q Quest) Clone() Quest {
	out := q
	out.Objectives = append([]Objective(nil), q.Objectives...)
	if out.Objectives == nil {
		out.Objectives = []Objective{}
	}
	return out
}

// Shown returns the objectives the tracker should display under style.
// Secret objectives are only shown when gm is true.
func (q Quest) Shown(style ViewStyle, gm bool) []Objective {
	out := []Objective{}
	nextTaken := false
	for _, o := range q.Objectives {
		if o.Secret && !gm {
			continue
		}
		switch style {
		case ViewComplete:
			if !o.Done() {
				continue
			}
		case ViewNext:
			if !o.Done() {
				if nextTaken {
					continue
				}
				nextTaken = true
			}
		}
		out = append(out, o)
	}
	return out
}
