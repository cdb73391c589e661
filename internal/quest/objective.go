package quest

import (
	"strings"
)

// ObjectiveState tracks where a single objective stands
type ObjectiveState string

const (
	StateActive   ObjectiveState = "active"
	StateComplete ObjectiveState = "complete"
	StateFailed   ObjectiveState = "failed"
)

// Line markers used in the editable objective text.
const (
	markerComplete = '+'
	markerFailed   = '-'
	markerSecret   = '/'
)

// Objective represents a single goal within a quest
type Objective struct {
	Text   string         `json:"text"`
	State  ObjectiveState `json:"state"`
	Secret bool           `json:"secret"`
}

// Done reports whether the objective has left the active state.
func (o Objective) Done() bool {
	return o.State == StateComplete || o.State == StateFailed
}

// ParseLine turns one editor line into an Objective.
// At most one state marker and one secret marker are consumed, in either order.
func ParseLine(line string) Objective {
	obj := Objective{State: StateActive}

	stateSeen, secretSeen := false, false
	for len(line) > 0 {
		c := line[0]
		switch {
		case !stateSeen && c == markerComplete:
			obj.State = StateComplete
			stateSeen = true
		case !stateSeen && c == markerFailed:
			obj.State = StateFailed
			stateSeen = true
		case !secretSeen && c == markerSecret:
			obj.Secret = true
			secretSeen = true
		default:
			obj.Text = line
			return obj
		}
		line = line[1:]
	}

	// markers only; keep the objective with empty text
	return obj
}

// ParseMulti converts a block of editor text into objectives, one per line.
// Lines that are empty as written are skipped. Trailing carriage returns are
// dropped, so CRLF line endings are accepted.
func ParseMulti(text string) []Objective {
	out := []Objective{}
	if text == "" {
		return out
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, ParseLine(line))
	}
	return out
}

// RenderLine is the inverse of ParseLine: state marker first, then secret.
func RenderLine(o Objective) string {
	var b strings.Builder
	b.Grow(len(o.Text) + 2)

	switch o.State {
	case StateComplete:
		b.WriteByte(markerComplete)
	case StateFailed:
		b.WriteByte(markerFailed)
	}
	if o.Secret {
		b.WriteByte(markerSecret)
	}
	b.WriteString(o.Text)
	return b.String()
}

// RenderObjectives builds the editable text block for a set of objectives.
func RenderObjectives(objs []Objective) string {
	lines := make([]string, 0, len(objs))
	for _, o := range objs {
		lines = append(lines, RenderLine(o))
	}
	return strings.Join(lines, "\n")
}
