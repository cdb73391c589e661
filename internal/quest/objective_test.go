package quest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseMulti_MarkersAndOrder(t *testing.T) {
	got := ParseMulti("+Find the sword\n-/Defeat the dragon\nTalk to the elder")

	want := []Objective{
		{Text: "Find the sword", State: StateComplete},
		{Text: "Defeat the dragon", State: StateFailed, Secret: true},
		{Text: "Talk to the elder", State: StateActive},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("objectives mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLine_MarkerOrderIsIrrelevant(t *testing.T) {
	cases := map[string]Objective{
		"-/hidden":  {Text: "hidden", State: StateFailed, Secret: true},
		"/-hidden":  {Text: "hidden", State: StateFailed, Secret: true},
		"+/hidden":  {Text: "hidden", State: StateComplete, Secret: true},
		"/+hidden":  {Text: "hidden", State: StateComplete, Secret: true},
		"/plain":    {Text: "plain", State: StateActive, Secret: true},
		"plain":     {Text: "plain", State: StateActive},
		" +spaced":  {Text: " +spaced", State: StateActive},
		"++double":  {Text: "+double", State: StateComplete},
		"+-both":    {Text: "-both", State: StateComplete},
		"//twice":   {Text: "/twice", State: StateActive, Secret: true},
		"-/-nested": {Text: "-nested", State: StateFailed, Secret: true},
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLine(in), "line %q", in)
	}
}

func TestParseLine_MarkersOnlyYieldsEmptyText(t *testing.T) {
	assert.Equal(t, Objective{State: StateComplete}, ParseLine("+"))
	assert.Equal(t, Objective{State: StateFailed, Secret: true}, ParseLine("-/"))
	assert.Equal(t, Objective{State: StateActive, Secret: true}, ParseLine("/"))
}

func TestParseMulti_SkipsEmptyLines(t *testing.T) {
	assert.Empty(t, ParseMulti(""))
	assert.NotNil(t, ParseMulti(""))

	got := ParseMulti("one\n\ntwo\n")
	assert.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, "two", got[1].Text)
}

func TestParseMulti_KeepsWhitespaceVerbatim(t *testing.T) {
	got := ParseMulti("  indented  \n\t")
	assert.Equal(t, []Objective{
		{Text: "  indented  ", State: StateActive},
		{Text: "\t", State: StateActive},
	}, got)
}

func TestParseMulti_AcceptsCRLF(t *testing.T) {
	got := ParseMulti("+a\r\n/b\r\n")
	assert.Equal(t, []Objective{
		{Text: "a", State: StateComplete},
		{Text: "b", State: StateActive, Secret: true},
	}, got)
}

func TestParseMulti_StripsRepeatedCarriageReturns(t *testing.T) {
	got := ParseMulti("a\r\r\n\r\n-b\r")
	assert.Equal(t, []Objective{
		{Text: "a", State: StateActive},
		{Text: "b", State: StateFailed},
	}, got)

	// rendered text parses back to the same objectives
	assert.Equal(t, got, ParseMulti(RenderObjectives(got)))
}

func TestParseMulti_LineCountMatchesNonEmptyLines(t *testing.T) {
	inputs := []string{
		"a",
		"a\nb\nc",
		"+\n-\n/",
		"x\n\n\ny",
	}
	for _, in := range inputs {
		nonEmpty := 0
		for _, l := range strings.Split(in, "\n") {
			if l != "" {
				nonEmpty++
			}
		}
		assert.Len(t, ParseMulti(in), nonEmpty, "input %q", in)
	}
}

func TestRenderObjectives_RoundTrip(t *testing.T) {
	objs := []Objective{
		{Text: "Find the sword", State: StateComplete},
		{Text: "Defeat the dragon", State: StateFailed, Secret: true},
		{Text: "Talk to the elder", State: StateActive},
		{Text: "Meet the spy", State: StateActive, Secret: true},
		{Text: "Escape", State: StateComplete, Secret: true},
	}

	text := RenderObjectives(objs)
	assert.Equal(t, "+Find the sword\n-/Defeat the dragon\nTalk to the elder\n/Meet the spy\n+/Escape", text)

	if diff := cmp.Diff(objs, ParseMulti(text)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderObjectives_Empty(t *testing.T) {
	assert.Equal(t, "", RenderObjectives(nil))
	assert.Equal(t, "", RenderObjectives([]Objective{}))
}

func TestMarkerIndependence(t *testing.T) {
	for _, st := range []ObjectiveState{StateActive, StateComplete, StateFailed} {
		open := ParseLine(RenderLine(Objective{Text: "x", State: st}))
		secret := ParseLine(RenderLine(Objective{Text: "x", State: st, Secret: true}))

		assert.Equal(t, st, open.State)
		assert.Equal(t, st, secret.State)
		assert.False(t, open.Secret)
		assert.True(t, secret.Secret)
	}
}
