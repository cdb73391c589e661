package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplerquests/internal/quest"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := run(t, "+Find the sword\n-/Defeat the dragon\nTalk to the elder", "parse")
	require.NoError(t, err)

	var objs []quest.Objective
	require.NoError(t, json.Unmarshal([]byte(out), &objs))
	assert.Equal(t, []quest.Objective{
		{Text: "Find the sword", State: quest.StateComplete},
		{Text: "Defeat the dragon", State: quest.StateFailed, Secret: true},
		{Text: "Talk to the elder", State: quest.StateActive},
	}, objs)
}

func TestRenderCmd_AcceptsObjectivesOrQuest(t *testing.T) {
	out, err := run(t, `[{"text":"a","state":"complete","secret":true},{"text":"b","state":"active"}]`, "render")
	require.NoError(t, err)
	assert.Equal(t, "+/a\nb\n", out)

	out, err = run(t, `{"id":"q1","objectives":[{"text":"c","state":"failed"}]}`, "render")
	require.NoError(t, err)
	assert.Equal(t, "-c\n", out)

	_, err = run(t, `not json`, "render")
	assert.Error(t, err)
}

func TestParseCmd_MissingFile(t *testing.T) {
	_, err := run(t, "", "parse", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
