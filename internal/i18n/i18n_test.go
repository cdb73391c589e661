package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LoadsEmbeddedEnglish(t *testing.T) {
	l, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "en", l.Language())
	assert.Equal(t, "Next objective", l.Localize("SimplerQuests.Settings.ViewStyle.Next"))
	assert.Contains(t, l.Keys(), "SimplerQuests.Editor.Title")
}

func TestNew_UnknownLanguageFallsBack(t *testing.T) {
	l, err := New("xx")
	require.NoError(t, err)
	assert.Equal(t, "en", l.Language())
}

func TestLocalize_MissingKeyReturnsKey(t *testing.T) {
	l, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "No.Such.Key", l.Localize("No.Such.Key"))

	var nilL *Localizer
	assert.Equal(t, "k", nilL.Localize("k"))
}

func TestFormat(t *testing.T) {
	l, err := NewFromReader(strings.NewReader(`greet: "Hello {name}, {name}! {other}"`))
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, Ada! {other}", l.Format("greet", map[string]string{"name": "Ada"}))
	assert.Equal(t, "Hello {name}, {name}! {other}", l.Format("greet", nil))
}

func TestMerge_OverridesEntries(t *testing.T) {
	l, err := New("en")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("SimplerQuests.Editor.Title: Quest Forge\n"), 0o644))
	require.NoError(t, l.Merge(path))

	assert.Equal(t, "Quest Forge", l.Localize("SimplerQuests.Editor.Title"))
	assert.Equal(t, "Save Quest", l.Localize("SimplerQuests.Editor.Save"))
}

func TestNewFromReader_RejectsNonMapping(t *testing.T) {
	_, err := NewFromReader(strings.NewReader("- a\n- b\n"))
	assert.Error(t, err)
}
