// Package i18n resolves localization keys to display strings.
package i18n

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lang/*.yml
var langFS embed.FS

const DefaultLanguage = "en"

// Localizer holds one language's flat key -> string table.
type Localizer struct {
	lang    string
	entries map[string]string
}

// New loads an embedded language, falling back to English for unknown codes.
func New(lang string) (*Localizer, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLanguage
	}
	f, err := langFS.Open("lang/" + lang + ".yml")
	if err != nil {
		if lang == DefaultLanguage {
			return nil, err
		}
		return New(DefaultLanguage)
	}
	defer f.Close()

	l, err := NewFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", lang, err)
	}
	l.lang = lang
	return l, nil
}

// NewFromReader parses a YAML mapping of keys to strings.
func NewFromReader(r io.Reader) (*Localizer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read language file: %w", err)
	}
	entries := map[string]string{}
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("unable to unmarshal language file: %w", err)
	}
	return &Localizer{lang: DefaultLanguage, entries: entries}, nil
}

// Merge overlays a language file from disk on top of the loaded entries.
func (l *Localizer) Merge(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	extra, err := NewFromReader(f)
	if err != nil {
		return err
	}
	for k, v := range extra.entries {
		l.entries[k] = v
	}
	return nil
}

func (l *Localizer) Language() string { return l.lang }

// Localize returns the translation for key, or key itself when missing.
func (l *Localizer) Localize(key string) string {
	if l == nil {
		return key
	}
	if v, ok := l.entries[key]; ok {
		return v
	}
	return key
}

// Format localizes key and substitutes {name} placeholders.
func (l *Localizer) Format(key string, args map[string]string) string {
	s := l.Localize(key)
	if len(args) == 0 {
		return s
	}
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(args)*2)
	for _, k := range names {
		pairs = append(pairs, "{"+k+"}", args[k])
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Keys lists the loaded keys in sorted order.
func (l *Localizer) Keys() []string {
	out := make([]string, 0, len(l.entries))
	for k := range l.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
