// Package settings is the global settings provider for the quest tracker.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"simplerquests/internal/quest"
)

const QuestViewStyle = "quest-view-style"

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid setting value")
)

// Setting describes one registered setting.
type Setting struct {
	Name     string
	Default  string
	Validate func(string) bool
}

type Provider struct {
	mu       sync.RWMutex
	defs     map[string]Setting
	values   map[string]string
	logger   *zap.Logger
	onChange []func(name, value string)
}

// New returns a provider with the built-in settings registered.
func New(logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{
		defs:   map[string]Setting{},
		values: map[string]string{},
		logger: logger,
	}
	p.Register(Setting{
		Name:     QuestViewStyle,
		Default:  string(quest.ViewAll),
		Validate: func(v string) bool {
			s, ok := quest.ParseViewStyle(v)
			return ok && s != quest.ViewUnset
		},
	})
	return p
}

func (p *Provider) Register(s Setting) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defs[s.Name] = s
}

// Get returns the current value, or the default when none was set.
func (p *Provider) Get(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	def, ok := p.defs[name]
	if !ok {
		return "", false
	}
	if v, ok := p.values[name]; ok {
		return v, true
	}
	return def.Default, true
}

func (p *Provider) Set(name, value string) error {
	p.mu.Lock()
	def, ok := p.defs[name]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	if def.Validate != nil && !def.Validate(value) {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, name, value)
	}
	p.values[name] = value
	hooks := append([]func(string, string){}, p.onChange...)
	p.mu.Unlock()

	for _, fn := range hooks {
		fn(name, value)
	}
	return nil
}

// OnChange registers a callback invoked after each successful Set.
func (p *Provider) OnChange(fn func(name, value string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = append(p.onChange, fn)
}

// DefaultViewStyle resolves the configured fallback style.
func (p *Provider) DefaultViewStyle() quest.ViewStyle {
	v, _ := p.Get(QuestViewStyle)
	s, ok := quest.ParseViewStyle(v)
	if !ok || s == quest.ViewUnset {
		return quest.ViewAll
	}
	return s
}

// Snapshot returns all settings with their effective values.
func (p *Provider) Snapshot() map[string]string {
	p.mu.RLock()
	names := make([]string, 0, len(p.defs))
	for n := range p.defs {
		names = append(names, n)
	}
	p.mu.RUnlock()
	sort.Strings(names)

	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n], _ = p.Get(n)
	}
	return out
}

// Load applies a YAML mapping of setting names to values.
// A missing file is not an error; invalid entries are logged and skipped.
func (p *Provider) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	raw := map[string]string{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unable to unmarshal settings %s: %w", path, err)
	}
	for name, value := range raw {
		if err := p.Set(name, value); err != nil {
			p.logger.Warn("settings_skip", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// Save writes the explicitly set values to path.
func (p *Provider) Save(path string) error {
	p.mu.RLock()
	b, err := yaml.Marshal(p.values)
	p.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Watch reloads path whenever it is written or created, until ctx is done.
// The parent directory is watched so editors that replace the file still trigger.
func (p *Provider) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	p.logger.Info("settings_watch", zap.String("path", path))

	target := filepath.Clean(path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := p.Load(path); err != nil {
					p.logger.Warn("settings_reload_failed", zap.String("path", path), zap.Error(err))
					continue
				}
				p.logger.Info("settings_reloaded", zap.String("path", path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.logger.Error("settings_watch_error", zap.Error(err))
			}
		}
	}()
	return nil
}
