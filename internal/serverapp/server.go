package serverapp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"simplerquests/internal/config"
	"simplerquests/internal/httpmw"
	"simplerquests/internal/i18n"
	"simplerquests/internal/quest"
	"simplerquests/internal/settings"
	staticfiles "simplerquests/static"
)

type Options struct {
	Config   *config.Config
	Store    quest.Repository
	Settings *settings.Provider
	Tracker  *TrackerFeed
	Logger   *zap.Logger

	// StaticDir serves assets from disk instead of the embedded copy.
	StaticDir string
}

// OpenStore builds the repository named by cfg.Storage.
func OpenStore(cfg *config.Config) (quest.Repository, error) {
	switch cfg.Storage {
	case "memory":
		return quest.NewMemoryRepo(), nil
	case "file", "":
		return quest.NewFileRepo(cfg.DataDir)
	default:
		return nil, errors.New("unknown storage: " + cfg.Storage)
	}
}

// NewSettings builds the settings provider from cfg: the configured default
// view style first, then the settings file on top.
func NewSettings(cfg *config.Config, logger *zap.Logger) (*settings.Provider, error) {
	sp := settings.New(logger)
	if cfg.Defaults.ViewStyle != "" {
		if err := sp.Set(settings.QuestViewStyle, cfg.Defaults.ViewStyle); err != nil {
			return nil, err
		}
	}
	if cfg.SettingsFile != "" {
		if err := sp.Load(cfg.SettingsFile); err != nil {
			return nil, err
		}
	}
	return sp, nil
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		st, err := OpenStore(opts.Config)
		if err != nil {
			return nil, err
		}
		opts.Store = st
	}
	if opts.Settings == nil {
		sp, err := NewSettings(opts.Config, opts.Logger)
		if err != nil {
			return nil, err
		}
		opts.Settings = sp
	}

	loc, err := i18n.New(opts.Config.Language)
	if err != nil {
		return nil, err
	}
	if opts.Config.LanguageFile != "" {
		if err := loc.Merge(opts.Config.LanguageFile); err != nil {
			return nil, err
		}
	}

	opts.Logger.Info("i18n_loaded", zap.String("language", loc.Language()), zap.Int("keys", len(loc.Keys())))

	h := NewQuestHandler(opts.Store, loc, opts.Settings, opts.Tracker, opts.Logger)
	h.settingsFile = opts.Config.SettingsFile
	store := opts.Store

	// Settings changes from the API or a watched file re-render the tracker.
	opts.Settings.OnChange(func(name, value string) {
		if err := h.tracker.Render(); err != nil {
			opts.Logger.Warn("tracker_render_failed", zap.String("setting", name), zap.Error(err))
		}
	})

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.StaticDir != "" {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "simplerquests",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := store.List(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "quest storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "simplerquests",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/quests", h.QuestsRoot)
	mux.HandleFunc("/api/quests/", h.QuestsSub)
	mux.HandleFunc("/api/objectives/parse", h.ParseObjectives)
	mux.HandleFunc("/api/settings", h.Settings)
	mux.HandleFunc("/api/tracker/revision", h.TrackerRevision)

	mux.HandleFunc("/editor", h.EditorPage)
	mux.HandleFunc("/tracker", h.TrackerPage)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/tracker", http.StatusFound)
	})

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}
