package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"simplerquests/internal/editor"
	"simplerquests/internal/i18n"
	"simplerquests/internal/quest"
	"simplerquests/internal/settings"
)

type Handler struct {
	store    quest.Repository
	loc      *i18n.Localizer
	settings *settings.Provider
	tracker  *TrackerFeed
	logger   *zap.Logger

	// settingsFile receives PUT /api/settings changes when set.
	settingsFile string
}

func NewQuestHandler(store quest.Repository, loc *i18n.Localizer, sp *settings.Provider, tracker *TrackerFeed, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tracker == nil {
		tracker = &TrackerFeed{}
	}
	if sp == nil {
		sp = settings.New(logger)
	}
	return &Handler{store: store, loc: loc, settings: sp, tracker: tracker, logger: logger}
}

type questResponse struct {
	Quest  quest.Quest `json:"quest"`
	Editor editor.Data `json:"editor"`
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Objectives []quest.Objective `json:"objectives"`
	Rendered   string            `json:"rendered"`
}

type settingRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

func (h *Handler) openEditor(r *http.Request, id string, surface editor.Surface) (*editor.Editor, error) {
	return editor.New(r.Context(), editor.Deps{
		Store:     h.store,
		Localizer: h.loc,
		Settings:  h.settings,
		Surface:   surface,
		Tracker:   h.tracker,
		Logger:    h.logger,
	}, id)
}

func isNotFound(err error) bool {
	return errors.Is(err, quest.ErrNotFound)
}

func (h *Handler) writeStoreErr(w http.ResponseWriter, err error) {
	if isNotFound(err) {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.Error("quest_store_failed", zap.Error(err))
	writeErr(w, http.StatusInternalServerError, err.Error())
}

// /api/quests  (collection)
func (h *Handler) QuestsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		qs, err := h.store.List(r.Context())
		if err != nil {
			h.writeStoreErr(w, err)
			return
		}
		if needle := strings.TrimSpace(r.URL.Query().Get("q")); needle != "" {
			qs = searchTitles(qs, needle)
		}
		writeJSON(w, http.StatusOK, qs)

	case http.MethodPost:
		var in editor.Edit
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		ed, err := h.openEditor(r, "", &requestSurface{})
		if err != nil {
			h.writeStoreErr(w, err)
			return
		}
		q, err := ed.Save(r.Context(), in)
		if err != nil {
			h.writeStoreErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// /api/quests/{id} and /api/quests/{id}/visibility
func (h *Handler) QuestsSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/quests/"), "/")
	parts := strings.Split(rest, "/")
	if rest == "" || len(parts) > 2 {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	id := parts[0]

	if len(parts) == 2 {
		if parts[1] != "visibility" {
			writeErr(w, http.StatusNotFound, "not found")
			return
		}
		h.toggleVisibility(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ed, err := h.openEditor(r, id, &requestSurface{})
		if err != nil {
			h.writeStoreErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, questResponse{Quest: ed.Quest(), Editor: ed.Data()})

	case http.MethodPut:
		var in editor.Edit
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		ed, err := h.openEditor(r, id, &requestSurface{})
		if err != nil {
			h.writeStoreErr(w, err)
			return
		}
		q, err := ed.Save(r.Context(), in)
		if err != nil {
			h.writeStoreErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)

	case http.MethodDelete:
		if err := h.store.Delete(r.Context(), id); err != nil {
			h.writeStoreErr(w, err)
			return
		}
		_ = h.tracker.Render()
		w.WriteHeader(http.StatusNoContent)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// toggleVisibility flips the quest's visibility and saves it with its other fields unchanged.
func (h *Handler) toggleVisibility(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ed, err := h.openEditor(r, id, &requestSurface{})
	if err != nil {
		h.writeStoreErr(w, err)
		return
	}
	if err := ed.ToggleVisibility(r.Context()); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	draft := ed.Quest()
	q, err := ed.Save(r.Context(), editor.Edit{
		Title:         draft.Title,
		ObjectiveText: quest.RenderObjectives(draft.Objectives),
		ViewStyle:     draft.ViewStyle,
	})
	if err != nil {
		h.writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// /api/objectives/parse
func (h *Handler) ParseObjectives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in parseRequest
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	objs := quest.ParseMulti(in.Text)
	writeJSON(w, http.StatusOK, parseResponse{Objectives: objs, Rendered: quest.RenderObjectives(objs)})
}

// /api/settings
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.settings.Snapshot())

	case http.MethodPut:
		var in settingRequest
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := h.settings.Set(in.Name, in.Value); err != nil {
			switch {
			case errors.Is(err, settings.ErrUnknownSetting):
				writeErr(w, http.StatusNotFound, err.Error())
			default:
				writeErr(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		if h.settingsFile != "" {
			if err := h.settings.Save(h.settingsFile); err != nil {
				h.logger.Error("settings_save_failed", zap.String("path", h.settingsFile), zap.Error(err))
				writeErr(w, http.StatusInternalServerError, "settings not saved")
				return
			}
		}
		writeJSON(w, http.StatusOK, h.settings.Snapshot())

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// /api/tracker/revision
func (h *Handler) TrackerRevision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"revision": h.tracker.Revision()})
}

type questTitles []quest.Quest

func (q questTitles) String(i int) string { return q[i].Title }
func (q questTitles) Len() int            { return len(q) }

// searchTitles returns quests whose title fuzzily matches needle, best match first.
func searchTitles(qs []quest.Quest, needle string) []quest.Quest {
	matches := fuzzy.FindFrom(needle, questTitles(qs))
	out := make([]quest.Quest, 0, len(matches))
	for _, m := range matches {
		out = append(out, qs[m.Index])
	}
	return out
}
