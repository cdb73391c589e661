package serverapp

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"simplerquests/internal/editor"
	"simplerquests/internal/quest"
	"simplerquests/internal/render"
)

func editorAction(id string) string {
	if id == "" {
		return "/editor"
	}
	return "/editor?questId=" + url.QueryEscape(id)
}

// /editor?questId=
//
// GET renders the form. POST saves the submission and redirects to the GM
// tracker, which confirms the save. A visibility toggle saves and returns to
// the form.
func (h *Handler) EditorPage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("questId"))
	surface := &requestSurface{}

	ed, err := h.openEditor(r, id, surface)
	if err != nil {
		h.writePageErr(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if err := ed.Open(); err != nil {
			h.writePageErr(w, err)
			return
		}
		page := render.EditorPage{Data: surface.last, Action: editorAction(id)}
		templ.Handler(render.Editor(page)).ServeHTTP(w, r)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		toggle := r.PostForm.Has("toggleVisibility")
		if toggle {
			if err := ed.ToggleVisibility(r.Context()); err != nil {
				h.writePageErr(w, err)
				return
			}
		}
		q, err := ed.Save(r.Context(), editor.Edit{
			Title:         r.PostForm.Get("title"),
			ObjectiveText: r.PostForm.Get("objectives"),
			ViewStyle:     quest.ViewStyle(r.PostForm.Get("viewStyle")),
		})
		if err != nil {
			h.writePageErr(w, err)
			return
		}
		if surface.Closed() && !toggle {
			http.Redirect(w, r, "/tracker?gm=1&saved="+url.QueryEscape(q.ID), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, editorAction(q.ID), http.StatusSeeOther)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// /tracker?gm=1&saved=
func (h *Handler) TrackerPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	qs, err := h.store.List(r.Context())
	if err != nil {
		h.writePageErr(w, err)
		return
	}
	gm := parseBool(r.URL.Query().Get("gm"))
	active := r.URL.Query()["active"]

	view := render.NewTrackerView(qs, h.settings.DefaultViewStyle(), gm, active, h.loc)
	if id := r.URL.Query().Get("saved"); id != "" {
		if q, err := h.store.Get(r.Context(), id); err == nil {
			view.Notice = h.loc.Format("SimplerQuests.Notify.Saved", map[string]string{"title": q.Title})
		}
	}
	templ.Handler(render.Tracker(view)).ServeHTTP(w, r)
}

func (h *Handler) writePageErr(w http.ResponseWriter, err error) {
	if isNotFound(err) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.logger.Error("page_failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
