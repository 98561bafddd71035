package web

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/engine"
	"github.com/theysh/startpage/internal/icon"
	"github.com/theysh/startpage/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"letter": icon.Letter,
}).ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Clock   string
	Date    string
	Engine  engine.Config
	Engines []engine.Config
	Links   model.Collection
	EditID  string // card whose edit form is expanded
	Error   string
}

func (h *handler) renderPage(w http.ResponseWriter, status int, data pageData) {
	now := h.now()
	data.Clock = now.Format(h.clockFormat)
	data.Date = now.Format("Monday, January 2")
	data.Engine = h.session.Engine()
	data.Engines = engine.All()
	data.Links = h.session.Links()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("render page: %v", err)
	}
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, pageData{EditID: r.URL.Query().Get("edit")})
}

// search redirects to the active engine's result page. A blank query goes
// back to the start page.
func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	target, err := h.session.SearchURL(r.URL.Query().Get("q"))
	if errors.Is(err, engine.ErrEmptyQuery) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *handler) selectEngineForm(w http.ResponseWriter, r *http.Request) {
	if id := r.FormValue("engine"); id != "" {
		h.session.SelectEngine(engine.ID(id))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func formInput(r *http.Request) editor.Input {
	return editor.Input{
		Title:   r.FormValue("title"),
		URL:     r.FormValue("url"),
		IconURL: r.FormValue("iconUrl"),
	}
}

func (h *handler) addLinkForm(w http.ResponseWriter, r *http.Request) {
	s, err := editor.NewShortcut(formInput(r))
	if err != nil {
		h.renderPage(w, http.StatusBadRequest, pageData{Error: err.Error()})
		return
	}
	h.session.AddLink(s)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) editLinkForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	orig := h.session.Link(id)
	if orig == nil {
		http.Error(w, "shortcut not found", http.StatusNotFound)
		return
	}
	s, err := editor.EditShortcut(*orig, formInput(r))
	if err != nil {
		h.renderPage(w, http.StatusBadRequest, pageData{EditID: id, Error: err.Error()})
		return
	}
	h.session.UpdateLink(s)
	h.icons.Forget(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) deleteLinkForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.session.RemoveLink(id)
	h.icons.Forget(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// moveLinkForm shifts a card one position; dir is "left" or "right".
// Moves past either end are ignored.
func (h *handler) moveLinkForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from := h.session.Links().IndexOf(id)
	if from < 0 {
		http.Error(w, "shortcut not found", http.StatusNotFound)
		return
	}

	to := from + 1
	switch r.FormValue("dir") {
	case "left":
		to = from - 1
	case "right":
	default:
		if n, err := strconv.Atoi(r.FormValue("to")); err == nil {
			to = n
		}
	}
	_ = h.session.ReorderLink(from, to)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// serveIcon redirects to the first icon candidate that answers, or serves a
// generated placeholder.
func (h *handler) serveIcon(w http.ResponseWriter, r *http.Request) {
	s := h.session.Link(chi.URLParam(r, "id"))
	if s == nil {
		http.NotFound(w, r)
		return
	}

	src := h.icons.Resolve(r.Context(), *s)
	if src.Kind != icon.Placeholder {
		http.Redirect(w, r, src.URL, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write(icon.PlaceholderSVG(s.Title))
}
